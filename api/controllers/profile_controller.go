/*
 * @module api/controllers/profile_controller
 * @description 源配置控制器，管理保存的源连接配置与无人值守迁移运行
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow HTTP请求 -> 参数验证 -> 服务调用 -> 响应返回
 * @rules 连接口令加密入库、列表不回显；配置变更后重载调度
 * @dependencies service/migration_service, service/scheduler
 * @refs api/routes.go
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"migration-service/service"
	"migration-service/service/models"
	"migration-service/service/scheduler"
)

// ProfileController 源配置控制器
type ProfileController struct {
	migrationService *service.MigrationService
	schedulerService *scheduler.SchedulerService
}

// NewProfileController 创建源配置控制器
func NewProfileController() *ProfileController {
	return &ProfileController{
		migrationService: service.GlobalMigrationService,
		schedulerService: service.GlobalSchedulerService,
	}
}

// SaveProfile 保存源连接配置
// @Summary 保存源连接配置
// @Description 创建或更新源连接配置，口令加密入库；配置了Cron表达式的参与定时调度
// @Tags 源配置
// @Accept json
// @Produce json
// @Param request body models.SourceProfile true "源配置"
// @Success 200 {object} APIResponse{data=models.SourceProfile}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /profiles [post]
func (c *ProfileController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req models.SourceProfile
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	if err := c.migrationService.SaveSourceProfile(&req); err != nil {
		render.JSON(w, r, InternalErrorResponse("保存源配置失败", err))
		return
	}
	if err := c.schedulerService.ReloadProfile(req.ID); err != nil {
		render.JSON(w, r, InternalErrorResponse("重载调度配置失败", err))
		return
	}

	delete(req.Connection, "password")
	render.JSON(w, r, SuccessResponse("保存源配置成功", req))
}

// ListProfiles 列出源连接配置
// @Summary 列出源连接配置
// @Description 列出已保存的源连接配置，口令不回显
// @Tags 源配置
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.SourceProfile}
// @Failure 500 {object} APIResponse
// @Router /profiles [get]
func (c *ProfileController) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := c.migrationService.ListSourceProfiles()
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("查询源配置失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询源配置成功", profiles))
}

// DeleteProfile 删除源连接配置
// @Summary 删除源连接配置
// @Description 删除源连接配置并移除其调度
// @Tags 源配置
// @Produce json
// @Param id path string true "源配置ID"
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /profiles/{id} [delete]
func (c *ProfileController) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.migrationService.DeleteSourceProfile(id); err != nil {
		render.JSON(w, r, InternalErrorResponse("删除源配置失败", err))
		return
	}
	if err := c.schedulerService.ReloadProfile(id); err != nil {
		render.JSON(w, r, InternalErrorResponse("重载调度配置失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("删除源配置成功", nil))
}

// TriggerRun 手动触发一次无人值守迁移
// @Summary 手动触发迁移运行
// @Description 立即以指定源配置启动一次完整迁移，不等待Cron到点
// @Tags 源配置
// @Produce json
// @Param id path string true "源配置ID"
// @Success 200 {object} APIResponse
// @Router /profiles/{id}/run [post]
func (c *ProfileController) TriggerRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c.schedulerService.TriggerNow(id)

	render.JSON(w, r, SuccessResponse("迁移运行已触发", nil))
}

// ListRuns 查询迁移运行记录
// @Summary 查询迁移运行记录
// @Description 按时间倒序返回最近的迁移运行记录
// @Tags 源配置
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.MigrationRun}
// @Failure 500 {object} APIResponse
// @Router /runs [get]
func (c *ProfileController) ListRuns(w http.ResponseWriter, r *http.Request) {
	var runs []models.MigrationRun
	if err := service.DB.Order("created_at DESC").Limit(100).Find(&runs).Error; err != nil {
		render.JSON(w, r, InternalErrorResponse("查询运行记录失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询运行记录成功", runs))
}
