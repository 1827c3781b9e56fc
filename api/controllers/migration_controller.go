/*
 * @module api/controllers/migration_controller
 * @description 迁移控制器，承接步骤调用、变体生成子循环、源元数据查询、映射建议与数据清理
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow HTTP请求 -> 参数验证 -> 服务调用 -> 响应返回
 * @rules 游标由调用方回传，服务端每次请求重新校验偏移与实体类型
 * @dependencies service/migration_service, service/importengine
 * @refs api/routes.go
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/render"

	"migration-service/service"
	"migration-service/service/importengine"
	"migration-service/service/meta"
	"migration-service/service/models"
	"migration-service/service/source"
)

// MigrationController 迁移控制器
type MigrationController struct {
	migrationService *service.MigrationService
}

// NewMigrationController 创建迁移控制器
func NewMigrationController() *MigrationController {
	return &MigrationController{
		migrationService: service.GlobalMigrationService,
	}
}

// Step 执行一次导入步骤
// @Summary 执行一次导入步骤
// @Description 在墙钟预算内按游标推进指定实体类型的导入，返回更新后的游标供下次调用回传
// @Tags 迁移
// @Accept json
// @Produce json
// @Param request body service.StepRequest true "步骤请求"
// @Success 200 {object} APIResponse{data=service.StepResponse}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /migration/step [post]
func (c *MigrationController) Step(w http.ResponseWriter, r *http.Request) {
	var req service.StepRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	if req.Cursor.EntityType == "" {
		render.JSON(w, r, BadRequestResponse("游标缺少实体类型", nil))
		return
	}

	resp, err := c.migrationService.Step(r.Context(), &req)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("执行导入步骤失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("执行导入步骤完成", resp))
}

// GenerateVariantsRequest 变体生成请求
type GenerateVariantsRequest struct {
	Profile    string                               `json:"profile"`
	Connection source.ConnectionConfig              `json:"connection"`
	Task       importengine.GenerateVariantsRequest `json:"task"`
}

// GenerateVariants 驱动单个商品的变体组合区间生成
// @Summary 变体生成子循环
// @Description 对步骤响应中 create_variants 任务指定的商品，按组合区间生成目标明细行
// @Tags 迁移
// @Accept json
// @Produce json
// @Param request body GenerateVariantsRequest true "变体生成请求"
// @Success 200 {object} APIResponse{data=importengine.GenerateVariantsResult}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /migration/variants/generate [post]
func (c *MigrationController) GenerateVariants(w http.ResponseWriter, r *http.Request) {
	var req GenerateVariantsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	if req.Task.ArticleID == "" {
		render.JSON(w, r, BadRequestResponse("变体生成任务缺少商品ID", nil))
		return
	}

	stepReq := &service.StepRequest{Profile: req.Profile, Connection: req.Connection}
	result, err := c.migrationService.GenerateVariants(r.Context(), stepReq, req.Task)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("变体生成失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("变体生成完成", result))
}

// MetadataRequest 源元数据查询请求
type MetadataRequest struct {
	Profile    string                  `json:"profile"`
	Connection source.ConnectionConfig `json:"connection"`
	Group      string                  `json:"group"`
}

// SourceMetadata 查询源库元数据
// @Summary 查询源库元数据
// @Description 查询指定值映射分组在源库中的键到显示名映射，用于填充手工映射界面
// @Tags 迁移
// @Accept json
// @Produce json
// @Param request body MetadataRequest true "元数据查询请求"
// @Success 200 {object} APIResponse{data=map[string]string}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /migration/source/metadata [post]
func (c *MigrationController) SourceMetadata(w http.ResponseWriter, r *http.Request) {
	var req MetadataRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	if req.Profile != "" {
		req.Connection.Profile = req.Profile
	}

	values, err := c.migrationService.SourceMetadata(r.Context(), req.Connection, req.Group)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("查询源元数据失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询源元数据成功", values))
}

// SuggestRequest 映射建议请求
type SuggestRequest struct {
	Profile      string                  `json:"profile"`
	Connection   source.ConnectionConfig `json:"connection"`
	Group        string                  `json:"group"`
	TargetValues map[string]string       `json:"target_values"`
}

// SuggestMappings 生成值映射建议
// @Summary 生成值映射建议
// @Description 对源值与目标值做确定性的模糊匹配：精确匹配、别名表、前缀匹配，未命中返回空串
// @Tags 迁移
// @Accept json
// @Produce json
// @Param request body SuggestRequest true "映射建议请求"
// @Success 200 {object} APIResponse{data=map[string]string}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /migration/mappings/suggest [post]
func (c *MigrationController) SuggestMappings(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	if req.Profile != "" {
		req.Connection.Profile = req.Profile
	}

	suggestions, err := c.migrationService.SuggestMappings(r.Context(), req.Connection, req.Group, req.TargetValues)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("生成映射建议失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("生成映射建议成功", suggestions))
}

// TestConnection 测试源库连接
// @Summary 测试源库连接
// @Description 验证连接参数能否连通源库
// @Tags 迁移
// @Accept json
// @Produce json
// @Param request body MetadataRequest true "连接测试请求"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /migration/source/test [post]
func (c *MigrationController) TestConnection(w http.ResponseWriter, r *http.Request) {
	var req MetadataRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	if req.Profile != "" {
		req.Connection.Profile = req.Profile
	}

	if err := c.migrationService.TestConnection(r.Context(), req.Connection); err != nil {
		render.JSON(w, r, InternalErrorResponse("源库连接失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("源库连接成功", nil))
}

// CleanupRequest 清理请求
type CleanupRequest struct {
	EntityTypes []string `json:"entity_types,omitempty"` // 为空时清理全部
}

// Cleanup 清理迁移数据
// @Summary 清理迁移数据
// @Description 清空指定实体类型的目标数据与身份映射，不传实体类型时清空全部
// @Tags 迁移
// @Accept json
// @Produce json
// @Param request body CleanupRequest true "清理请求"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /migration/cleanup [post]
func (c *MigrationController) Cleanup(w http.ResponseWriter, r *http.Request) {
	var req CleanupRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	if err := c.migrationService.Cleanup(req.EntityTypes); err != nil {
		render.JSON(w, r, InternalErrorResponse("清理迁移数据失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("清理迁移数据成功", nil))
}

// MappingCounts 查询身份映射统计
// @Summary 查询身份映射统计
// @Description 按实体类型统计已记录的身份映射数量
// @Tags 迁移
// @Produce json
// @Success 200 {object} APIResponse{data=map[string]int64}
// @Failure 500 {object} APIResponse
// @Router /migration/mappings/counts [get]
func (c *MigrationController) MappingCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := c.migrationService.MappingCounts()
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("查询身份映射统计失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询身份映射统计成功", counts))
}

// NewCursor 创建初始游标
// @Summary 创建初始游标
// @Description 返回指定实体类型的初始游标，调用方以此开启步骤循环
// @Tags 迁移
// @Produce json
// @Param entity_type query string true "实体类型"
// @Success 200 {object} APIResponse{data=models.ImportCursor}
// @Failure 400 {object} APIResponse
// @Router /migration/cursor [get]
func (c *MigrationController) NewCursor(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entity_type")
	if !meta.IsValidEntityType(entityType) {
		render.JSON(w, r, BadRequestResponse("未知实体类型: "+entityType, nil))
		return
	}

	render.JSON(w, r, SuccessResponse("创建初始游标成功", models.NewImportCursor(entityType)))
}
