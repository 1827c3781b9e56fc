/*
 * @module service/headless_run
 * @description 无人值守迁移运行：按保存的源配置驱动全部实体类型的分步导入直至完成，含变体生成子循环
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 加载配置 -> 创建运行记录 -> 按导入顺序逐实体循环步骤 -> 变体任务子循环 -> 落盘最终状态
 * @rules 步骤级错误终止整个运行并记录错误；游标快照随运行记录持久化供诊断
 * @dependencies gorm.io/gorm
 * @refs service/scheduler, service/migration_service.go
 */

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"migration-service/service/importengine"
	"migration-service/service/meta"
	"migration-service/service/models"
	"migration-service/service/source"
)

// 变体组合子循环的单次生成区间大小
const variantChunkSize = 100

// RunProfile 按保存的源配置执行一次完整迁移
// 由调度器按 Cron 表达式触发，也可通过管理接口手动触发
func (s *MigrationService) RunProfile(ctx context.Context, profileID string) error {
	var profile models.SourceProfile
	if err := s.db.First(&profile, "id = ?", profileID).Error; err != nil {
		return fmt.Errorf("加载源配置失败: %w", err)
	}
	if !profile.IsEnabled {
		s.logger.Info("源配置已停用，跳过运行", "profile_id", profileID)
		return nil
	}

	connection, err := s.ConnectionFromProfile(&profile)
	if err != nil {
		return err
	}

	now := time.Now()
	run := &models.MigrationRun{
		Profile:       profile.Profile,
		Status:        meta.RunStatusRunning,
		EntityFlags:   profile.EntityFlags,
		ValueMappings: profile.ValueMappings,
		Progress:      models.JSONB{},
		StartTime:     &now,
		CreatedBy:     "scheduler",
	}
	if err := s.db.Create(run).Error; err != nil {
		return fmt.Errorf("创建运行记录失败: %w", err)
	}

	s.logger.Info("开始无人值守迁移运行",
		"run_id", run.ID,
		"profile", profile.Profile,
		"name", profile.Name)

	runErr := s.runAllEntities(ctx, run, &profile, connection)

	end := time.Now()
	run.EndTime = &end
	if runErr != nil {
		run.Status = meta.RunStatusFailed
		run.ErrorMessage = runErr.Error()
	} else {
		run.Status = meta.RunStatusSuccess
	}
	if err := s.db.Save(run).Error; err != nil {
		s.logger.Error("保存运行记录失败", "run_id", run.ID, "error", err)
	}

	s.logger.Info("无人值守迁移运行结束",
		"run_id", run.ID,
		"status", run.Status,
		"processed_rows", run.ProcessedRows,
		"skipped_rows", run.SkippedRows)
	return runErr
}

// runAllEntities 按固定导入顺序逐实体执行到完成
func (s *MigrationService) runAllEntities(ctx context.Context, run *models.MigrationRun, profile *models.SourceProfile, connection source.ConnectionConfig) error {
	req := &StepRequest{
		Profile:       profile.Profile,
		Connection:    connection,
		ValueMappings: profile.ValueMappings,
		SessionID:     run.ID,
	}

	for _, entityType := range meta.ImportOrder {
		if !entityEnabled(profile.EntityFlags, entityType) {
			continue
		}

		cursor := models.NewImportCursor(entityType)
		for !cursor.Done {
			if err := ctx.Err(); err != nil {
				return err
			}
			req.Cursor = cursor
			resp, err := s.Step(ctx, req)
			if err != nil {
				return err
			}

			run.ProcessedRows += int64(resp.RowsImported + resp.RowsExisting)
			run.SkippedRows += int64(resp.RowsSkipped)
			run.Progress[entityType] = resp.Cursor
			if err := s.db.Model(run).Updates(map[string]interface{}{
				"processed_rows": run.ProcessedRows,
				"skipped_rows":   run.SkippedRows,
				"progress":       run.Progress,
			}).Error; err != nil {
				s.logger.Error("更新运行进度失败", "run_id", run.ID, "error", err)
			}

			if resp.Error != nil {
				return fmt.Errorf("实体 %s 导入失败: %s (%s)", entityType, resp.Error.Message, resp.Error.Code)
			}
			if resp.CreateVariants {
				if err := s.driveVariantTasks(ctx, req, resp.VariantTasks); err != nil {
					return err
				}
			}
			cursor = resp.Cursor
		}
	}
	return nil
}

// driveVariantTasks 驱动变体生成子循环直至每个商品的组合区间耗尽
func (s *MigrationService) driveVariantTasks(ctx context.Context, req *StepRequest, tasks []models.VariantTask) error {
	for _, task := range tasks {
		offset := task.Offset
		for {
			result, err := s.GenerateVariants(ctx, req, importengine.GenerateVariantsRequest{
				ArticleID: task.ArticleID,
				Groups:    task.Groups,
				Offset:    offset,
				Limit:     variantChunkSize,
			})
			if err != nil {
				return fmt.Errorf("商品 %s 变体生成失败: %w", task.ArticleID, err)
			}
			if result.Done {
				break
			}
			offset = result.Offset
		}
	}
	return nil
}

// entityEnabled 实体类型是否被本次运行勾选；未配置勾选表时全部启用
func entityEnabled(flags models.JSONB, entityType string) bool {
	if len(flags) == 0 {
		return true
	}
	value, exists := flags[entityType]
	if !exists {
		return false
	}
	return cast.ToBool(value)
}
