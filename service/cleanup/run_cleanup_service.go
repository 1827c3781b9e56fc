/*
 * @module service/cleanup/run_cleanup_service
 * @description 运行记录清理服务，定期清理过期的迁移运行历史
 * @architecture 分层架构 - 业务服务层
 * @stateFlow 定时触发 -> 读取保留天数 -> 执行清理 -> 记录结果
 * @rules 只清理已结束的运行记录，进行中的运行不受影响
 * @dependencies gorm.io/gorm, github.com/robfig/cron/v3
 * @refs service/models
 */

package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"migration-service/service/meta"
	"migration-service/service/models"
)

// DefaultRunRetentionDays 运行记录默认保留天数
const DefaultRunRetentionDays = 30

// RunCleanupService 迁移运行记录清理服务
type RunCleanupService struct {
	db      *gorm.DB
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
}

// NewRunCleanupService 创建运行记录清理服务实例
func NewRunCleanupService(db *gorm.DB) *RunCleanupService {
	ctx, cancel := context.WithCancel(context.Background())

	return &RunCleanupService{
		db:     db,
		cron:   cron.New(cron.WithSeconds()),
		ctx:    ctx,
		cancel: cancel,
	}
}

// CleanupExpiredRuns 清理已结束且超过保留期的迁移运行记录
func (s *RunCleanupService) CleanupExpiredRuns(ctx context.Context) error {
	retentionDays := runRetentionDays()
	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)

	slog.Debug("清理迁移运行记录",
		"cutoff_date", cutoffDate.Format("2006-01-02 15:04:05"),
		"retention_days", retentionDays)

	result := s.db.Where("created_at < ? AND status IN ?", cutoffDate,
		[]string{meta.RunStatusSuccess, meta.RunStatusFailed, meta.RunStatusAborted}).
		Delete(&models.MigrationRun{})
	if result.Error != nil {
		return fmt.Errorf("删除迁移运行记录失败: %w", result.Error)
	}

	slog.Info("迁移运行记录清理完成",
		"deleted_count", result.RowsAffected,
		"retention_days", retentionDays)
	return nil
}

// StartScheduledCleanup 启动定时清理任务
func (s *RunCleanupService) StartScheduledCleanup() error {
	if s.started {
		return fmt.Errorf("运行记录清理调度器已经启动")
	}

	// 每天凌晨2点执行清理任务
	// Cron表达式：秒 分 时 日 月 周
	_, err := s.cron.AddFunc("0 0 2 * * *", func() {
		if err := s.CleanupExpiredRuns(s.ctx); err != nil {
			slog.Error("定时运行记录清理任务失败", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("添加定时任务失败: %w", err)
	}

	s.cron.Start()
	s.started = true

	slog.Info("运行记录清理调度器启动成功，将于每天凌晨2点执行清理任务")
	return nil
}

// StopScheduledCleanup 停止定时清理任务
func (s *RunCleanupService) StopScheduledCleanup() {
	if !s.started {
		return
	}

	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	s.started = false

	slog.Info("运行记录清理调度器已停止")
}

// runRetentionDays 从环境变量读取保留天数
func runRetentionDays() int {
	if value := os.Getenv("RUN_RETENTION_DAYS"); value != "" {
		if days, err := strconv.Atoi(value); err == nil && days > 0 {
			return days
		}
	}
	return DefaultRunRetentionDays
}
