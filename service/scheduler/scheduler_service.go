/*
 * @module service/scheduler/scheduler_service
 * @description 迁移调度器服务，按 Cron 表达式定时触发保存的源配置的无人值守迁移
 * @architecture 基于Go协程和cron库的调度器模式
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 启动时加载启用的源配置 -> 注册Cron任务 -> 到点触发运行 -> 配置变更后重载
 * @rules 同一源配置同一时刻只允许一次运行，由运行器内部的会话锁保证
 * @dependencies gorm.io/gorm, github.com/robfig/cron/v3
 * @refs service/models, service/headless_run.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"migration-service/service/models"
)

// ProfileRunner 无人值守迁移运行能力，由 service.MigrationService 实现
type ProfileRunner interface {
	RunProfile(ctx context.Context, profileID string) error
}

// SchedulerService 迁移调度器服务
type SchedulerService struct {
	db      *gorm.DB
	runner  ProfileRunner
	cron    *cron.Cron
	entries map[string]cron.EntryID // 源配置ID -> cron条目
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewSchedulerService 创建调度器服务
func NewSchedulerService(db *gorm.DB, runner ProfileRunner) *SchedulerService {
	ctx, cancel := context.WithCancel(context.Background())

	return &SchedulerService{
		db:      db,
		runner:  runner,
		cron:    cron.New(cron.WithSeconds()),
		entries: make(map[string]cron.EntryID),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start 启动调度器并加载现有的调度配置
func (s *SchedulerService) Start() error {
	slog.Info("启动迁移调度器")

	s.cron.Start()

	if err := s.loadScheduledProfiles(); err != nil {
		return err
	}

	slog.Info("迁移调度器启动完成")
	return nil
}

// Stop 停止调度器
func (s *SchedulerService) Stop() {
	slog.Info("停止迁移调度器")

	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}

	slog.Info("迁移调度器已停止")
}

// loadScheduledProfiles 加载启用且配置了Cron表达式的源配置
func (s *SchedulerService) loadScheduledProfiles() error {
	var profiles []models.SourceProfile
	if err := s.db.Where("is_enabled = ? AND cron_schedule <> ''", true).Find(&profiles).Error; err != nil {
		return fmt.Errorf("获取调度配置失败: %w", err)
	}

	for i := range profiles {
		if err := s.addProfile(&profiles[i]); err != nil {
			slog.Error("添加调度配置失败", "profile_id", profiles[i].ID, "error", err)
		}
	}

	slog.Info("加载调度配置完成", "count", len(profiles))
	return nil
}

// addProfile 把单个源配置注册到cron调度器
func (s *SchedulerService) addProfile(profile *models.SourceProfile) error {
	profileID := profile.ID
	entryID, err := s.cron.AddFunc(profile.CronSchedule, func() {
		slog.Info("触发定时迁移运行", "profile_id", profileID)
		if err := s.runner.RunProfile(s.ctx, profileID); err != nil {
			slog.Error("定时迁移运行失败", "profile_id", profileID, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("注册Cron任务失败: %w", err)
	}

	s.mu.Lock()
	s.entries[profileID] = entryID
	s.mu.Unlock()

	slog.Debug("调度配置已注册", "profile_id", profileID, "cron", profile.CronSchedule)
	return nil
}

// ReloadProfile 源配置变更后重载其调度：先移除旧条目，再按最新配置注册
func (s *SchedulerService) ReloadProfile(profileID string) error {
	s.removeEntry(profileID)

	var profile models.SourceProfile
	err := s.db.First(&profile, "id = ?", profileID).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("加载源配置失败: %w", err)
	}

	if !profile.IsEnabled || profile.CronSchedule == "" {
		return nil
	}
	return s.addProfile(&profile)
}

// TriggerNow 立即触发一次运行，不等待Cron到点
func (s *SchedulerService) TriggerNow(profileID string) {
	go func() {
		if err := s.runner.RunProfile(s.ctx, profileID); err != nil {
			slog.Error("手动触发迁移运行失败", "profile_id", profileID, "error", err)
		}
	}()
}

func (s *SchedulerService) removeEntry(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.entries[profileID]; exists {
		s.cron.Remove(entryID)
		delete(s.entries, profileID)
	}
}
