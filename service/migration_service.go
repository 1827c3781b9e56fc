/*
 * @module service/migration_service
 * @description 迁移服务门面：组装源适配器、导入引擎与值映射解析器，承接步骤调用、元数据查询、映射建议与清理
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 请求携带游标与值映射 -> 按 Profile 建立源连接 -> 引擎执行步骤 -> 返回更新后的游标与进度
 * @rules 游标不在服务端持久化；同一迁移会话可选地用分布式锁防并发；源凭据入库前加密
 * @dependencies gorm.io/gorm, github.com/go-redis/redis/v8
 * @refs service/importengine, service/source, api/controllers
 */

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"migration-service/service/distributed_lock"
	"migration-service/service/identity"
	"migration-service/service/importengine"
	"migration-service/service/meta"
	"migration-service/service/models"
	"migration-service/service/normalizer"
	"migration-service/service/source"
	"migration-service/service/target"
	"migration-service/service/utils"
	"migration-service/service/valuemapping"
)

// 迁移会话锁的持有时长，步骤间隙内由下一次请求刷新
const sessionLockTTL = 60 * time.Second

// StepRequest 单次步骤请求
type StepRequest struct {
	Profile         string                  `json:"profile"`
	Connection      source.ConnectionConfig `json:"connection"`
	Cursor          models.ImportCursor     `json:"cursor"`
	PageSize        int                     `json:"page_size,omitempty"`
	ValueMappings   map[string]string       `json:"value_mappings,omitempty"`
	TransformScript string                  `json:"transform_script,omitempty"`
	SessionID       string                  `json:"session_id,omitempty"`
}

// StepResponse 单次步骤响应，游标原样返回由调用方在下次请求回传
type StepResponse struct {
	Success                   bool                 `json:"success"`
	Done                      bool                 `json:"done"`
	Progress                  float64              `json:"progress"`
	Offset                    int64                `json:"offset"`
	Message                   string               `json:"message"`
	EstimatedSecondsRemaining int64                `json:"estimated_seconds_remaining,omitempty"`
	Cursor                    models.ImportCursor  `json:"cursor"`
	RowsImported              int                  `json:"rows_imported"`
	RowsExisting              int                  `json:"rows_existing"`
	RowsSkipped               int                  `json:"rows_skipped"`
	SkipMessages              []string             `json:"skip_messages,omitempty"`
	CreateVariants            bool                 `json:"create_variants,omitempty"`
	VariantTasks              []models.VariantTask `json:"params,omitempty"`
	Error                     *models.StepError    `json:"error,omitempty"`
}

// MigrationService 迁移服务
type MigrationService struct {
	db       *gorm.DB
	identity *identity.Store
	writer   *target.Writer
	crypto   *utils.CryptoUtils
	lock     *distributed_lock.RedisLock // 可选，未配置Redis时为nil
	logger   *slog.Logger
	budget   time.Duration
}

// NewMigrationService 创建迁移服务
func NewMigrationService(db *gorm.DB, store *identity.Store, crypto *utils.CryptoUtils, logger *slog.Logger, budget time.Duration) *MigrationService {
	if budget <= 0 {
		budget = importengine.DefaultStepBudget
	}
	return &MigrationService{
		db:       db,
		identity: store,
		writer:   target.NewWriter(db),
		crypto:   crypto,
		logger:   logger,
		budget:   budget,
	}
}

// SetSessionLock 挂载分布式会话锁
func (s *MigrationService) SetSessionLock(lock *distributed_lock.RedisLock) {
	s.lock = lock
}

// Step 执行一次有预算的导入步骤
func (s *MigrationService) Step(ctx context.Context, req *StepRequest) (*StepResponse, error) {
	if req.SessionID != "" && s.lock != nil {
		locked, err := s.lock.TryLock(ctx, req.SessionID, sessionLockTTL)
		if err != nil {
			return nil, fmt.Errorf("会话锁获取失败: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("迁移会话 %s 正在被其他实例执行", req.SessionID)
		}
		defer func() {
			if err := s.lock.Unlock(ctx, req.SessionID); err != nil {
				s.logger.Error("会话锁释放失败", "session_id", req.SessionID, "error", err)
			}
		}()
	}

	engine, adapter, err := s.buildEngine(req)
	if err != nil {
		return nil, err
	}
	defer adapter.Close()

	result := engine.Step(ctx, req.Cursor)
	return s.buildResponse(engine, result), nil
}

// GenerateVariants 驱动单个商品的变体组合区间生成
func (s *MigrationService) GenerateVariants(ctx context.Context, req *StepRequest, genReq importengine.GenerateVariantsRequest) (*importengine.GenerateVariantsResult, error) {
	engine, adapter, err := s.buildEngine(req)
	if err != nil {
		return nil, err
	}
	defer adapter.Close()

	return engine.GenerateVariants(ctx, genReq)
}

// SourceMetadata 查询源库指定分组的键到显示名映射
func (s *MigrationService) SourceMetadata(ctx context.Context, cfg source.ConnectionConfig, group string) (map[string]string, error) {
	if !meta.IsValidValueGroup(group) {
		return nil, fmt.Errorf("未知值映射分组: %s", group)
	}
	adapter, err := s.openAdapter(cfg)
	if err != nil {
		return nil, err
	}
	defer adapter.Close()

	return adapter.ListMetadata(ctx, group)
}

// SuggestMappings 对源值与目标值列表做确定性的模糊匹配建议
func (s *MigrationService) SuggestMappings(ctx context.Context, cfg source.ConnectionConfig, group string, targetValues map[string]string) (map[string]string, error) {
	sourceValues, err := s.SourceMetadata(ctx, cfg, group)
	if err != nil {
		return nil, err
	}
	return valuemapping.Suggest(sourceValues, targetValues), nil
}

// TestConnection 验证源库连通性
func (s *MigrationService) TestConnection(ctx context.Context, cfg source.ConnectionConfig) error {
	adapter, err := s.openAdapter(cfg)
	if err != nil {
		return err
	}
	defer adapter.Close()

	return adapter.Ping(ctx)
}

// Cleanup 清空指定实体类型的目标数据与身份映射
// 不传实体类型时清空全部
func (s *MigrationService) Cleanup(entityTypes []string) error {
	if len(entityTypes) == 0 {
		entityTypes = meta.ImportOrder
		if err := s.writer.TruncateAll(); err != nil {
			return err
		}
	}
	for _, entityType := range entityTypes {
		if !meta.IsValidEntityType(entityType) {
			return fmt.Errorf("未知实体类型: %s", entityType)
		}
		if err := s.identity.ClearByType(entityType); err != nil {
			return err
		}
	}
	s.logger.Info("迁移数据清理完成", "entity_types", entityTypes)
	return nil
}

// MappingCounts 按实体类型统计已有身份映射数
func (s *MigrationService) MappingCounts() (map[string]int64, error) {
	counts := make(map[string]int64, len(meta.ImportOrder))
	for _, entityType := range meta.ImportOrder {
		count, err := s.identity.CountByType(entityType)
		if err != nil {
			return nil, err
		}
		counts[entityType] = count
	}
	return counts, nil
}

// buildEngine 按请求组装引擎与源适配器
func (s *MigrationService) buildEngine(req *StepRequest) (*importengine.Engine, *source.Adapter, error) {
	if req.Profile != "" {
		req.Connection.Profile = req.Profile
	}
	adapter, err := s.openAdapter(req.Connection)
	if err != nil {
		return nil, nil, err
	}

	resolver := valuemapping.NewResolver(req.ValueMappings)
	engine := importengine.NewEngine(adapter, s.writer, s.identity, resolver, s.logger, importengine.Config{
		PageSize:   req.PageSize,
		StepBudget: s.budget,
	})

	if req.TransformScript != "" {
		script, err := normalizer.CompileTransformScript(req.TransformScript)
		if err != nil {
			adapter.Close()
			return nil, nil, fmt.Errorf("转换脚本编译失败: %w", err)
		}
		engine.SetTransformScript(script)
	}
	return engine, adapter, nil
}

func (s *MigrationService) openAdapter(cfg source.ConnectionConfig) (*source.Adapter, error) {
	if !meta.IsValidProfile(cfg.Profile) {
		return nil, fmt.Errorf("未知源平台 Profile: %s", cfg.Profile)
	}
	return source.NewAdapter(cfg)
}

// buildResponse 把引擎步骤结果组装为调用方协议形状
func (s *MigrationService) buildResponse(engine *importengine.Engine, result *importengine.StepResult) *StepResponse {
	resp := &StepResponse{
		Success:                   result.StepError == nil,
		Done:                      result.Cursor.Done,
		Progress:                  engine.Progress(result.Cursor),
		Offset:                    result.Cursor.Offset,
		Message:                   result.Cursor.Message,
		EstimatedSecondsRemaining: result.Cursor.EstimatedSecondsRemaining,
		Cursor:                    result.Cursor,
		RowsImported:              result.RowsImported,
		RowsExisting:              result.RowsExisting,
		RowsSkipped:               result.RowsSkipped,
		SkipMessages:              result.SkipMessages,
		Error:                     result.StepError,
	}
	if len(result.VariantTasks) > 0 {
		resp.CreateVariants = true
		resp.VariantTasks = result.VariantTasks
	}
	if result.StepError != nil {
		resp.Done = true
		resp.Progress = 1
	}
	return resp
}

// SaveSourceProfile 保存源连接配置，凭据加密入库
func (s *MigrationService) SaveSourceProfile(profile *models.SourceProfile) error {
	if !meta.IsValidProfile(profile.Profile) {
		return fmt.Errorf("未知源平台 Profile: %s", profile.Profile)
	}
	if password := cast.ToString(profile.Connection["password"]); password != "" {
		encrypted, err := s.crypto.EncryptCredential(password)
		if err != nil {
			return fmt.Errorf("凭据加密失败: %w", err)
		}
		profile.Connection["password"] = encrypted
	}
	if profile.ID != "" {
		return s.db.Save(profile).Error
	}
	return s.db.Create(profile).Error
}

// ListSourceProfiles 列出已保存的源连接配置，凭据不回显
func (s *MigrationService) ListSourceProfiles() ([]models.SourceProfile, error) {
	var profiles []models.SourceProfile
	if err := s.db.Order("created_at").Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		delete(profiles[i].Connection, "password")
	}
	return profiles, nil
}

// DeleteSourceProfile 删除源连接配置
func (s *MigrationService) DeleteSourceProfile(id string) error {
	return s.db.Delete(&models.SourceProfile{}, "id = ?", id).Error
}

// ConnectionFromProfile 把存储的连接配置解码为适配器参数，凭据解密
func (s *MigrationService) ConnectionFromProfile(profile *models.SourceProfile) (source.ConnectionConfig, error) {
	cfg := source.ConnectionConfig{
		Profile: profile.Profile,
		Host:    cast.ToString(profile.Connection["host"]),
		Port:    cast.ToInt(profile.Connection["port"]),
		User:    cast.ToString(profile.Connection["user"]),
		DBName:  cast.ToString(profile.Connection["dbname"]),
		Prefix:  cast.ToString(profile.Connection["prefix"]),
	}
	if encrypted := cast.ToString(profile.Connection["password"]); encrypted != "" {
		password, err := s.crypto.DecryptCredential(encrypted)
		if err != nil {
			return cfg, fmt.Errorf("凭据解密失败: %w", err)
		}
		cfg.Password = password
	}
	return cfg, nil
}
