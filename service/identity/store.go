/*
 * @module service/identity/store
 * @description 身份映射存储：(entity_type, source_id) -> target_id 的持久映射，
 *              整个导入管线的幂等与断点续传依赖这张表
 * @architecture 数据访问层 - 仓储模式
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 写目标前 LookupTarget -> 写成功后 RecordMapping -> 变体替换时 RepointMapping
 * @rules 相同键重复写入相同 target_id 是空操作；写入不同 target_id 是不变量违反；
 *        映射只能由清理操作删除，导入引擎自身永不删除
 * @dependencies gorm.io/gorm, github.com/go-redis/redis/v8
 * @refs service/importengine, service/cleanup
 */

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"migration-service/service/models"
)

// ErrDuplicateMapping 同一 (entity_type, source_id) 被记录为两个不同的 target_id
// 属于内部不变量违反，正常运行中不应出现
var ErrDuplicateMapping = errors.New("身份映射重复且目标不一致")

const cacheTTL = 10 * time.Minute

// Store 身份映射存储
type Store struct {
	db    *gorm.DB
	cache *redis.Client // 可选的读穿缓存，为 nil 时直查数据库
}

// NewStore 创建身份映射存储
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// NewStoreWithCache 创建带 redis 读穿缓存的身份映射存储
func NewStoreWithCache(db *gorm.DB, cache *redis.Client) *Store {
	return &Store{db: db, cache: cache}
}

// LookupTarget 查询源实体的目标ID，未映射时第二个返回值为 false
func (s *Store) LookupTarget(entityType, sourceID string) (int64, bool, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(context.Background(), s.cacheKey(entityType, sourceID)).Result(); err == nil {
			return cast.ToInt64(cached), true, nil
		}
	}

	var mapping models.IdentityMapping
	err := s.db.Where("entity_type = ? AND source_id = ?", entityType, sourceID).First(&mapping).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("查询身份映射失败: %w", err)
	}

	s.cacheSet(entityType, sourceID, mapping.TargetID)
	return mapping.TargetID, true, nil
}

// RecordMapping 记录新的身份映射
// 幂等：相同键重写相同 target_id 是空操作；不同 target_id 返回 ErrDuplicateMapping
func (s *Store) RecordMapping(entityType, sourceID string, targetID int64) error {
	existing, found, err := s.LookupTarget(entityType, sourceID)
	if err != nil {
		return err
	}
	if found {
		if existing == targetID {
			return nil
		}
		return fmt.Errorf("%w: entity=%s source=%s 已映射到 %d，拒绝改写为 %d",
			ErrDuplicateMapping, entityType, sourceID, existing, targetID)
	}

	mapping := &models.IdentityMapping{
		EntityType: entityType,
		SourceID:   sourceID,
		TargetID:   targetID,
	}
	if err := s.db.Create(mapping).Error; err != nil {
		return fmt.Errorf("写入身份映射失败: %w", err)
	}

	s.cacheSet(entityType, sourceID, targetID)
	return nil
}

// RepointMapping 无条件改写映射目标
// 仅用于变体占位主明细被替换的场景，是映射目标唯一合法的替换路径
func (s *Store) RepointMapping(entityType, sourceID string, newTargetID int64) error {
	result := s.db.Model(&models.IdentityMapping{}).
		Where("entity_type = ? AND source_id = ?", entityType, sourceID).
		Update("target_id", newTargetID)
	if result.Error != nil {
		return fmt.Errorf("改写身份映射失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("改写身份映射失败: entity=%s source=%s 不存在", entityType, sourceID)
	}

	s.cacheSet(entityType, sourceID, newTargetID)
	return nil
}

// CountByType 统计某实体类型已有的映射数
func (s *Store) CountByType(entityType string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.IdentityMapping{}).
		Where("entity_type = ?", entityType).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计身份映射失败: %w", err)
	}
	return count, nil
}

// ClearByType 批量删除某实体类型的全部映射，仅供清理操作调用
func (s *Store) ClearByType(entityType string) error {
	if err := s.db.Where("entity_type = ?", entityType).
		Delete(&models.IdentityMapping{}).Error; err != nil {
		return fmt.Errorf("清理身份映射失败: %w", err)
	}

	if s.cache != nil {
		ctx := context.Background()
		if keys, err := s.cache.Keys(ctx, fmt.Sprintf("migration:identity:%s:*", entityType)).Result(); err == nil && len(keys) > 0 {
			s.cache.Del(ctx, keys...)
		}
	}
	return nil
}

func (s *Store) cacheKey(entityType, sourceID string) string {
	return fmt.Sprintf("migration:identity:%s:%s", entityType, sourceID)
}

func (s *Store) cacheSet(entityType, sourceID string, targetID int64) {
	if s.cache == nil {
		return
	}
	s.cache.Set(context.Background(), s.cacheKey(entityType, sourceID), targetID, cacheTTL)
}
