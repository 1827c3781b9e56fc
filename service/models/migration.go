/*
 * @module service/models/migration
 * @description 迁移核心模型，包含身份映射、迁移运行记录、源 Profile 配置和 API 密钥
 * @architecture 数据模型层
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 身份映射随导入持续累积；迁移运行记录随每个步骤更新
 * @rules 身份映射在 (entity_type, source_id) 上唯一，仅清理操作可删除
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/identity, service/migration_service.go
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityMapping 身份映射模型：源实体ID到目标实体ID的持久记录
// 整个迁移管线的幂等性建立在这张表之上
type IdentityMapping struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	EntityType string    `json:"entity_type" gorm:"not null;size:32;uniqueIndex:idx_identity_entity_source,priority:1"`
	SourceID   string    `json:"source_id" gorm:"not null;size:64;uniqueIndex:idx_identity_entity_source,priority:2"`
	TargetID   int64     `json:"target_id" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName 指定表名
func (IdentityMapping) TableName() string {
	return "identity_mappings"
}

// BeforeCreate GORM钩子，创建前生成UUID
func (m *IdentityMapping) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// MigrationRun 迁移运行记录：一次端到端迁移会话的持久化簿记
type MigrationRun struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Profile       string         `json:"profile" gorm:"not null;size:32;index"`
	Status        string         `json:"status" gorm:"not null;size:20;default:'pending'"` // pending, running, success, failed, aborted
	EntityFlags   JSONB          `json:"entity_flags,omitempty" gorm:"type:jsonb"`         // 本次运行勾选的实体类型
	Progress      JSONB          `json:"progress,omitempty" gorm:"type:jsonb"`             // 每实体类型的游标快照
	ValueMappings JSONBStringMap `json:"value_mappings,omitempty" gorm:"type:jsonb"`       // 用户声明的值映射 group.sourceKey -> targetKey
	ProcessedRows int64          `json:"processed_rows" gorm:"default:0"`
	SkippedRows   int64          `json:"skipped_rows" gorm:"default:0"`
	ErrorMessage  string         `json:"error_message,omitempty" gorm:"type:text"`
	StartTime     *time.Time     `json:"start_time,omitempty"`
	EndTime       *time.Time     `json:"end_time,omitempty"`
	CreatedBy     string         `json:"created_by" gorm:"not null;default:'system';size:100"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName 指定表名
func (MigrationRun) TableName() string {
	return "migration_runs"
}

// BeforeCreate GORM钩子，创建前生成UUID
func (r *MigrationRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// IsCompleted 判断运行是否已结束
func (r *MigrationRun) IsCompleted() bool {
	completed := map[string]bool{
		"success": true,
		"failed":  true,
		"aborted": true,
	}
	return completed[r.Status]
}

// SourceProfile 源平台连接配置：调度器驱动无人值守迁移时使用
// 连接口令以 AES 密文存储
type SourceProfile struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string         `json:"name" gorm:"not null;size:100"`
	Profile       string         `json:"profile" gorm:"not null;size:32"`
	Connection    JSONB          `json:"connection,omitempty" gorm:"type:jsonb"` // host/port/user/password(密文)/dbname/prefix
	EntityFlags   JSONB          `json:"entity_flags,omitempty" gorm:"type:jsonb"`
	ValueMappings JSONBStringMap `json:"value_mappings,omitempty" gorm:"type:jsonb"`
	CronSchedule  string         `json:"cron_schedule,omitempty" gorm:"size:100"` // 为空则不参与调度
	IsEnabled     bool           `json:"is_enabled" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName 指定表名
func (SourceProfile) TableName() string {
	return "source_profiles"
}

// BeforeCreate GORM钩子，创建前生成UUID
func (p *SourceProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// ApiKey 管理接口 API 密钥模型，密钥以 bcrypt 哈希存储
type ApiKey struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string     `json:"name" gorm:"not null;size:100"`
	KeyHash   string     `json:"-" gorm:"not null;size:100"`
	KeyPrefix string     `json:"key_prefix" gorm:"not null;size:16;index"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (ApiKey) TableName() string {
	return "api_keys"
}

// BeforeCreate GORM钩子，创建前生成UUID
func (k *ApiKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	return nil
}
