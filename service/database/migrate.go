/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建和更新核心表与目标侧表结构
 * @architecture 数据访问层 - 迁移管理
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致
 * @dependencies migration-service/service/models, migration-service/service/target, gorm.io/gorm
 * @refs service/init.go
 */

package database

import (
	"log"

	"gorm.io/gorm"

	"migration-service/service/models"
	"migration-service/service/target"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	log.Println("开始数据库迁移...")

	// 迁移核心表：身份映射、运行记录、源配置、API密钥
	err := db.AutoMigrate(
		&models.IdentityMapping{},
		&models.MigrationRun{},
		&models.SourceProfile{},
		&models.ApiKey{},
	)
	if err != nil {
		return err
	}

	// 目标侧表
	if err := db.AutoMigrate(target.AllModels()...); err != nil {
		return err
	}

	log.Println("数据库迁移完成")
	return nil
}
