/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, testify, time
 * @refs service/models, service/target
 */

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"migration-service/service/models"
	"migration-service/service/target"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移核心表与目标侧表
	err = db.AutoMigrate(
		&models.IdentityMapping{},
		&models.MigrationRun{},
		&models.SourceProfile{},
		&models.ApiKey{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	if err := db.AutoMigrate(target.AllModels()...); err != nil {
		panic(fmt.Sprintf("failed to migrate target tables: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"identity_mappings",
		"migration_runs",
		"source_profiles",
		"api_keys",
		"target_categories",
		"target_suppliers",
		"target_customers",
		"target_articles",
		"target_article_details",
		"target_prices",
		"target_images",
		"target_properties",
		"target_orders",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// NewLegacySourceDB 创建承载旧平台表结构的内存SQLite连接，供源适配器测试使用
func NewLegacySourceDB() *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic(fmt.Sprintf("failed to open legacy source database: %v", err))
	}
	return db
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// IdentityMappingOption 身份映射选项函数类型
type IdentityMappingOption func(*models.IdentityMapping)

// CreateIdentityMapping 创建测试身份映射
func (f *TestDataFactory) CreateIdentityMapping(entityType, sourceID string, targetID int64, opts ...IdentityMappingOption) *models.IdentityMapping {
	mapping := &models.IdentityMapping{
		EntityType: entityType,
		SourceID:   sourceID,
		TargetID:   targetID,
	}

	for _, opt := range opts {
		opt(mapping)
	}

	if err := f.DB.Create(mapping).Error; err != nil {
		panic(fmt.Sprintf("failed to create test identity mapping: %v", err))
	}

	return mapping
}

// SourceProfileOption 源配置选项函数类型
type SourceProfileOption func(*models.SourceProfile)

// CreateSourceProfile 创建测试源配置
func (f *TestDataFactory) CreateSourceProfile(profile string, opts ...SourceProfileOption) *models.SourceProfile {
	sourceProfile := &models.SourceProfile{
		Name:    "测试源配置_" + generateSuffix(),
		Profile: profile,
		Connection: models.JSONB{
			"host":   "localhost",
			"port":   3306,
			"user":   "shop",
			"dbname": "legacy_shop",
			"prefix": "",
		},
		IsEnabled: true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(sourceProfile)
	}

	if err := f.DB.Create(sourceProfile).Error; err != nil {
		panic(fmt.Sprintf("failed to create test source profile: %v", err))
	}

	return sourceProfile
}

// CreateArticleWithDetail 创建测试商品及其占位主明细，返回商品
func (f *TestDataFactory) CreateArticleWithDetail(name, orderNumber string, price, weight float64) *target.Article {
	article := &target.Article{Name: name, Active: true}
	if err := f.DB.Create(article).Error; err != nil {
		panic(fmt.Sprintf("failed to create test article: %v", err))
	}
	detail := &target.ArticleDetail{
		ArticleID:   article.ID,
		OrderNumber: orderNumber,
		Kind:        1,
		Price:       price,
		Weight:      weight,
	}
	if err := f.DB.Create(detail).Error; err != nil {
		panic(fmt.Sprintf("failed to create test article detail: %v", err))
	}
	article.MainDetailID = detail.ID
	if err := f.DB.Model(article).Update("main_detail_id", detail.ID).Error; err != nil {
		panic(fmt.Sprintf("failed to set main detail: %v", err))
	}
	return article
}

func generateSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%100000)
}

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// CreateJSONRequest 创建JSON请求
func (h *HTTPTestHelper) CreateJSONRequest(method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// AssertJSONResponse 断言JSON响应
func (h *HTTPTestHelper) AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody interface{}) {
	assert.Equal(t, expectedStatus, w.Code)

	if expectedBody != nil {
		var actualBody interface{}
		err := json.Unmarshal(w.Body.Bytes(), &actualBody)
		assert.NoError(t, err)

		expectedJSON, _ := json.Marshal(expectedBody)
		actualJSON, _ := json.Marshal(actualBody)

		assert.JSONEq(t, string(expectedJSON), string(actualJSON))
	}
}
