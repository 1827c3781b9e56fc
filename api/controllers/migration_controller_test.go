/*
 * @module api/controllers/migration_controller_test
 * @description 迁移控制器测试文件
 * @architecture 测试层
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 测试用例 -> 接口调用 -> 结果验证
 * @rules 确保接口功能的正确性和稳定性
 * @dependencies testing, net/http/httptest
 * @refs api/controllers/migration_controller.go
 */

package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStepRequestShape 测试导入步骤请求体的序列化形状
func TestStepRequestShape(t *testing.T) {
	body := map[string]interface{}{
		"profile": "xtcommerce",
		"connection": map[string]interface{}{
			"host":   "localhost",
			"port":   3306,
			"dbname": "legacy",
		},
		"cursor": map[string]interface{}{
			"entity_type":    "article",
			"offset":         0,
			"total_estimate": -1,
		},
		"value_mappings": map[string]string{
			"order_status.1": "processing",
		},
	}

	requestBody, err := json.Marshal(body)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/migration/step", bytes.NewBuffer(requestBody))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	_ = rr

	// 控制器依赖全局服务单例（数据库连接），无法在单元测试环境直接构造
	// controller := NewMigrationController()
	// controller.Step(rr, req)
	// assert.Equal(t, http.StatusOK, rr.Code)

	t.Skip("需要数据库环境后完善测试")
}

// TestGenerateVariantsRequestShape 测试变体生成请求体的序列化形状
func TestGenerateVariantsRequestShape(t *testing.T) {
	body := map[string]interface{}{
		"profile": "xtcommerce",
		"task": map[string]interface{}{
			"article_id": "55",
			"offset":     0,
			"limit":      100,
			"groups": []map[string]interface{}{
				{"name": "Size", "options": []map[string]interface{}{
					{"name": "S", "price_delta": 5, "mode": "+"},
				}},
			},
		},
	}

	requestBody, err := json.Marshal(body)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/migration/variants/generate", bytes.NewBuffer(requestBody))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	t.Skip("需要数据库环境后完善测试")
}
