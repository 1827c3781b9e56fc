/*
 * @module service/normalizer/normalizer_test
 * @description 字段规范化处理器单元测试：键值行折叠、字段改名与转换脚本
 * @architecture 测试层
 */

package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migration-service/service/models"
	"migration-service/service/source"
)

func testDefinition() *source.ProfileDefinition {
	return &source.ProfileDefinition{
		Name: "testprofile",
		Entities: map[string]*source.EntityQuery{
			"article": {
				SQL:     "SELECT * FROM products ORDER BY products_id",
				IDField: "products_id",
				Renames: map[string]string{
					"products_name":  "name",
					"products_price": "price",
					"tax_class_id":   "taxrate",
				},
			},
		},
	}
}

func TestNormalize_RenamesAndSourceID(t *testing.T) {
	n := NewNormalizer(testDefinition())

	rows, err := n.Normalize("article", []map[string]interface{}{
		{"products_id": int64(7), "products_name": "Stuhl", "products_price": 19.9},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "7", rows[0][models.SourceIDField])
	assert.Equal(t, "Stuhl", rows[0]["name"])
	assert.Equal(t, 19.9, rows[0]["price"])
	_, hasLegacy := rows[0]["products_name"]
	assert.False(t, hasLegacy, "旧字段名不应出现在规范行中")
}

func TestNormalize_FoldsKeyValueRows(t *testing.T) {
	n := NewNormalizer(testDefinition())

	// 主行后紧跟同ID的键值附加行
	rows, err := n.Normalize("article", []map[string]interface{}{
		{"products_id": "7", "products_name": "Stuhl"},
		{"products_id": "7", "_metaKey": "products_price", "_metaValue": 19.9},
		{"products_id": "7", "_metaKey": "tax_class_id", "_metaValue": "1"},
		{"products_id": "8", "products_name": "Tisch"},
		{"products_id": "8", "_metaKey": "products_price", "_metaValue": 49.0},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2, "同一实体的多条物理行应折叠为一条规范行")

	assert.Equal(t, "7", rows[0][models.SourceIDField])
	assert.Equal(t, "Stuhl", rows[0]["name"])
	assert.Equal(t, 19.9, rows[0]["price"])
	assert.Equal(t, "1", rows[0]["taxrate"])

	assert.Equal(t, "8", rows[1][models.SourceIDField])
	assert.Equal(t, 49.0, rows[1]["price"])
}

func TestNormalize_UnknownEntity(t *testing.T) {
	n := NewNormalizer(testDefinition())

	_, err := n.Normalize("order", []map[string]interface{}{{"id": 1}})
	assert.Error(t, err)
}

func TestNormalize_TransformScript(t *testing.T) {
	n := NewNormalizer(testDefinition())

	script, err := CompileTransformScript(`
import "strings"

func Transform(row map[string]interface{}) (map[string]interface{}, error) {
	if name, ok := row["name"].(string); ok {
		row["name"] = strings.ToUpper(name)
	}
	return row, nil
}`)
	require.NoError(t, err)
	n.SetTransformScript(script)

	rows, err := n.Normalize("article", []map[string]interface{}{
		{"products_id": "7", "products_name": "stuhl"},
	})
	require.NoError(t, err)
	assert.Equal(t, "STUHL", rows[0]["name"])
}

func TestCompileTransformScript_MissingEntry(t *testing.T) {
	_, err := CompileTransformScript(`func NotTransform() {}`)
	assert.Error(t, err)
}
