/*
 * @module service/valuemapping/resolver_test
 * @description 值映射解析器单元测试
 * @architecture 测试层
 */

package valuemapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(map[string]string{
		"order_status.In Bearbeitung": "processing",
		"payment_mean.Vorkasse":       "prepayment",
		"tax_rate.1":                  "19",
	})

	resolved, ok := resolver.Resolve("order_status", "In Bearbeitung")
	assert.True(t, ok)
	assert.Equal(t, "processing", resolved)

	// 键匹配大小写不敏感
	resolved, ok = resolver.Resolve("order_status", "in bearbeitung")
	assert.True(t, ok)
	assert.Equal(t, "processing", resolved)

	resolved, ok = resolver.Resolve("tax_rate", "1")
	assert.True(t, ok)
	assert.Equal(t, "19", resolved)
}

func TestResolver_Unresolved(t *testing.T) {
	resolver := NewResolver(map[string]string{
		"order_status.offen": Unresolved, // 显式未解析
	})

	resolved, ok := resolver.Resolve("order_status", "offen")
	assert.False(t, ok, "映射到未解析哨兵视同缺失")
	assert.Equal(t, Unresolved, resolved)

	_, ok = resolver.Resolve("order_status", "storniert")
	assert.False(t, ok, "未声明的键不应解析")

	_, ok = resolver.Resolve("payment_mean", "offen")
	assert.False(t, ok, "分组参与键的组装")
}

func TestMappingKey(t *testing.T) {
	assert.Equal(t, "order_status.offen", MappingKey("order_status", "offen"))
}
