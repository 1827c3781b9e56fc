/*
 * @module service/valuemapping/suggest_test
 * @description 值映射模糊建议单元测试：匹配层级与确定性
 * @architecture 测试层
 */

package valuemapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest_ExactMatch(t *testing.T) {
	source := map[string]string{"3": "Processing"}
	target := map[string]string{"proc": "processing", "open": "open"}

	result := Suggest(source, target)
	assert.Equal(t, "proc", result["3"], "大小写不敏感的精确匹配优先")
}

func TestSuggest_AliasMatch(t *testing.T) {
	source := map[string]string{
		"1": "In Bearbeitung",
		"2": "Vorkasse",
		"3": "Storniert",
	}
	target := map[string]string{
		"proc":    "Processing",
		"prepay":  "Prepayment",
		"cancel":  "Cancelled",
		"shipped": "Shipped",
	}

	result := Suggest(source, target)
	assert.Equal(t, "proc", result["1"], "德语状态名通过别名表配对")
	assert.Equal(t, "prepay", result["2"])
	assert.Equal(t, "cancel", result["3"])
}

func TestSuggest_PrefixMatch(t *testing.T) {
	source := map[string]string{"de": "Deutschland (Hauptshop)"}
	target := map[string]string{"main": "deutschland"}

	result := Suggest(source, target)
	assert.Equal(t, "main", result["de"], "6字符前缀匹配兜底")
}

func TestSuggest_UnresolvedFallback(t *testing.T) {
	source := map[string]string{"x": "Völlig Unbekannt"}
	target := map[string]string{"a": "processing"}

	result := Suggest(source, target)
	assert.Equal(t, Unresolved, result["x"], "无法建议时落到未解析哨兵")
}

// 同样的输入必须产生同样的输出，与 map 遍历顺序无关
func TestSuggest_Deterministic(t *testing.T) {
	source := map[string]string{
		"1": "In Bearbeitung",
		"2": "Offen",
		"3": "Komplett abgeschlossen",
		"4": "Storniert",
		"5": "Teilweise versandt",
	}
	target := map[string]string{
		"proc":     "Processing",
		"open":     "Open",
		"complete": "Completed",
		"cancel":   "Cancelled",
		"partial":  "Partially shipped",
	}

	first := Suggest(source, target)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Suggest(source, target))
	}
}

// 多个目标值展示名相同时，按目标键字典序取首个，保证可复现
func TestSuggest_DuplicateTargetNames(t *testing.T) {
	source := map[string]string{"1": "open"}
	target := map[string]string{
		"b_open": "Open",
		"a_open": "Open",
	}

	for i := 0; i < 20; i++ {
		result := Suggest(source, target)
		assert.Equal(t, "a_open", result["1"])
	}
}
