/*
 * @module service/utils/data_converter_test
 * @description 数据转换工具单元测试
 * @architecture 测试层
 */

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCanonicalValue(t *testing.T) {
	dc := NewDataConverter()

	assert.Nil(t, dc.ToCanonicalValue(nil))
	assert.Equal(t, "Stuhl", dc.ToCanonicalValue([]byte("Stuhl")))
	assert.Equal(t, int64(7), dc.ToCanonicalValue(int64(7)))
	assert.Equal(t, 19.9, dc.ToCanonicalValue(19.9))
}

func TestRepairCharset(t *testing.T) {
	dc := NewDataConverter()

	// 合法UTF-8原样返回
	assert.Equal(t, "Größe", dc.RepairCharset("Größe"))

	// latin1 残留：0xF6 是 ISO-8859-1 的 ö
	latin1 := string([]byte{'G', 'r', 0xF6, 0xDF, 'e'})
	assert.Equal(t, "Größe", dc.RepairCharset(latin1))
}

func TestToFloat64_EuropeanDecimal(t *testing.T) {
	dc := NewDataConverter()

	assert.Equal(t, 1.95, dc.ToFloat64("1,95"))
	assert.Equal(t, 1.95, dc.ToFloat64("1.95"))
	assert.Equal(t, 1.95, dc.ToFloat64(1.95))
	assert.Equal(t, 0.0, dc.ToFloat64(nil))
	// 千分位与小数点并存时不做替换
	assert.Equal(t, 0.0, dc.ToFloat64("1,234.56"))
}

func TestConvertCharset(t *testing.T) {
	dc := NewDataConverter()

	utf8Bytes, err := dc.ConvertCharset([]byte{0xF6}, "latin1", "utf-8")
	assert.NoError(t, err)
	assert.Equal(t, "ö", string(utf8Bytes))

	back, err := dc.ConvertCharset(utf8Bytes, "utf-8", "latin1")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xF6}, back)

	// 不支持的组合原样返回
	same, err := dc.ConvertCharset([]byte("abc"), "utf-8", "utf-8")
	assert.NoError(t, err)
	assert.Equal(t, []byte("abc"), same)
}
