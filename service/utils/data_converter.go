/*
 * @module service/utils/data_converter
 * @description 数据转换工具，提供旧平台数据的类型强制转换与字符集修复
 * @architecture 工具层 - 无状态转换
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 无状态转换：原始值 -> 类型/编码转换 -> 规范值
 * @rules 转换失败时返回零值而不是中断批次，由上层决定是否跳过该行
 * @dependencies github.com/spf13/cast, golang.org/x/text
 * @refs service/normalizer
 */

package utils

import (
	"database/sql"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// DataConverter 数据转换器
type DataConverter struct{}

// NewDataConverter 创建新的数据转换器实例
func NewDataConverter() *DataConverter {
	return &DataConverter{}
}

// ToCanonicalValue 将 database/sql 扫描出的原始值转换为规范值
// []byte 统一转成 UTF-8 字符串，NULL 转成 nil
func (dc *DataConverter) ToCanonicalValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return dc.RepairCharset(string(v))
	case sql.RawBytes:
		return dc.RepairCharset(string(v))
	case string:
		return dc.RepairCharset(v)
	default:
		return v
	}
}

// RepairCharset 修复旧库常见的单字节编码残留
// 旧商城数据库多为 latin1 存储，若字节序列不是合法 UTF-8 则按 ISO-8859-1 解码
func (dc *DataConverter) RepairCharset(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, _, err := transform.String(charmap.ISO8859_1.NewDecoder(), s)
	if err != nil {
		return s
	}
	return decoded
}

// ConvertCharset 在指定编码间转换字节序列
func (dc *DataConverter) ConvertCharset(data []byte, fromEncoding, toEncoding string) ([]byte, error) {
	from := strings.ToLower(fromEncoding)
	to := strings.ToLower(toEncoding)

	switch from {
	case "latin1", "iso-8859-1":
		if to == "utf-8" {
			decoder := charmap.ISO8859_1.NewDecoder()
			result, _, err := transform.Bytes(decoder, data)
			return result, err
		}
	case "utf-8":
		if to == "latin1" || to == "iso-8859-1" {
			encoder := charmap.ISO8859_1.NewEncoder()
			result, _, err := transform.Bytes(encoder, data)
			return result, err
		}
	}

	// 不需要转换或不支持的编码组合，返回原数据
	return data, nil
}

// ToInt64 宽松地转换为 int64
func (dc *DataConverter) ToInt64(value interface{}) int64 {
	return cast.ToInt64(value)
}

// ToFloat64 宽松地转换为 float64，兼容 "1,95" 形式的欧式小数
func (dc *DataConverter) ToFloat64(value interface{}) float64 {
	if s, ok := value.(string); ok && strings.Contains(s, ",") && !strings.Contains(s, ".") {
		value = strings.Replace(s, ",", ".", 1)
	}
	return cast.ToFloat64(value)
}

// ToBool 宽松地转换为布尔值
func (dc *DataConverter) ToBool(value interface{}) bool {
	return cast.ToBool(value)
}

// ToString 宽松地转换为字符串，nil 转为空串
func (dc *DataConverter) ToString(value interface{}) string {
	return cast.ToString(value)
}
