/*
 * @module service/normalizer/normalizer
 * @description 字段规范化处理器：把平台特有的原始行（含键值附加行）折叠为规范行
 * @architecture 数据处理层 - 累加器折叠
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 原始行 -> 按实体ID分组累加 -> 字段改名 -> 可选脚本转换 -> 规范行
 * @rules 输入行按实体ID聚簇（相邻行同ID），不要求整表全局有序；
 *        规范行固定以 _sourceId 携带源侧自然主键
 * @dependencies github.com/spf13/cast
 * @refs service/source, service/importengine
 */

package normalizer

import (
	"fmt"

	"github.com/spf13/cast"

	"migration-service/service/models"
	"migration-service/service/source"
	"migration-service/service/utils"
)

// 键值附加行的固定字段名，与 service/source 适配器的输出约定一致
const (
	metaKeyField   = "_metaKey"
	metaValueField = "_metaValue"
)

// Normalizer 字段规范化处理器
type Normalizer struct {
	def       *source.ProfileDefinition
	script    *TransformScript
	converter *utils.DataConverter
}

// NewNormalizer 创建指定 Profile 的规范化处理器
func NewNormalizer(def *source.ProfileDefinition) *Normalizer {
	return &Normalizer{
		def:       def,
		converter: utils.NewDataConverter(),
	}
}

// SetTransformScript 挂载用户自定义转换脚本，逐行在改名之后执行
func (n *Normalizer) SetTransformScript(script *TransformScript) {
	n.script = script
}

// Normalize 把一页原始行规范化为平坦的规范行序列
// 同一实体ID的多条物理行（主行 + 键值行）折叠为一条；ID未见过时新建累加器
func (n *Normalizer) Normalize(entityType string, rawRows []map[string]interface{}) ([]map[string]interface{}, error) {
	query := n.entityQuery(entityType)
	if query == nil {
		return nil, fmt.Errorf("profile %s 未定义实体 %s 的查询能力", n.def.Name, entityType)
	}

	var result []map[string]interface{}
	var current map[string]interface{}
	var currentID string

	for _, raw := range rawRows {
		id := cast.ToString(raw[query.IDField])
		if current == nil || id != currentID {
			// 新实体：开启新的累加器
			current = make(map[string]interface{})
			currentID = id
			result = append(result, current)
			current[models.SourceIDField] = id
		}

		if metaKey, isMeta := raw[metaKeyField]; isMeta {
			// 键值附加行：折叠为单个字段
			n.applyField(current, query, cast.ToString(metaKey), raw[metaValueField])
			continue
		}

		// 主行：逐列改名合并
		for column, value := range raw {
			if column == query.IDField {
				continue
			}
			n.applyField(current, query, column, value)
		}
	}

	if n.script != nil {
		for i, row := range result {
			transformed, err := n.script.Run(row)
			if err != nil {
				return nil, fmt.Errorf("转换脚本执行失败（第 %d 行）: %w", i, err)
			}
			result[i] = transformed
		}
	}

	return result, nil
}

// applyField 按改名表落入规范字段，字符串值顺带做字符集修复
func (n *Normalizer) applyField(row map[string]interface{}, query *source.EntityQuery, legacyKey string, value interface{}) {
	canonical := legacyKey
	if renamed, exists := query.Renames[legacyKey]; exists {
		canonical = renamed
	}
	if s, ok := value.(string); ok {
		value = n.converter.RepairCharset(s)
	}
	row[canonical] = value
}

func (n *Normalizer) entityQuery(entityType string) *source.EntityQuery {
	if n.def == nil {
		return nil
	}
	return n.def.Entities[entityType]
}
