/*
 * @module service/valuemapping/resolver
 * @description 人工值映射解析器：用户声明的源侧枚举值到目标侧等价物的映射，导入时只读查询
 * @architecture 服务层 - 只读查询
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 请求携带映射集 -> 构造解析器 -> 引擎逐字段 Resolve
 * @rules 映射集只在一次迁移会话内有效，不落库
 * @dependencies 无
 * @refs service/importengine, suggest.go
 */

package valuemapping

import (
	"fmt"
	"strings"
)

// Unresolved 未解析哨兵值，界面据此渲染"请选择"
const Unresolved = ""

// Resolver 值映射解析器
type Resolver struct {
	mappings map[string]string // "group.sourceKey" -> targetKey
}

// NewResolver 从用户提交的映射集构造解析器
// 键格式为 "group.sourceKey"，与请求体中的 value_mappings 字段一致
func NewResolver(mappings map[string]string) *Resolver {
	normalized := make(map[string]string, len(mappings))
	for key, target := range mappings {
		normalized[strings.ToLower(key)] = target
	}
	return &Resolver{mappings: normalized}
}

// Resolve 解析一个源侧枚举值，未声明映射时第二个返回值为 false
func (r *Resolver) Resolve(group, sourceKey string) (string, bool) {
	target, exists := r.mappings[strings.ToLower(MappingKey(group, sourceKey))]
	if !exists || target == Unresolved {
		return Unresolved, false
	}
	return target, true
}

// MappingKey 组装映射集里的键
func MappingKey(group, sourceKey string) string {
	return fmt.Sprintf("%s.%s", group, sourceKey)
}
