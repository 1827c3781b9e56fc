/*
 * @module service/valuemapping/suggest
 * @description 值映射模糊建议：对源/目标两侧的枚举值列表做确定性的自动配对预填
 * @architecture 服务层 - 纯计算
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 精确匹配 -> 别名表自上而下首个命中 -> 6字符前缀匹配 -> 未解析哨兵
 * @rules 同样的输入必须得到同样的输出：源键按字典序遍历，别名表按声明顺序检查
 * @dependencies 无
 * @refs resolver.go
 */

package valuemapping

import (
	"sort"
	"strings"
)

const prefixMatchLen = 6

// aliasEntry 别名组：组内任意两个值视为等价
type aliasEntry []string

// aliasTable 固定别名表，自上而下检查，先命中先生效
// 覆盖德语商城常见的状态/支付方式叫法
var aliasTable = []aliasEntry{
	{"vorkasse", "prepayment", "payment in advance"},
	{"nachnahme", "cash on delivery", "cash_on_delivery"},
	{"rechnung", "invoice"},
	{"lastschrift", "debit", "direct debit"},
	{"kreditkarte", "credit card"},
	{"in bearbeitung", "processing", "in progress"},
	{"offen", "open", "pending"},
	{"komplett abgeschlossen", "completed", "complete"},
	{"storniert", "cancelled", "canceled"},
	{"teilweise versandt", "partially shipped"},
	{"komplett versandt", "shipped"},
	{"standard", "default"},
}

// Suggest 为一组源侧枚举值建议目标侧映射
// 返回 sourceKey -> targetKey，无法建议的键映射到未解析哨兵
func Suggest(sourceValues, targetValues map[string]string) map[string]string {
	// 目标侧显示名的小写索引：显示名 -> 目标键
	targetByName := make(map[string]string, len(targetValues))
	targetKeys := make([]string, 0, len(targetValues))
	for key := range targetValues {
		targetKeys = append(targetKeys, key)
	}
	sort.Strings(targetKeys)
	for _, key := range targetKeys {
		name := strings.ToLower(strings.TrimSpace(targetValues[key]))
		if _, taken := targetByName[name]; !taken {
			targetByName[name] = key
		}
	}

	sourceKeys := make([]string, 0, len(sourceValues))
	for key := range sourceValues {
		sourceKeys = append(sourceKeys, key)
	}
	sort.Strings(sourceKeys)

	result := make(map[string]string, len(sourceValues))
	for _, sourceKey := range sourceKeys {
		sourceName := strings.ToLower(strings.TrimSpace(sourceValues[sourceKey]))
		result[sourceKey] = suggestOne(sourceName, targetByName, targetKeys, targetValues)
	}
	return result
}

// suggestOne 为单个源值建议目标键
func suggestOne(sourceName string, targetByName map[string]string, targetKeys []string, targetValues map[string]string) string {
	// 1. 大小写不敏感的精确匹配
	if target, exists := targetByName[sourceName]; exists {
		return target
	}

	// 2. 别名表：自上而下，首个包含源值的别名组生效
	for _, entry := range aliasTable {
		if !containsName(entry, sourceName) {
			continue
		}
		for _, alias := range entry {
			if target, exists := targetByName[alias]; exists {
				return target
			}
		}
	}

	// 3. 6字符前缀匹配
	if len(sourceName) >= prefixMatchLen {
		prefix := sourceName[:prefixMatchLen]
		for _, key := range targetKeys {
			name := strings.ToLower(strings.TrimSpace(targetValues[key]))
			if strings.HasPrefix(name, prefix) {
				return key
			}
		}
	}

	return Unresolved
}

func containsName(entry aliasEntry, name string) bool {
	for _, alias := range entry {
		if alias == name {
			return true
		}
	}
	return false
}
