/*
 * @module service/source/registry
 * @description Profile 注册表，应用启动时静态注册全部受支持的源平台能力表
 * @architecture 注册表模式
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow init 注册 -> GetProfileDefinition 查询
 * @rules 注册表只在 init 阶段写入，运行期只读，无需加锁
 * @dependencies migration-service/service/meta
 * @refs magento.go, oxid.go, prestashop.go, woocommerce.go, xtcommerce.go, shopware.go
 */

package source

import (
	"fmt"

	"migration-service/service/meta"
)

var profileRegistry = map[string]*ProfileDefinition{}

func registerProfile(def *ProfileDefinition) {
	profileRegistry[def.Name] = def
}

// GetProfileDefinition 按名称获取 Profile 能力表
func GetProfileDefinition(name string) (*ProfileDefinition, error) {
	def, exists := profileRegistry[name]
	if !exists {
		return nil, fmt.Errorf("不支持的源平台 Profile: %s", name)
	}
	return def, nil
}

// RegisteredProfiles 返回全部已注册的 Profile 名称
func RegisteredProfiles() []string {
	names := make([]string, 0, len(profileRegistry))
	for _, p := range meta.Profiles {
		if _, exists := profileRegistry[p.Name]; exists {
			names = append(names, p.Name)
		}
	}
	return names
}
