/*
 * @module service/meta/profile
 * @description 源平台 Profile 元数据，定义支持的旧平台类型及其展示信息
 * @architecture 元数据层 - 静态定义
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 应用启动时加载，运行期只读
 * @rules Profile 名称与 service/source 注册表中的能力表一一对应
 * @dependencies 无
 * @refs service/source/registry.go
 */

package meta

// 源平台 Profile 常量
const (
	ProfileMagento     = "magento"
	ProfileOxid        = "oxid"
	ProfilePrestaShop  = "prestashop"
	ProfileWooCommerce = "woocommerce"
	ProfileXtCommerce  = "xtcommerce"
	ProfileShopware    = "shopware"
)

// 迁移运行状态常量
const (
	RunStatusPending  = "pending"
	RunStatusRunning  = "running"
	RunStatusSuccess  = "success"
	RunStatusFailed   = "failed"
	RunStatusAborted  = "aborted"
)

// 步骤级错误码常量
const (
	ErrorCodeConnectivity     = "connectivity_error"
	ErrorCodeSchemaMismatch   = "schema_mismatch"
	ErrorCodeDuplicateMapping = "duplicate_mapping"
	ErrorCodeInvalidCursor    = "invalid_cursor"
	ErrorCodeInternal         = "internal_error"
)

// Profiles Profile 注册表
var Profiles = []MetaField{
	{Name: ProfileMagento, DisplayName: "Magento", Type: "string", Required: true},
	{Name: ProfileOxid, DisplayName: "Oxid eSales", Type: "string", Required: true},
	{Name: ProfilePrestaShop, DisplayName: "PrestaShop", Type: "string", Required: true},
	{Name: ProfileWooCommerce, DisplayName: "WooCommerce", Type: "string", Required: true},
	{Name: ProfileXtCommerce, DisplayName: "xt:Commerce", Type: "string", Required: true},
	{Name: ProfileShopware, DisplayName: "Shopware", Type: "string", Required: true},
}

// IsValidProfile 判断 Profile 是否已注册
func IsValidProfile(profile string) bool {
	for _, p := range Profiles {
		if p.Name == profile {
			return true
		}
	}
	return false
}
