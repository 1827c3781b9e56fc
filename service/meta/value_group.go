package meta

// 值映射分组常量：源侧可枚举概念与目标侧等价物的人工映射分组
const (
	ValueGroupShop            = "shop"
	ValueGroupLanguage        = "language"
	ValueGroupCustomerGroup   = "customer_group"
	ValueGroupPriceGroup      = "price_group"
	ValueGroupPaymentMean     = "payment_mean"
	ValueGroupOrderStatus     = "order_status"
	ValueGroupTaxRate         = "tax_rate"
	ValueGroupAttribute       = "attribute"
	ValueGroupPropertyOptions = "property_options"
	ValueGroupConfigurator    = "configurator_mapping"
)

// ValueGroups 值映射分组注册表
var ValueGroups = []MetaField{
	{Name: ValueGroupShop, DisplayName: "店铺", Type: "string", Required: true},
	{Name: ValueGroupLanguage, DisplayName: "语言", Type: "string", Required: true},
	{Name: ValueGroupCustomerGroup, DisplayName: "客户组", Type: "string", Required: true},
	{Name: ValueGroupPriceGroup, DisplayName: "价格组", Type: "string", Required: false},
	{Name: ValueGroupPaymentMean, DisplayName: "支付方式", Type: "string", Required: true},
	{Name: ValueGroupOrderStatus, DisplayName: "订单状态", Type: "string", Required: true},
	{Name: ValueGroupTaxRate, DisplayName: "税率", Type: "string", Required: true},
	{Name: ValueGroupAttribute, DisplayName: "属性", Type: "string", Required: false},
	{Name: ValueGroupPropertyOptions, DisplayName: "属性选项", Type: "string", Required: false},
	{Name: ValueGroupConfigurator, DisplayName: "变体配置", Type: "string", Required: false},
}

// IsValidValueGroup 判断值映射分组是否已注册
func IsValidValueGroup(group string) bool {
	for _, g := range ValueGroups {
		if g.Name == group {
			return true
		}
	}
	return false
}
