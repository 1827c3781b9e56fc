/*
 * @module service/meta/entity_type
 * @description 迁移实体类型元数据，定义实体类型常量、导入顺序和每种实体的字段规则
 * @architecture 元数据层 - 静态定义
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 应用启动时加载，运行期只读
 * @rules 导入顺序必须保证被引用实体先于引用方导入
 * @dependencies 无
 * @refs service/importengine, service/source
 */

package meta

// 迁移实体类型常量
const (
	EntityTypeCategory = "category"
	EntityTypeSupplier = "supplier"
	EntityTypeCustomer = "customer"
	EntityTypeArticle  = "article"
	EntityTypePrice    = "price"
	EntityTypeImage    = "image"
	EntityTypeProperty = "property"
	EntityTypeVariant  = "variant"
	EntityTypeOrder    = "order"

	// EntityTypeCategoryTarget 仅用于身份映射：源分类在目标侧的已有对应
	EntityTypeCategoryTarget = "category_target"
)

// EnumFieldRule 行内枚举字段的映射规则
type EnumFieldRule struct {
	Field    string `json:"field"`    // 规范化行中的字段名
	Group    string `json:"group"`    // 值映射分组
	Required bool   `json:"required"` // 缺失映射时该行是否必须跳过
}

// RefFieldRule 行内跨实体外键的映射规则
type RefFieldRule struct {
	Field   string `json:"field"`    // 规范化行中的字段名
	RefType string `json:"ref_type"` // 被引用的实体类型
}

// EntityTypeDefinition 实体类型定义
type EntityTypeDefinition struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	EnumFields  []EnumFieldRule `json:"enum_fields"`
	RefFields   []RefFieldRule  `json:"ref_fields"`
}

// ImportOrder 固定的实体导入顺序：被引用实体先导入
var ImportOrder = []string{
	EntityTypeCategory,
	EntityTypeSupplier,
	EntityTypeCustomer,
	EntityTypeArticle,
	EntityTypePrice,
	EntityTypeImage,
	EntityTypeProperty,
	EntityTypeVariant,
	EntityTypeOrder,
}

// EntityTypes 实体类型注册表
var EntityTypes = map[string]*EntityTypeDefinition{
	EntityTypeCategory: {
		Name:        EntityTypeCategory,
		DisplayName: "分类",
		EnumFields: []EnumFieldRule{
			{Field: "language", Group: ValueGroupLanguage, Required: false},
		},
		RefFields: []RefFieldRule{
			{Field: "parent", RefType: EntityTypeCategory},
		},
	},
	EntityTypeSupplier: {
		Name:        EntityTypeSupplier,
		DisplayName: "供应商",
	},
	EntityTypeCustomer: {
		Name:        EntityTypeCustomer,
		DisplayName: "客户",
		EnumFields: []EnumFieldRule{
			{Field: "customergroup", Group: ValueGroupCustomerGroup, Required: true},
			{Field: "subshop", Group: ValueGroupShop, Required: false},
			{Field: "language", Group: ValueGroupLanguage, Required: false},
		},
	},
	EntityTypeArticle: {
		Name:        EntityTypeArticle,
		DisplayName: "商品",
		EnumFields: []EnumFieldRule{
			{Field: "taxrate", Group: ValueGroupTaxRate, Required: true},
		},
		RefFields: []RefFieldRule{
			{Field: "category", RefType: EntityTypeCategory},
			{Field: "supplier", RefType: EntityTypeSupplier},
		},
	},
	EntityTypePrice: {
		Name:        EntityTypePrice,
		DisplayName: "价格",
		EnumFields: []EnumFieldRule{
			{Field: "pricegroup", Group: ValueGroupPriceGroup, Required: false},
		},
		RefFields: []RefFieldRule{
			{Field: "article", RefType: EntityTypeArticle},
		},
	},
	EntityTypeImage: {
		Name:        EntityTypeImage,
		DisplayName: "商品图片",
		RefFields: []RefFieldRule{
			{Field: "article", RefType: EntityTypeArticle},
		},
	},
	EntityTypeProperty: {
		Name:        EntityTypeProperty,
		DisplayName: "筛选属性",
		EnumFields: []EnumFieldRule{
			{Field: "option", Group: ValueGroupPropertyOptions, Required: false},
		},
		RefFields: []RefFieldRule{
			{Field: "article", RefType: EntityTypeArticle},
		},
	},
	EntityTypeVariant: {
		Name:        EntityTypeVariant,
		DisplayName: "商品变体",
		EnumFields: []EnumFieldRule{
			{Field: "group", Group: ValueGroupConfigurator, Required: false},
		},
		RefFields: []RefFieldRule{
			{Field: "article", RefType: EntityTypeArticle},
		},
	},
	EntityTypeOrder: {
		Name:        EntityTypeOrder,
		DisplayName: "订单",
		EnumFields: []EnumFieldRule{
			{Field: "status", Group: ValueGroupOrderStatus, Required: true},
			{Field: "payment", Group: ValueGroupPaymentMean, Required: true},
			{Field: "subshop", Group: ValueGroupShop, Required: false},
		},
		RefFields: []RefFieldRule{
			{Field: "customer", RefType: EntityTypeCustomer},
		},
	},
}

// IsValidEntityType 判断实体类型是否已注册
func IsValidEntityType(entityType string) bool {
	_, exists := EntityTypes[entityType]
	return exists
}

// GetEntityDisplayName 获取实体类型的显示名称
func GetEntityDisplayName(entityType string) string {
	if def, exists := EntityTypes[entityType]; exists {
		return def.DisplayName
	}
	return entityType
}

// EntityTypeMetaFields 实体类型元数据列表（供向导界面展示）
var EntityTypeMetaFields = buildEntityMetaFields()

func buildEntityMetaFields() []MetaField {
	fields := make([]MetaField, 0, len(ImportOrder))
	for _, name := range ImportOrder {
		def := EntityTypes[name]
		fields = append(fields, MetaField{
			Name:        def.Name,
			DisplayName: def.DisplayName,
			Type:        "string",
			Required:    true,
		})
	}
	return fields
}
