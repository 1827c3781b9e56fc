/*
 * @module service/source/magento
 * @description Magento Profile 能力表：EAV 模型，实体主行加键值属性行
 * @architecture 策略映射条目
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 注册表静态加载
 * @rules 属性行按父实体ID页对齐抓取
 * @dependencies 无
 * @refs registry.go
 */

package source

import "migration-service/service/meta"

func init() {
	registerProfile(&ProfileDefinition{
		Name:          meta.ProfileMagento,
		Driver:        "mysql",
		DefaultPrefix: "",
		Entities: map[string]*EntityQuery{
			meta.EntityTypeCategory: {
				SQL: `SELECT e.entity_id, e.parent_id, e.position
FROM {prefix}catalog_category_entity e
ORDER BY e.entity_id`,
				IDField: "entity_id",
				Attributes: &AttributeQuery{
					SQL: `SELECT v.entity_id, a.attribute_code, v.value
FROM {prefix}catalog_category_entity_varchar v
INNER JOIN {prefix}eav_attribute a ON a.attribute_id = v.attribute_id
WHERE v.entity_id IN ({ids})
ORDER BY v.entity_id, v.value_id`,
				},
				Renames: map[string]string{
					"entity_id": "_sourceId",
					"parent_id": "parent",
					"is_active": "active",
				},
			},
			meta.EntityTypeCustomer: {
				SQL: `SELECT e.entity_id, e.email, e.group_id, e.store_id, e.is_active
FROM {prefix}customer_entity e
ORDER BY e.entity_id`,
				IDField: "entity_id",
				Attributes: &AttributeQuery{
					SQL: `SELECT v.entity_id, a.attribute_code, v.value
FROM {prefix}customer_entity_varchar v
INNER JOIN {prefix}eav_attribute a ON a.attribute_id = v.attribute_id
WHERE v.entity_id IN ({ids})
ORDER BY v.entity_id, v.value_id`,
				},
				Renames: map[string]string{
					"entity_id": "_sourceId",
					"group_id":  "customergroup",
					"store_id":  "subshop",
					"is_active": "active",
				},
			},
			meta.EntityTypeArticle: {
				SQL: `SELECT e.entity_id, e.sku, e.type_id
FROM {prefix}catalog_product_entity e
ORDER BY e.entity_id`,
				IDField: "entity_id",
				Attributes: &AttributeQuery{
					SQL: `SELECT v.entity_id, a.attribute_code, v.value
FROM {prefix}catalog_product_entity_varchar v
INNER JOIN {prefix}eav_attribute a ON a.attribute_id = v.attribute_id
WHERE v.entity_id IN ({ids})
ORDER BY v.entity_id, v.value_id`,
				},
				Renames: map[string]string{
					"entity_id": "_sourceId",
					"sku":       "ordernumber",
					"tax_class": "taxrate",
					"status":    "active",
				},
			},
			meta.EntityTypePrice: {
				SQL: `SELECT v.value_id, v.entity_id, v.value
FROM {prefix}catalog_product_entity_decimal v
INNER JOIN {prefix}eav_attribute a ON a.attribute_id = v.attribute_id AND a.attribute_code = 'price'
ORDER BY v.value_id`,
				IDField: "value_id",
				Renames: map[string]string{
					"value_id":  "_sourceId",
					"entity_id": "article",
					"value":     "price",
				},
			},
			meta.EntityTypeImage: {
				SQL: `SELECT g.value_id, g.entity_id, g.value, gv.position
FROM {prefix}catalog_product_entity_media_gallery g
LEFT JOIN {prefix}catalog_product_entity_media_gallery_value gv ON gv.value_id = g.value_id
ORDER BY g.value_id`,
				IDField: "value_id",
				Renames: map[string]string{
					"value_id":  "_sourceId",
					"entity_id": "article",
					"value":     "path",
				},
			},
			meta.EntityTypeVariant: {
				SQL: `SELECT l.link_id, l.parent_id, sa.attribute_id, a.frontend_label, ov.value AS option_value,
       sp.pricing_value, sp.is_percent
FROM {prefix}catalog_product_super_link l
INNER JOIN {prefix}catalog_product_super_attribute sa ON sa.product_id = l.parent_id
INNER JOIN {prefix}eav_attribute a ON a.attribute_id = sa.attribute_id
LEFT JOIN {prefix}eav_attribute_option_value ov ON ov.option_id = l.product_id
LEFT JOIN {prefix}catalog_product_super_attribute_pricing sp ON sp.product_super_attribute_id = sa.product_super_attribute_id
ORDER BY l.parent_id, sa.position, l.link_id`,
				IDField: "link_id",
				Renames: map[string]string{
					"link_id":        "_sourceId",
					"parent_id":      "article",
					"frontend_label": "group",
					"option_value":   "option",
					"pricing_value":  "price_delta",
				},
			},
			meta.EntityTypeOrder: {
				SQL: `SELECT o.entity_id, o.increment_id, o.customer_id, o.status, o.grand_total,
       o.order_currency_code, o.store_id, o.created_at,
       p.method AS payment_method
FROM {prefix}sales_flat_order o
LEFT JOIN {prefix}sales_flat_order_payment p ON p.parent_id = o.entity_id
ORDER BY o.entity_id`,
				IDField: "entity_id",
				Renames: map[string]string{
					"entity_id":           "_sourceId",
					"increment_id":        "ordernumber",
					"customer_id":         "customer",
					"grand_total":         "invoice_amount",
					"order_currency_code": "currency",
					"store_id":            "subshop",
					"created_at":          "date",
					"payment_method":      "payment",
				},
			},
		},
		Metadata: map[string]*MetadataQuery{
			meta.ValueGroupShop: {
				SQL: `SELECT store_id, name FROM {prefix}core_store ORDER BY store_id`,
			},
			meta.ValueGroupLanguage: {
				SQL: `SELECT store_id, code FROM {prefix}core_store ORDER BY store_id`,
			},
			meta.ValueGroupCustomerGroup: {
				SQL: `SELECT customer_group_id, customer_group_code FROM {prefix}customer_group ORDER BY customer_group_id`,
			},
			meta.ValueGroupTaxRate: {
				SQL: `SELECT tax_calculation_rate_id, code FROM {prefix}tax_calculation_rate ORDER BY tax_calculation_rate_id`,
			},
			meta.ValueGroupPaymentMean: {
				SQL: `SELECT DISTINCT method, method FROM {prefix}sales_flat_order_payment ORDER BY method`,
			},
			meta.ValueGroupOrderStatus: {
				SQL: `SELECT status, label FROM {prefix}sales_order_status ORDER BY status`,
			},
			meta.ValueGroupAttribute: {
				SQL: `SELECT attribute_code, frontend_label FROM {prefix}eav_attribute WHERE frontend_label IS NOT NULL ORDER BY attribute_id`,
			},
		},
	})
}
