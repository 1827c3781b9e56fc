/*
 * @module service/source/prestashop
 * @description PrestaShop Profile 能力表：主表加 _lang 翻译表联查
 * @architecture 策略映射条目
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 注册表静态加载
 * @rules 联查固定取默认语言行，保证分页行数与主表一致
 * @dependencies 无
 * @refs registry.go
 */

package source

import "migration-service/service/meta"

func init() {
	registerProfile(&ProfileDefinition{
		Name:          meta.ProfilePrestaShop,
		Driver:        "mysql",
		DefaultPrefix: "ps_",
		Entities: map[string]*EntityQuery{
			meta.EntityTypeCategory: {
				SQL: `SELECT c.id_category, c.id_parent, c.position, c.active, cl.name, cl.description, cl.id_lang
FROM {prefix}category c
INNER JOIN {prefix}category_lang cl ON cl.id_category = c.id_category AND cl.id_lang = c.id_shop_default
ORDER BY c.id_category`,
				IDField: "id_category",
				Renames: map[string]string{
					"id_category": "_sourceId",
					"id_parent":   "parent",
					"id_lang":     "language",
				},
			},
			meta.EntityTypeSupplier: {
				SQL: `SELECT id_supplier, name
FROM {prefix}supplier
ORDER BY id_supplier`,
				IDField: "id_supplier",
				Renames: map[string]string{
					"id_supplier": "_sourceId",
				},
			},
			meta.EntityTypeCustomer: {
				SQL: `SELECT id_customer, email, firstname, lastname, id_default_group, id_shop, id_lang, active
FROM {prefix}customer
ORDER BY id_customer`,
				IDField: "id_customer",
				Renames: map[string]string{
					"id_customer":      "_sourceId",
					"id_default_group": "customergroup",
					"id_shop":          "subshop",
					"id_lang":          "language",
				},
			},
			meta.EntityTypeArticle: {
				SQL: `SELECT p.id_product, p.reference, p.price, p.id_tax_rules_group, p.id_supplier,
       p.id_category_default, p.weight, p.quantity, p.active, pl.name, pl.description_short
FROM {prefix}product p
INNER JOIN {prefix}product_lang pl ON pl.id_product = p.id_product AND pl.id_lang = p.id_shop_default
ORDER BY p.id_product`,
				IDField: "id_product",
				Renames: map[string]string{
					"id_product":          "_sourceId",
					"reference":           "ordernumber",
					"id_tax_rules_group":  "taxrate",
					"id_supplier":         "supplier",
					"id_category_default": "category",
					"quantity":            "instock",
					"description_short":   "description",
				},
			},
			meta.EntityTypeImage: {
				SQL: `SELECT id_image, id_product, position, cover
FROM {prefix}image
ORDER BY id_image`,
				IDField: "id_image",
				Renames: map[string]string{
					"id_image":   "_sourceId",
					"id_product": "article",
					"cover":      "main",
				},
			},
			meta.EntityTypeProperty: {
				SQL: `SELECT pf.id_feature_product, pf.id_product, fl.name AS feature, fvl.value
FROM {prefix}feature_product pf
INNER JOIN {prefix}feature_lang fl ON fl.id_feature = pf.id_feature
INNER JOIN {prefix}feature_value_lang fvl ON fvl.id_feature_value = pf.id_feature_value
ORDER BY pf.id_feature_product`,
				IDField: "id_feature_product",
				Renames: map[string]string{
					"id_feature_product": "_sourceId",
					"id_product":         "article",
					"feature":            "option",
				},
			},
			meta.EntityTypeOrder: {
				SQL: `SELECT o.id_order, o.reference, o.id_customer, o.current_state, o.payment,
       o.total_paid, o.id_shop, o.date_add, c.iso_code AS currency
FROM {prefix}orders o
LEFT JOIN {prefix}currency c ON c.id_currency = o.id_currency
ORDER BY o.id_order`,
				IDField: "id_order",
				Renames: map[string]string{
					"id_order":      "_sourceId",
					"reference":     "ordernumber",
					"id_customer":   "customer",
					"current_state": "status",
					"total_paid":    "invoice_amount",
					"id_shop":       "subshop",
					"date_add":      "date",
				},
			},
		},
		Metadata: map[string]*MetadataQuery{
			meta.ValueGroupShop: {
				SQL: `SELECT id_shop, name FROM {prefix}shop ORDER BY id_shop`,
			},
			meta.ValueGroupLanguage: {
				SQL: `SELECT id_lang, name FROM {prefix}lang ORDER BY id_lang`,
			},
			meta.ValueGroupCustomerGroup: {
				SQL: `SELECT g.id_group, gl.name FROM {prefix}group g
INNER JOIN {prefix}group_lang gl ON gl.id_group = g.id_group
ORDER BY g.id_group`,
			},
			meta.ValueGroupPaymentMean: {
				SQL: `SELECT DISTINCT payment, payment FROM {prefix}orders ORDER BY payment`,
			},
			meta.ValueGroupOrderStatus: {
				SQL: `SELECT os.id_order_state, osl.name FROM {prefix}order_state os
INNER JOIN {prefix}order_state_lang osl ON osl.id_order_state = os.id_order_state
ORDER BY os.id_order_state`,
			},
			meta.ValueGroupTaxRate: {
				SQL: `SELECT id_tax, rate FROM {prefix}tax ORDER BY id_tax`,
			},
		},
	})
}
