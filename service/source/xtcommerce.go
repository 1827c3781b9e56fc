/*
 * @module service/source/xtcommerce
 * @description xt:Commerce Profile 能力表：主表加 _description 翻译表，变体来自 products_attributes
 * @architecture 策略映射条目
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 注册表静态加载
 * @rules 变体选项行按商品ID聚簇排序，供变体生成步骤按商品分组
 * @dependencies 无
 * @refs registry.go
 */

package source

import "migration-service/service/meta"

func init() {
	registerProfile(&ProfileDefinition{
		Name:          meta.ProfileXtCommerce,
		Driver:        "mysql",
		DefaultPrefix: "",
		Entities: map[string]*EntityQuery{
			meta.EntityTypeCategory: {
				SQL: `SELECT c.categories_id, c.parent_id, c.sort_order, c.categories_status,
       cd.categories_name, cd.categories_description, cd.language_id
FROM {prefix}categories c
INNER JOIN {prefix}categories_description cd ON cd.categories_id = c.categories_id
ORDER BY c.categories_id`,
				IDField: "categories_id",
				Renames: map[string]string{
					"categories_id":          "_sourceId",
					"parent_id":              "parent",
					"sort_order":             "position",
					"categories_status":      "active",
					"categories_name":        "name",
					"categories_description": "description",
					"language_id":            "language",
				},
			},
			meta.EntityTypeSupplier: {
				SQL: `SELECT manufacturers_id, manufacturers_name
FROM {prefix}manufacturers
ORDER BY manufacturers_id`,
				IDField: "manufacturers_id",
				Renames: map[string]string{
					"manufacturers_id":   "_sourceId",
					"manufacturers_name": "name",
				},
			},
			meta.EntityTypeCustomer: {
				SQL: `SELECT c.customers_id, c.customers_email_address, c.customers_firstname,
       c.customers_lastname, c.customers_status, c.customers_default_address_id
FROM {prefix}customers c
ORDER BY c.customers_id`,
				IDField: "customers_id",
				Renames: map[string]string{
					"customers_id":            "_sourceId",
					"customers_email_address": "email",
					"customers_firstname":     "firstname",
					"customers_lastname":      "lastname",
					"customers_status":        "customergroup",
				},
			},
			meta.EntityTypeArticle: {
				SQL: `SELECT p.products_id, p.products_model, p.products_price, p.products_tax_class_id,
       p.manufacturers_id, p.products_weight, p.products_quantity, p.products_status,
       pd.products_name, pd.products_short_description
FROM {prefix}products p
INNER JOIN {prefix}products_description pd ON pd.products_id = p.products_id
ORDER BY p.products_id`,
				IDField: "products_id",
				Renames: map[string]string{
					"products_id":                "_sourceId",
					"products_model":             "ordernumber",
					"products_price":             "price",
					"products_tax_class_id":      "taxrate",
					"manufacturers_id":           "supplier",
					"products_weight":            "weight",
					"products_quantity":          "instock",
					"products_status":            "active",
					"products_name":              "name",
					"products_short_description": "description",
				},
			},
			meta.EntityTypeImage: {
				SQL: `SELECT image_id, products_id, image_name, image_nr
FROM {prefix}products_images
ORDER BY image_id`,
				IDField: "image_id",
				Renames: map[string]string{
					"image_id":   "_sourceId",
					"products_id": "article",
					"image_name": "path",
					"image_nr":   "position",
				},
			},
			meta.EntityTypeVariant: {
				SQL: `SELECT pa.products_attributes_id, pa.products_id, po.products_options_name,
       pov.products_options_values_name, pa.options_values_price, pa.price_prefix,
       pa.options_values_weight, pa.weight_prefix, pa.sortorder
FROM {prefix}products_attributes pa
INNER JOIN {prefix}products_options po ON po.products_options_id = pa.options_id
INNER JOIN {prefix}products_options_values pov ON pov.products_options_values_id = pa.options_values_id
ORDER BY pa.products_id, pa.options_id, pa.sortorder, pa.products_attributes_id`,
				IDField: "products_attributes_id",
				Renames: map[string]string{
					"products_attributes_id":      "_sourceId",
					"products_id":                 "article",
					"products_options_name":       "group",
					"products_options_values_name": "option",
					"options_values_price":        "price_delta",
					"price_prefix":                "mode",
					"options_values_weight":       "weight_delta",
					"weight_prefix":               "weight_mode",
					"sortorder":                   "position",
				},
			},
			meta.EntityTypeOrder: {
				SQL: `SELECT o.orders_id, o.customers_id, o.orders_status, o.payment_method,
       o.currency, o.date_purchased, ot.value AS order_total
FROM {prefix}orders o
LEFT JOIN {prefix}orders_total ot ON ot.orders_id = o.orders_id AND ot.class = 'ot_total'
ORDER BY o.orders_id`,
				IDField: "orders_id",
				Renames: map[string]string{
					"orders_id":      "_sourceId",
					"customers_id":   "customer",
					"orders_status":  "status",
					"payment_method": "payment",
					"date_purchased": "date",
					"order_total":    "invoice_amount",
				},
			},
		},
		Metadata: map[string]*MetadataQuery{
			meta.ValueGroupLanguage: {
				SQL: `SELECT languages_id, name FROM {prefix}languages ORDER BY languages_id`,
			},
			meta.ValueGroupCustomerGroup: {
				SQL: `SELECT customers_status_id, customers_status_name FROM {prefix}customers_status ORDER BY customers_status_id`,
			},
			meta.ValueGroupPaymentMean: {
				SQL: `SELECT DISTINCT payment_method, payment_method FROM {prefix}orders ORDER BY payment_method`,
			},
			meta.ValueGroupOrderStatus: {
				SQL: `SELECT orders_status_id, orders_status_name FROM {prefix}orders_status ORDER BY orders_status_id`,
			},
			meta.ValueGroupTaxRate: {
				SQL: `SELECT tax_rates_id, tax_rate FROM {prefix}tax_rates ORDER BY tax_rates_id`,
			},
		},
	})
}
