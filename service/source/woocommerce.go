/*
 * @module service/source/woocommerce
 * @description WooCommerce Profile 能力表：wp_posts 主行加 wp_postmeta 键值行
 * @architecture 策略映射条目
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 注册表静态加载
 * @rules postmeta 行按父文章ID页对齐抓取，一个商品的 meta 不跨页
 * @dependencies 无
 * @refs registry.go
 */

package source

import "migration-service/service/meta"

func init() {
	registerProfile(&ProfileDefinition{
		Name:          meta.ProfileWooCommerce,
		Driver:        "mysql",
		DefaultPrefix: "wp_",
		Entities: map[string]*EntityQuery{
			meta.EntityTypeCategory: {
				SQL: `SELECT t.term_id, t.name, tt.parent, tt.description
FROM {prefix}terms t
INNER JOIN {prefix}term_taxonomy tt ON tt.term_id = t.term_id AND tt.taxonomy = 'product_cat'
ORDER BY t.term_id`,
				IDField: "term_id",
				Renames: map[string]string{
					"term_id": "_sourceId",
				},
			},
			meta.EntityTypeCustomer: {
				SQL: `SELECT u.ID, u.user_email, u.user_registered
FROM {prefix}users u
ORDER BY u.ID`,
				IDField: "ID",
				Attributes: &AttributeQuery{
					SQL: `SELECT user_id, meta_key, meta_value
FROM {prefix}usermeta
WHERE user_id IN ({ids})
  AND meta_key IN ('first_name', 'last_name', 'billing_address_1', 'billing_postcode',
                   'billing_city', 'billing_country')
ORDER BY user_id, umeta_id`,
				},
				Renames: map[string]string{
					"ID":                "_sourceId",
					"user_email":        "email",
					"first_name":        "firstname",
					"last_name":         "lastname",
					"billing_address_1": "street",
					"billing_postcode":  "zipcode",
					"billing_city":      "city",
					"billing_country":   "country",
				},
			},
			meta.EntityTypeArticle: {
				SQL: `SELECT p.ID, p.post_title, p.post_excerpt, p.post_status
FROM {prefix}posts p
WHERE p.post_type = 'product'
ORDER BY p.ID`,
				IDField: "ID",
				Attributes: &AttributeQuery{
					SQL: `SELECT post_id, meta_key, meta_value
FROM {prefix}postmeta
WHERE post_id IN ({ids})
  AND meta_key IN ('_sku', '_regular_price', '_weight', '_stock', '_tax_class')
ORDER BY post_id, meta_id`,
				},
				Renames: map[string]string{
					"ID":             "_sourceId",
					"post_title":     "name",
					"post_excerpt":   "description",
					"post_status":    "active",
					"_sku":           "ordernumber",
					"_regular_price": "price",
					"_weight":        "weight",
					"_stock":         "instock",
					"_tax_class":     "taxrate",
				},
			},
			meta.EntityTypeImage: {
				SQL: `SELECT p.ID, p.post_parent, p.guid, p.menu_order
FROM {prefix}posts p
WHERE p.post_type = 'attachment' AND p.post_parent > 0
ORDER BY p.ID`,
				IDField: "ID",
				Renames: map[string]string{
					"ID":          "_sourceId",
					"post_parent": "article",
					"guid":        "path",
					"menu_order":  "position",
				},
			},
			meta.EntityTypeOrder: {
				SQL: `SELECT p.ID, p.post_status, p.post_date
FROM {prefix}posts p
WHERE p.post_type = 'shop_order'
ORDER BY p.ID`,
				IDField: "ID",
				Attributes: &AttributeQuery{
					SQL: `SELECT post_id, meta_key, meta_value
FROM {prefix}postmeta
WHERE post_id IN ({ids})
  AND meta_key IN ('_customer_user', '_payment_method', '_order_total', '_order_currency')
ORDER BY post_id, meta_id`,
				},
				Renames: map[string]string{
					"ID":              "_sourceId",
					"post_status":     "status",
					"post_date":       "date",
					"_customer_user":  "customer",
					"_payment_method": "payment",
					"_order_total":    "invoice_amount",
					"_order_currency": "currency",
				},
			},
		},
		Metadata: map[string]*MetadataQuery{
			meta.ValueGroupPaymentMean: {
				SQL: `SELECT DISTINCT meta_value, meta_value FROM {prefix}postmeta
WHERE meta_key = '_payment_method' ORDER BY meta_value`,
			},
			meta.ValueGroupOrderStatus: {
				SQL: `SELECT DISTINCT post_status, post_status FROM {prefix}posts
WHERE post_type = 'shop_order' ORDER BY post_status`,
			},
			meta.ValueGroupTaxRate: {
				SQL: `SELECT tax_rate_id, tax_rate FROM {prefix}woocommerce_tax_rates ORDER BY tax_rate_id`,
			},
		},
	})
}
