/*
 * @module service/source/shopware
 * @description Shopware Profile 能力表：同构迁移（Shopware 到 Shopware）
 * @architecture 策略映射条目
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 注册表静态加载
 * @rules 变体选项来自 configurator 表组
 * @dependencies 无
 * @refs registry.go
 */

package source

import "migration-service/service/meta"

func init() {
	registerProfile(&ProfileDefinition{
		Name:          meta.ProfileShopware,
		Driver:        "mysql",
		DefaultPrefix: "s_",
		Entities: map[string]*EntityQuery{
			meta.EntityTypeCategory: {
				SQL: `SELECT id, parent, description, position, active
FROM {prefix}categories
ORDER BY id`,
				IDField: "id",
				Renames: map[string]string{
					"id":          "_sourceId",
					"description": "name",
				},
			},
			meta.EntityTypeSupplier: {
				SQL: `SELECT id, name
FROM {prefix}articles_supplier
ORDER BY id`,
				IDField: "id",
				Renames: map[string]string{
					"id": "_sourceId",
				},
			},
			meta.EntityTypeCustomer: {
				SQL: `SELECT u.id, u.email, u.customergroup, u.subshopID, u.language, u.active,
       b.firstname, b.lastname, b.street, b.zipcode, b.city
FROM {prefix}user u
LEFT JOIN {prefix}user_billingaddress b ON b.userID = u.id
ORDER BY u.id`,
				IDField: "id",
				Renames: map[string]string{
					"id":        "_sourceId",
					"subshopID": "subshop",
				},
			},
			meta.EntityTypeArticle: {
				SQL: `SELECT a.id, a.name, a.description_long, a.supplierID, a.taxID, a.active,
       d.ordernumber, d.weight, d.instock
FROM {prefix}articles a
INNER JOIN {prefix}articles_details d ON d.id = a.main_detail_id
ORDER BY a.id`,
				IDField: "id",
				Renames: map[string]string{
					"id":               "_sourceId",
					"description_long": "description",
					"supplierID":       "supplier",
					"taxID":            "taxrate",
				},
			},
			meta.EntityTypePrice: {
				SQL: `SELECT p.id, p.articleID, p.pricegroup, p.price, p.from, p.to
FROM {prefix}articles_prices p
ORDER BY p.id`,
				IDField: "id",
				Renames: map[string]string{
					"id":        "_sourceId",
					"articleID": "article",
				},
			},
			meta.EntityTypeImage: {
				SQL: `SELECT id, articleID, img, position, main
FROM {prefix}articles_img
ORDER BY id`,
				IDField: "id",
				Renames: map[string]string{
					"id":        "_sourceId",
					"articleID": "article",
					"img":       "path",
				},
			},
			meta.EntityTypeProperty: {
				SQL: `SELECT fv.id, fa.articleID, fo.name AS option_name, fv.value
FROM {prefix}filter_values fv
INNER JOIN {prefix}filter_options fo ON fo.id = fv.optionID
INNER JOIN {prefix}filter_articles fa ON fa.valueID = fv.id
ORDER BY fv.id`,
				IDField: "id",
				Renames: map[string]string{
					"id":          "_sourceId",
					"articleID":   "article",
					"option_name": "option",
				},
			},
			meta.EntityTypeVariant: {
				SQL: `SELECT cor.id, car.article_id, cg.name AS group_name, co.name AS option_name,
       cpr.price AS price_delta, co.position
FROM {prefix}article_configurator_option_relations cor
INNER JOIN {prefix}article_configurator_options co ON co.id = cor.option_id
INNER JOIN {prefix}article_configurator_groups cg ON cg.id = co.group_id
INNER JOIN {prefix}articles car ON car.configurator_set_id IS NOT NULL
LEFT JOIN {prefix}article_configurator_price_variations cpr ON cpr.configurator_set_id = car.configurator_set_id
ORDER BY car.article_id, cg.position, co.position, cor.id`,
				IDField: "id",
				Renames: map[string]string{
					"id":          "_sourceId",
					"article_id":  "article",
					"group_name":  "group",
					"option_name": "option",
				},
			},
			meta.EntityTypeOrder: {
				SQL: `SELECT o.id, o.ordernumber, o.userID, o.status, o.paymentID, o.invoice_amount,
       o.currency, o.subshopID, o.ordertime
FROM {prefix}order o
WHERE o.ordernumber != '0'
ORDER BY o.id`,
				IDField: "id",
				Renames: map[string]string{
					"id":        "_sourceId",
					"userID":    "customer",
					"paymentID": "payment",
					"subshopID": "subshop",
					"ordertime": "date",
				},
			},
		},
		Metadata: map[string]*MetadataQuery{
			meta.ValueGroupShop: {
				SQL: `SELECT id, name FROM {prefix}core_shops ORDER BY id`,
			},
			meta.ValueGroupLanguage: {
				SQL: `SELECT id, locale FROM {prefix}core_locales ORDER BY id`,
			},
			meta.ValueGroupCustomerGroup: {
				SQL: `SELECT groupkey, description FROM {prefix}core_customergroups ORDER BY id`,
			},
			meta.ValueGroupPriceGroup: {
				SQL: `SELECT DISTINCT pricegroup, pricegroup FROM {prefix}articles_prices ORDER BY pricegroup`,
			},
			meta.ValueGroupPaymentMean: {
				SQL: `SELECT id, description FROM {prefix}core_paymentmeans ORDER BY id`,
			},
			meta.ValueGroupOrderStatus: {
				SQL: "SELECT id, description FROM {prefix}core_states WHERE `group` = 'state' ORDER BY id",
			},
			meta.ValueGroupTaxRate: {
				SQL: `SELECT id, description FROM {prefix}core_tax ORDER BY id`,
			},
			meta.ValueGroupAttribute: {
				SQL: `SELECT id, name FROM {prefix}article_configurator_groups ORDER BY position`,
			},
		},
	})
}
