/*
 * @module service/source/oxid
 * @description Oxid eSales Profile 能力表：平表模型，字符主键
 * @architecture 策略映射条目
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 注册表静态加载
 * @rules 无
 * @dependencies 无
 * @refs registry.go
 */

package source

import "migration-service/service/meta"

func init() {
	registerProfile(&ProfileDefinition{
		Name:          meta.ProfileOxid,
		Driver:        "mysql",
		DefaultPrefix: "ox",
		Entities: map[string]*EntityQuery{
			meta.EntityTypeCategory: {
				SQL: `SELECT OXID, OXPARENTID, OXTITLE, OXDESC, OXSORT, OXACTIVE
FROM {prefix}categories
ORDER BY OXID`,
				IDField: "OXID",
				Renames: map[string]string{
					"OXID":       "_sourceId",
					"OXPARENTID": "parent",
					"OXTITLE":    "name",
					"OXDESC":     "description",
					"OXSORT":     "position",
					"OXACTIVE":   "active",
				},
			},
			meta.EntityTypeSupplier: {
				SQL: `SELECT OXID, OXTITLE
FROM {prefix}manufacturers
ORDER BY OXID`,
				IDField: "OXID",
				Renames: map[string]string{
					"OXID":    "_sourceId",
					"OXTITLE": "name",
				},
			},
			meta.EntityTypeCustomer: {
				SQL: `SELECT OXID, OXUSERNAME, OXFNAME, OXLNAME, OXSTREET, OXSTREETNR, OXZIP, OXCITY,
       OXCOUNTRYID, OXACTIVE, OXSHOPID
FROM {prefix}user
ORDER BY OXID`,
				IDField: "OXID",
				Renames: map[string]string{
					"OXID":        "_sourceId",
					"OXUSERNAME":  "email",
					"OXFNAME":     "firstname",
					"OXLNAME":     "lastname",
					"OXSTREET":    "street",
					"OXZIP":       "zipcode",
					"OXCITY":      "city",
					"OXCOUNTRYID": "country",
					"OXACTIVE":    "active",
					"OXSHOPID":    "subshop",
				},
			},
			meta.EntityTypeArticle: {
				SQL: `SELECT OXID, OXARTNUM, OXTITLE, OXSHORTDESC, OXPRICE, OXVAT, OXWEIGHT, OXSTOCK,
       OXMANUFACTURERID, OXACTIVE
FROM {prefix}articles
ORDER BY OXID`,
				IDField: "OXID",
				Renames: map[string]string{
					"OXID":             "_sourceId",
					"OXARTNUM":         "ordernumber",
					"OXTITLE":          "name",
					"OXSHORTDESC":      "description",
					"OXPRICE":          "price",
					"OXVAT":            "taxrate",
					"OXWEIGHT":         "weight",
					"OXSTOCK":          "instock",
					"OXMANUFACTURERID": "supplier",
					"OXACTIVE":         "active",
				},
			},
			meta.EntityTypeImage: {
				SQL: `SELECT OXID, OXOBJECTID, OXFILE, OXSORT
FROM {prefix}files
ORDER BY OXID`,
				IDField: "OXID",
				Renames: map[string]string{
					"OXID":       "_sourceId",
					"OXOBJECTID": "article",
					"OXFILE":     "path",
					"OXSORT":     "position",
				},
			},
			meta.EntityTypeOrder: {
				SQL: `SELECT OXID, OXORDERNR, OXUSERID, OXTRANSSTATUS, OXPAYMENTTYPE, OXTOTALORDERSUM,
       OXCURRENCY, OXSHOPID, OXORDERDATE
FROM {prefix}order
ORDER BY OXID`,
				IDField: "OXID",
				Renames: map[string]string{
					"OXID":            "_sourceId",
					"OXORDERNR":       "ordernumber",
					"OXUSERID":        "customer",
					"OXTRANSSTATUS":   "status",
					"OXPAYMENTTYPE":   "payment",
					"OXTOTALORDERSUM": "invoice_amount",
					"OXCURRENCY":      "currency",
					"OXSHOPID":        "subshop",
					"OXORDERDATE":     "date",
				},
			},
		},
		Metadata: map[string]*MetadataQuery{
			meta.ValueGroupShop: {
				SQL: `SELECT OXID, OXNAME FROM {prefix}shops ORDER BY OXID`,
			},
			meta.ValueGroupCustomerGroup: {
				SQL: `SELECT OXID, OXTITLE FROM {prefix}groups ORDER BY OXID`,
			},
			meta.ValueGroupPaymentMean: {
				SQL: `SELECT OXID, OXDESC FROM {prefix}payments ORDER BY OXID`,
			},
			meta.ValueGroupOrderStatus: {
				SQL: `SELECT DISTINCT OXTRANSSTATUS, OXTRANSSTATUS FROM {prefix}order ORDER BY OXTRANSSTATUS`,
			},
			meta.ValueGroupTaxRate: {
				SQL: `SELECT DISTINCT OXVAT, OXVAT FROM {prefix}articles ORDER BY OXVAT`,
			},
		},
	})
}
