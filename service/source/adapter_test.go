/*
 * @module service/source/adapter_test
 * @description 源库适配器单元测试：稳定分页、键值行页对齐与错误分类
 * @architecture 测试层 - 以 sqlite 内存库模拟旧平台数据库
 */

package source

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migration-service/testutil"
)

func legacyDefinition() *ProfileDefinition {
	return &ProfileDefinition{
		Name:          "legacytest",
		Driver:        "sqlite3",
		DefaultPrefix: "shop_",
		Entities: map[string]*EntityQuery{
			"article": {
				SQL:     "SELECT products_id, products_model FROM {prefix}products ORDER BY products_id",
				IDField: "products_id",
				Attributes: &AttributeQuery{
					SQL: "SELECT products_id, meta_key, meta_value FROM {prefix}products_meta WHERE products_id IN ({ids}) ORDER BY products_id, meta_key",
				},
				Renames: map[string]string{"products_model": "name"},
			},
			"supplier": {
				SQL:     "SELECT manufacturers_id, manufacturers_name FROM {prefix}manufacturers ORDER BY manufacturers_id",
				IDField: "manufacturers_id",
			},
		},
		Metadata: map[string]*MetadataQuery{
			"order_status": {
				SQL: "SELECT orders_status_id, orders_status_name FROM {prefix}orders_status ORDER BY orders_status_id",
			},
		},
	}
}

func setupLegacyDB(t *testing.T) *sql.DB {
	db := testutil.NewLegacySourceDB()
	t.Cleanup(func() { db.Close() })

	statements := []string{
		`CREATE TABLE shop_products (products_id INTEGER PRIMARY KEY, products_model TEXT)`,
		`CREATE TABLE shop_products_meta (products_id INTEGER, meta_key TEXT, meta_value TEXT)`,
		`CREATE TABLE shop_manufacturers (manufacturers_id INTEGER PRIMARY KEY, manufacturers_name TEXT)`,
		`CREATE TABLE shop_orders_status (orders_status_id INTEGER PRIMARY KEY, orders_status_name TEXT)`,
	}
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func TestFetchPage_StablePagination(t *testing.T) {
	db := setupLegacyDB(t)
	for i := 1; i <= 25; i++ {
		_, err := db.Exec(`INSERT INTO shop_manufacturers VALUES (?, ?)`, i, fmt.Sprintf("Hersteller %d", i))
		require.NoError(t, err)
	}
	adapter := NewAdapterWithDB(db, legacyDefinition(), "shop_")

	ctx := context.Background()
	page1, err := adapter.FetchPage(ctx, "supplier", 0, 10)
	require.NoError(t, err)
	require.Len(t, page1, 10)

	// 相同偏移的两次抽取必须返回相同的行
	again, err := adapter.FetchPage(ctx, "supplier", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, page1, again)

	page3, err := adapter.FetchPage(ctx, "supplier", 20, 10)
	require.NoError(t, err)
	assert.Len(t, page3, 5, "末页返回剩余行")

	empty, err := adapter.FetchPage(ctx, "supplier", 25, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFetchPage_AttributeRowsPageAligned(t *testing.T) {
	db := setupLegacyDB(t)
	for i := 1; i <= 3; i++ {
		_, err := db.Exec(`INSERT INTO shop_products VALUES (?, ?)`, i, fmt.Sprintf("MODEL-%d", i))
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO shop_products_meta VALUES (?, 'products_price', ?)`, i, fmt.Sprintf("%d.50", i))
		require.NoError(t, err)
	}
	adapter := NewAdapterWithDB(db, legacyDefinition(), "shop_")

	rows, err := adapter.FetchPage(context.Background(), "article", 0, 2)
	require.NoError(t, err)
	// 2 条主行各带 1 条键值行
	require.Len(t, rows, 4)

	assert.NotContains(t, rows[0], "_metaKey", "主行不携带键值字段")
	assert.Equal(t, "products_price", rows[1]["_metaKey"])
	assert.Equal(t, rows[0]["products_id"], rows[1]["products_id"], "键值行紧跟其父主行")
	assert.Equal(t, rows[2]["products_id"], rows[3]["products_id"])
}

func TestFetchPage_UnknownEntity(t *testing.T) {
	adapter := NewAdapterWithDB(setupLegacyDB(t), legacyDefinition(), "shop_")

	_, err := adapter.FetchPage(context.Background(), "order", 0, 10)
	assert.ErrorIs(t, err, ErrCapabilityMissing)
}

func TestFetchPage_SchemaMismatch(t *testing.T) {
	db := testutil.NewLegacySourceDB()
	t.Cleanup(func() { db.Close() })
	adapter := NewAdapterWithDB(db, legacyDefinition(), "shop_")

	_, err := adapter.FetchPage(context.Background(), "supplier", 0, 10)
	assert.ErrorIs(t, err, ErrSchemaMismatch, "表不存在应归类为模式不匹配")
}

func TestEstimateCount(t *testing.T) {
	db := setupLegacyDB(t)
	for i := 1; i <= 7; i++ {
		_, err := db.Exec(`INSERT INTO shop_manufacturers VALUES (?, 'x')`, i)
		require.NoError(t, err)
	}
	adapter := NewAdapterWithDB(db, legacyDefinition(), "shop_")

	count, err := adapter.EstimateCount(context.Background(), "supplier")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestListMetadata(t *testing.T) {
	db := setupLegacyDB(t)
	_, err := db.Exec(`INSERT INTO shop_orders_status VALUES (1, 'Offen'), (2, 'In Bearbeitung')`)
	require.NoError(t, err)
	adapter := NewAdapterWithDB(db, legacyDefinition(), "shop_")

	values, err := adapter.ListMetadata(context.Background(), "order_status")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "Offen", "2": "In Bearbeitung"}, values)

	_, err = adapter.ListMetadata(context.Background(), "payment_mean")
	assert.ErrorIs(t, err, ErrCapabilityMissing)
}

func TestRegisteredProfiles(t *testing.T) {
	profiles := RegisteredProfiles()
	assert.Contains(t, profiles, "xtcommerce")
	assert.Contains(t, profiles, "magento")
	assert.Contains(t, profiles, "shopware")

	def, err := GetProfileDefinition("xtcommerce")
	require.NoError(t, err)
	assert.True(t, def.HasEntity("article"))

	_, err = GetProfileDefinition("unknownshop")
	assert.Error(t, err)
}
