/*
 * @module service/target/writer_test
 * @description 目标库写入器单元测试
 * @architecture 测试层
 */

package target_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migration-service/service/target"
	"migration-service/testutil"
)

func TestWrite_ArticleCreatesPlaceholderDetail(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	writer := target.NewWriter(tdb.DB)

	id, err := writer.Write("article", map[string]interface{}{
		"name":        "Stuhl",
		"ordernumber": "SW100",
		"price":       19.9,
		"weight":      4.5,
		"instock":     int64(12),
		"taxrate":     "19",
	})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	article, err := writer.GetArticle(id)
	require.NoError(t, err)
	assert.Equal(t, "Stuhl", article.Name)
	require.Greater(t, article.MainDetailID, int64(0), "商品写入时创建占位主明细")

	detail, err := writer.GetDetail(article.MainDetailID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.Kind)
	assert.Equal(t, "SW100", detail.OrderNumber)
	assert.InDelta(t, 19.9, detail.Price, 1e-9)
	assert.Equal(t, int64(12), detail.InStock)
}

func TestWrite_PriceDefaults(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	writer := target.NewWriter(tdb.DB)

	id, err := writer.Write("price", map[string]interface{}{
		"article": int64(7),
		"price":   9.5,
	})
	require.NoError(t, err)

	var price target.Price
	require.NoError(t, tdb.DB.First(&price, id).Error)
	assert.Equal(t, "EK", price.PriceGroup, "价格组缺省为 EK")
	assert.Equal(t, int64(1), price.FromQty)
	assert.InDelta(t, 9.5, price.Amount, 1e-9)
}

func TestWrite_UnknownEntityType(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	writer := target.NewWriter(tdb.DB)

	_, err := writer.Write("warehouse", map[string]interface{}{})
	assert.Error(t, err)
}

func TestUpdateMainDetailAndDelete(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	writer := target.NewWriter(tdb.DB)

	id, err := writer.Write("article", map[string]interface{}{
		"name": "Tisch", "ordernumber": "SW200", "price": 49.0,
	})
	require.NoError(t, err)
	article, err := writer.GetArticle(id)
	require.NoError(t, err)
	oldDetailID := article.MainDetailID

	newID, err := writer.CreateDetail(&target.ArticleDetail{
		ArticleID:   id,
		OrderNumber: "SW200.1",
		Kind:        1,
		Price:       49.0,
	})
	require.NoError(t, err)

	require.NoError(t, writer.DeleteDetail(oldDetailID))
	require.NoError(t, writer.UpdateMainDetail(id, newID))

	article, err = writer.GetArticle(id)
	require.NoError(t, err)
	assert.Equal(t, newID, article.MainDetailID)

	_, err = writer.GetDetail(oldDetailID)
	assert.Error(t, err, "旧占位明细已删除")
}

func TestTruncateAll(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	writer := target.NewWriter(tdb.DB)

	_, err := writer.Write("supplier", map[string]interface{}{"name": "Hersteller"})
	require.NoError(t, err)
	_, err = writer.Write("category", map[string]interface{}{"name": "Möbel"})
	require.NoError(t, err)

	require.NoError(t, writer.TruncateAll())

	var suppliers, categories int64
	tdb.DB.Model(&target.Supplier{}).Count(&suppliers)
	tdb.DB.Model(&target.Category{}).Count(&categories)
	assert.Equal(t, int64(0), suppliers)
	assert.Equal(t, int64(0), categories)
}
