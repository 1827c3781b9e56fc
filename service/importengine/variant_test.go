/*
 * @module service/importengine/variant_test
 * @description 变体生成单元测试：选项行聚合、组合枚举顺序、主明细替换与映射重指
 * @architecture 测试层
 */

package importengine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migration-service/service/meta"
	"migration-service/service/models"
	"migration-service/service/target"
)

func sizeColorGroups() []models.VariantGroup {
	return []models.VariantGroup{
		{Name: "Size", Options: []models.VariantOption{
			{Name: "S", PriceDelta: 5, Mode: models.VariantModeAdd},
			{Name: "M", PriceDelta: 10, Mode: models.VariantModeAdd},
		}},
		{Name: "Color", Options: []models.VariantOption{
			{Name: "Red", WeightDelta: 1, Mode: models.VariantModeSubtract},
		}},
	}
}

func TestCombinationCount(t *testing.T) {
	assert.Equal(t, 2, CombinationCount(sizeColorGroups()))
	assert.Equal(t, 0, CombinationCount(nil))
	assert.Equal(t, 0, CombinationCount([]models.VariantGroup{{Name: "Empty"}}), "空选项组没有组合")
}

// 枚举顺序：属性组逆序排列，末位组选项变化最快，索引0为全首选项组合
func TestCombinationAt_Order(t *testing.T) {
	groups := []models.VariantGroup{
		{Name: "Size", Options: []models.VariantOption{{Name: "S"}, {Name: "M"}}},
		{Name: "Color", Options: []models.VariantOption{{Name: "Red"}, {Name: "Blue"}}},
	}

	combos := EnumerateCombinations(groups)
	require.Len(t, combos, 4)

	names := func(options []models.VariantOption) []string {
		out := make([]string, 0, len(options))
		for _, o := range options {
			out = append(out, o.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Red", "S"}, names(combos[0]))
	assert.Equal(t, []string{"Red", "M"}, names(combos[1]))
	assert.Equal(t, []string{"Blue", "S"}, names(combos[2]))
	assert.Equal(t, []string{"Blue", "M"}, names(combos[3]))
}

func TestApplyDeltas(t *testing.T) {
	options := []models.VariantOption{
		{Name: "S", PriceDelta: 5, WeightDelta: 0.5, Mode: models.VariantModeAdd},
		{Name: "Red", PriceDelta: 2, WeightDelta: 1, Mode: models.VariantModeSubtract},
	}

	assert.InDelta(t, 103, applyDeltas(100, options, priceDelta), 1e-9)
	assert.InDelta(t, 1.5, applyDeltas(2, options, weightDelta), 1e-9)
}

func variantRows() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": "r1", "article": "55", "group": "Größe", "option": "S", "price_delta": 5, "mode": "+"},
		{"id": "r2", "article": "55", "group": "Größe", "option": "M", "price_delta": 10, "mode": "+"},
		{"id": "r3", "article": "55", "group": "Farbe", "option": "Red", "weight_delta": 1, "mode": "-"},
	}
}

func TestStepVariants_AggregatesOptionRows(t *testing.T) {
	mappings := map[string]string{
		"configurator_mapping.Größe": "Size",
		"configurator_mapping.Farbe": "Color",
	}
	fx := newEngineFixture(t, mappings, Config{PageSize: 100, StepBudget: time.Minute})
	fx.adapter.rows[meta.EntityTypeVariant] = variantRows()

	result := fx.engine.Step(context.Background(), models.NewImportCursor(meta.EntityTypeVariant))

	require.Nil(t, result.StepError)
	require.Len(t, result.VariantTasks, 1)
	task := result.VariantTasks[0]
	assert.Equal(t, "55", task.ArticleID)
	assert.Equal(t, 2, task.Count)
	require.Len(t, task.Groups, 2)
	assert.Equal(t, "Size", task.Groups[0].Name, "属性组名经过值映射")
	assert.Equal(t, "Color", task.Groups[1].Name)
	assert.Len(t, task.Groups[0].Options, 2)

	assert.Equal(t, int64(3), result.Cursor.Offset)
	assert.True(t, result.Cursor.Done)
}

// 整页取满时末尾商品的选项行可能被截断，该聚簇留给下一步重取
func TestStepVariants_DropsTruncatedTrailingCluster(t *testing.T) {
	fx := newEngineFixture(t, nil, Config{PageSize: 4, StepBudget: time.Minute})
	fx.adapter.rows[meta.EntityTypeVariant] = []map[string]interface{}{
		{"id": "r1", "article": "55", "group": "Size", "option": "S"},
		{"id": "r2", "article": "55", "group": "Size", "option": "M"},
		{"id": "r3", "article": "55", "group": "Size", "option": "L"},
		{"id": "r4", "article": "77", "group": "Size", "option": "S"},
		{"id": "r5", "article": "77", "group": "Size", "option": "M"},
	}

	result := fx.engine.Step(context.Background(), models.NewImportCursor(meta.EntityTypeVariant))

	require.Nil(t, result.StepError)
	require.Len(t, result.VariantTasks, 1, "被截断的末尾聚簇不产生任务")
	assert.Equal(t, "55", result.VariantTasks[0].ArticleID)
	assert.Equal(t, int64(3), result.Cursor.Offset, "偏移只推进完整聚簇的行数")
	assert.False(t, result.Cursor.Done)
}

func TestStepVariants_SkipsGeneratedArticles(t *testing.T) {
	fx := newEngineFixture(t, nil, Config{PageSize: 100, StepBudget: time.Minute})
	fx.adapter.rows[meta.EntityTypeVariant] = variantRows()
	require.NoError(t, fx.store.RecordMapping(meta.EntityTypeVariant, "55", 9))

	result := fx.engine.Step(context.Background(), models.NewImportCursor(meta.EntityTypeVariant))

	require.Nil(t, result.StepError)
	assert.Empty(t, result.VariantTasks)
	assert.Equal(t, 3, result.RowsExisting)
	assert.True(t, result.Cursor.Done)
}

func TestGenerateVariants_ReplacesPlaceholderMainDetail(t *testing.T) {
	fx := newEngineFixture(t, nil, Config{PageSize: 100, StepBudget: time.Minute})

	articleID, err := fx.writer.Write(meta.EntityTypeArticle, map[string]interface{}{
		"name":        "Stuhl",
		"ordernumber": "SW100",
		"price":       100.0,
		"weight":      2.0,
		"instock":     int64(10),
	})
	require.NoError(t, err)
	require.NoError(t, fx.store.RecordMapping(meta.EntityTypeArticle, "55", articleID))

	article, err := fx.writer.GetArticle(articleID)
	require.NoError(t, err)
	placeholderID := article.MainDetailID

	result, err := fx.engine.GenerateVariants(context.Background(), GenerateVariantsRequest{
		ArticleID: "55",
		Groups:    sizeColorGroups(),
		Offset:    0,
		Limit:     100,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 2, result.Created)
	assert.True(t, result.Done)

	// 占位明细被删除
	_, err = fx.writer.GetDetail(placeholderID)
	assert.Error(t, err)

	var details []target.ArticleDetail
	require.NoError(t, fx.tdb.DB.Where("article_id = ?", articleID).Order("position").Find(&details).Error)
	require.Len(t, details, 2)

	main := details[0]
	assert.Equal(t, 1, main.Kind, "首个组合是新的主明细")
	assert.Equal(t, "SW100.1", main.OrderNumber)
	assert.Equal(t, "Red / S", main.AdditionalText)
	assert.InDelta(t, 105, main.Price, 1e-9)
	assert.InDelta(t, 1, main.Weight, 1e-9, "减法模式的重量增量")
	assert.Equal(t, int64(10), main.InStock)

	variant := details[1]
	assert.Equal(t, 2, variant.Kind)
	assert.Equal(t, "SW100.2", variant.OrderNumber)
	assert.Equal(t, "Red / M", variant.AdditionalText)
	assert.InDelta(t, 110, variant.Price, 1e-9)

	// 商品指向新主明细，身份映射重指
	article, err = fx.writer.GetArticle(articleID)
	require.NoError(t, err)
	assert.Equal(t, main.ID, article.MainDetailID)

	mapped, found, err := fx.store.LookupTarget(meta.EntityTypeArticle, "55")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, main.ID, mapped)

	variantMapped, found, err := fx.store.LookupTarget(meta.EntityTypeVariant, "55")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, main.ID, variantMapped)
}

// 主明细替换过后重放首个区间：映射回溯到商品行，索引0不再重建
func TestGenerateVariants_ReplayAfterRepoint(t *testing.T) {
	fx := newEngineFixture(t, nil, Config{PageSize: 100, StepBudget: time.Minute})

	articleID, err := fx.writer.Write(meta.EntityTypeArticle, map[string]interface{}{
		"name":        "Stuhl",
		"ordernumber": "SW100",
		"price":       100.0,
	})
	require.NoError(t, err)
	require.NoError(t, fx.store.RecordMapping(meta.EntityTypeArticle, "55", articleID))

	_, err = fx.engine.GenerateVariants(context.Background(), GenerateVariantsRequest{
		ArticleID: "55", Groups: sizeColorGroups(), Offset: 0, Limit: 100,
	})
	require.NoError(t, err)

	replay, err := fx.engine.GenerateVariants(context.Background(), GenerateVariantsRequest{
		ArticleID: "55", Groups: sizeColorGroups(), Offset: 0, Limit: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, replay.Created, "已替换的主明细不会重建")
	assert.True(t, replay.Done == false || replay.Offset == 1)
}

func TestGenerateVariants_UnknownArticle(t *testing.T) {
	fx := newEngineFixture(t, nil, Config{})

	_, err := fx.engine.GenerateVariants(context.Background(), GenerateVariantsRequest{
		ArticleID: "nope", Groups: sizeColorGroups(),
	})
	assert.Error(t, err)
}

func TestGenerateVariants_EmptyGroupsDone(t *testing.T) {
	fx := newEngineFixture(t, nil, Config{})

	result, err := fx.engine.GenerateVariants(context.Background(), GenerateVariantsRequest{ArticleID: "55"})
	require.NoError(t, err)
	assert.True(t, result.Done)
	assert.Equal(t, 0, result.Count)
}
