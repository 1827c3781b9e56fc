/*
 * @module service/importengine/variant
 * @description 变体生成：把平铺的属性选项行聚合为属性组，按笛卡尔积展开为商品明细，首个组合替换占位主明细
 * @architecture 核心业务层 - 子协议
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 变体步骤聚合选项行 -> 返回 create_variants 任务 -> 调用方驱动组合区间子循环 -> 首组合替换主明细并重指映射
 * @rules 组合枚举顺序确定可复现：属性组逆序、组内选项按源顺序；价格/重量增量按各选项自身的 +/- 模式累加
 * @dependencies 无第三方依赖（组合数学基于标准库）
 * @refs engine.go, service/identity, service/target
 */

package importengine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"migration-service/service/meta"
	"migration-service/service/models"
	"migration-service/service/target"
	"migration-service/service/valuemapping"
)

// GenerateVariantsRequest 变体生成子循环的单次调用参数
type GenerateVariantsRequest struct {
	ArticleID string                `json:"article_id"` // 源侧商品ID
	Groups    []models.VariantGroup `json:"groups"`
	Offset    int                   `json:"offset"`
	Limit     int                   `json:"limit"`
}

// GenerateVariantsResult 变体生成子循环的单次调用结果
type GenerateVariantsResult struct {
	Offset  int  `json:"offset"`
	Count   int  `json:"count"`
	Done    bool `json:"done"`
	Created int  `json:"created"`
}

// stepVariants 变体实体的步骤路径：不直接写库，聚合选项行并返回生成任务
// 页内按商品聚簇，整页未短时丢弃末尾可能被截断的聚簇，留给下一步重取
func (e *Engine) stepVariants(ctx context.Context, cursor models.ImportCursor) *StepResult {
	result := &StepResult{Cursor: cursor}

	if cursor.TotalEstimate < 0 {
		if total, err := e.source.EstimateCount(ctx, cursor.EntityType); err == nil {
			cursor.TotalEstimate = total
		}
	}

	stepStart := time.Now()
	defer func() {
		stepDuration.WithLabelValues(cursor.EntityType).Observe(time.Since(stepStart).Seconds())
	}()

	rawRows, err := e.source.FetchPage(ctx, cursor.EntityType, cursor.Offset, e.pageSize)
	if err != nil {
		return e.stepFailure(result, cursor, err)
	}
	rows, err := e.norm.Normalize(cursor.EntityType, rawRows)
	if err != nil {
		return e.stepFailure(result, cursor, err)
	}

	pageLen := len(rows)
	clusters := e.clusterByArticle(rows)

	// 整页取满时最后一个商品的选项行可能被页边界截断，丢弃并在下一步重取
	processed := pageLen
	if pageLen == e.pageSize && len(clusters) > 1 {
		last := clusters[len(clusters)-1]
		clusters = clusters[:len(clusters)-1]
		processed -= last.rowCount
	}

	for _, cluster := range clusters {
		if _, found, err := e.identity.LookupTarget(meta.EntityTypeVariant, cluster.articleID); err != nil {
			return e.stepFailure(result, cursor, fmt.Errorf("身份映射查询失败: %w", err))
		} else if found {
			result.RowsExisting += cluster.rowCount
			rowsSkippedTotal.WithLabelValues(meta.EntityTypeVariant, skipReasonMapped).Inc()
			continue
		}
		groups := cluster.groups
		result.VariantTasks = append(result.VariantTasks, models.VariantTask{
			ArticleID: cluster.articleID,
			Groups:    groups,
			Offset:    0,
			Count:     CombinationCount(groups),
		})
	}

	cursor = e.tracker.Advance(cursor, processed, pageLen, e.pageSize, time.Since(stepStart))
	result.Cursor = cursor
	e.logger.Info("变体聚合步骤完成",
		"offset", cursor.Offset,
		"tasks", len(result.VariantTasks),
		"done", cursor.Done)
	return result
}

type variantCluster struct {
	articleID string
	groups    []models.VariantGroup
	rowCount  int
}

// clusterByArticle 按商品ID聚合选项行，保持属性组与选项的源顺序
func (e *Engine) clusterByArticle(rows []map[string]interface{}) []*variantCluster {
	var clusters []*variantCluster
	var current *variantCluster

	for _, row := range rows {
		articleID := e.converter.ToString(row["article"])
		if articleID == "" {
			continue
		}
		if current == nil || current.articleID != articleID {
			current = &variantCluster{articleID: articleID}
			clusters = append(clusters, current)
		}
		current.rowCount++

		groupName := e.converter.ToString(row["group"])
		if mapped, ok := e.resolver.Resolve(meta.ValueGroupConfigurator, groupName); ok && mapped != valuemapping.Unresolved {
			groupName = mapped
		}
		option := models.VariantOption{
			Name:        e.converter.ToString(row["option"]),
			PriceDelta:  e.converter.ToFloat64(row["price_delta"]),
			WeightDelta: e.converter.ToFloat64(row["weight_delta"]),
			Mode:        normalizeMode(e.converter.ToString(row["mode"])),
		}

		appended := false
		for i := range current.groups {
			if current.groups[i].Name == groupName {
				current.groups[i].Options = append(current.groups[i].Options, option)
				appended = true
				break
			}
		}
		if !appended {
			current.groups = append(current.groups, models.VariantGroup{
				Name:    groupName,
				Options: []models.VariantOption{option},
			})
		}
	}
	return clusters
}

// GenerateVariants 驱动单个商品的组合区间生成
// 首个组合（索引0）创建后替换占位主明细，并把商品映射重指到新主明细
func (e *Engine) GenerateVariants(ctx context.Context, req GenerateVariantsRequest) (*GenerateVariantsResult, error) {
	count := CombinationCount(req.Groups)
	if count == 0 {
		return &GenerateVariantsResult{Offset: req.Offset, Count: 0, Done: true}, nil
	}
	if req.Offset < 0 || req.Offset > count {
		return nil, fmt.Errorf("组合偏移非法: %d（组合总数 %d）", req.Offset, count)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = count
	}

	mappedID, found, err := e.identity.LookupTarget(meta.EntityTypeArticle, req.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("身份映射查询失败: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("商品 %s 尚未导入，无法生成变体", req.ArticleID)
	}

	// 主明细已替换过时商品映射指向明细行，需回溯到商品行
	var article *target.Article
	var base *target.ArticleDetail
	_, mainReplaced, err := e.identity.LookupTarget(meta.EntityTypeVariant, req.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("身份映射查询失败: %w", err)
	}
	if mainReplaced {
		if base, err = e.writer.GetDetail(mappedID); err != nil {
			return nil, err
		}
		if article, err = e.writer.GetArticle(base.ArticleID); err != nil {
			return nil, err
		}
	} else {
		if article, err = e.writer.GetArticle(mappedID); err != nil {
			return nil, err
		}
		if base, err = e.writer.GetDetail(article.MainDetailID); err != nil {
			return nil, err
		}
	}

	result := &GenerateVariantsResult{Count: count}
	end := req.Offset + limit
	if end > count {
		end = count
	}

	for idx := req.Offset; idx < end; idx++ {
		options := CombinationAt(req.Groups, idx)
		detail := &target.ArticleDetail{
			ArticleID:      article.ID,
			OrderNumber:    fmt.Sprintf("%s.%d", base.OrderNumber, idx+1),
			AdditionalText: additionalText(options),
			Kind:           2,
			Price:          applyDeltas(base.Price, options, priceDelta),
			Weight:         applyDeltas(base.Weight, options, weightDelta),
			InStock:        base.InStock,
			Position:       idx + 1,
		}

		if idx == 0 {
			if mainReplaced {
				continue
			}
			detail.Kind = 1
			newID, err := e.writer.CreateDetail(detail)
			if err != nil {
				return nil, err
			}
			if err := e.writer.DeleteDetail(base.ID); err != nil {
				return nil, err
			}
			if err := e.writer.UpdateMainDetail(article.ID, newID); err != nil {
				return nil, err
			}
			if err := e.identity.RecordMapping(meta.EntityTypeVariant, req.ArticleID, newID); err != nil {
				return nil, err
			}
			// 映射目标唯一一次合法替换：商品映射重指到新主明细
			if err := e.identity.RepointMapping(meta.EntityTypeArticle, req.ArticleID, newID); err != nil {
				return nil, err
			}
			result.Created++
			variantsCreatedTotal.Inc()
			continue
		}

		if _, err := e.writer.CreateDetail(detail); err != nil {
			return nil, err
		}
		result.Created++
		variantsCreatedTotal.Inc()
	}

	result.Offset = end
	result.Done = end >= count
	e.logger.Info("变体组合生成",
		"article_id", req.ArticleID,
		"offset", result.Offset,
		"count", count,
		"created", result.Created,
		"done", result.Done)
	return result, nil
}

// CombinationCount 组合总数 = 各属性组选项数之积
func CombinationCount(groups []models.VariantGroup) int {
	if len(groups) == 0 {
		return 0
	}
	count := 1
	for _, g := range groups {
		if len(g.Options) == 0 {
			return 0
		}
		count *= len(g.Options)
	}
	return count
}

// CombinationAt 按确定枚举顺序取第 idx 个组合
// 枚举顺序：属性组逆序排列，末位组选项变化最快；索引0为全首选项组合（即主明细）
func CombinationAt(groups []models.VariantGroup, idx int) []models.VariantOption {
	reversed := make([]models.VariantGroup, len(groups))
	for i, g := range groups {
		reversed[len(groups)-1-i] = g
	}

	options := make([]models.VariantOption, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		n := len(reversed[i].Options)
		options[i] = reversed[i].Options[idx%n]
		idx /= n
	}
	return options
}

// EnumerateCombinations 物化全部组合，按 CombinationAt 的顺序
func EnumerateCombinations(groups []models.VariantGroup) [][]models.VariantOption {
	count := CombinationCount(groups)
	combos := make([][]models.VariantOption, 0, count)
	for i := 0; i < count; i++ {
		combos = append(combos, CombinationAt(groups, i))
	}
	return combos
}

func priceDelta(o models.VariantOption) float64 {
	return o.PriceDelta
}

func weightDelta(o models.VariantOption) float64 {
	return o.WeightDelta
}

// applyDeltas 按各选项自身的 +/- 模式在基准值上累加增量
func applyDeltas(base float64, options []models.VariantOption, delta func(models.VariantOption) float64) float64 {
	value := base
	for _, o := range options {
		if o.Mode == models.VariantModeSubtract {
			value -= delta(o)
		} else {
			value += delta(o)
		}
	}
	return value
}

func additionalText(options []models.VariantOption) string {
	names := make([]string, 0, len(options))
	for _, o := range options {
		names = append(names, o.Name)
	}
	return strings.Join(names, " / ")
}

func normalizeMode(mode string) string {
	if mode == models.VariantModeSubtract {
		return models.VariantModeSubtract
	}
	return models.VariantModeAdd
}
