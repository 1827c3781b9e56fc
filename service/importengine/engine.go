/*
 * @module service/importengine/engine
 * @description 批量导入引擎：墙钟预算内的分步导入循环，按页取数、规范化、逐行解析映射并写入目标库
 * @architecture 核心业务层 - 状态机（NotStarted -> InProgress -> Done / Error）
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 校验游标 -> 估算总量 -> 循环取页 -> 逐行跳过/解析/写入/记录映射 -> 推进偏移 -> 短页完成或超时让出
 * @rules 行级错误累计上报不中断批次；模式不匹配与连接失败中止整个步骤；相同偏移重放不产生重复映射
 * @dependencies gorm.io/gorm, github.com/prometheus/client_golang
 * @refs service/source, service/normalizer, service/identity, service/valuemapping, service/progress
 */

package importengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"migration-service/service/identity"
	"migration-service/service/meta"
	"migration-service/service/models"
	"migration-service/service/normalizer"
	"migration-service/service/progress"
	"migration-service/service/source"
	"migration-service/service/target"
	"migration-service/service/utils"
	"migration-service/service/valuemapping"
)

const (
	// DefaultPageSize 单页行数默认值
	DefaultPageSize = 1000
	// DefaultStepBudget 单步墙钟预算默认值
	DefaultStepBudget = 10 * time.Second
)

// SourceAdapter 源库适配能力，由 source.Adapter 实现
type SourceAdapter interface {
	FetchPage(ctx context.Context, entityType string, offset int64, pageSize int) ([]map[string]interface{}, error)
	EstimateCount(ctx context.Context, entityType string) (int64, error)
	ListMetadata(ctx context.Context, group string) (map[string]string, error)
	Definition() *source.ProfileDefinition
}

// TargetWriter 目标写入能力，由 target.Writer 实现
type TargetWriter interface {
	Write(entityType string, row map[string]interface{}) (int64, error)
	CreateDetail(detail *target.ArticleDetail) (int64, error)
	GetArticle(articleID int64) (*target.Article, error)
	GetDetail(detailID int64) (*target.ArticleDetail, error)
	DeleteDetail(detailID int64) error
	UpdateMainDetail(articleID, detailID int64) error
}

// Config 引擎运行参数
type Config struct {
	PageSize   int
	StepBudget time.Duration
}

// Engine 批量导入引擎
// 依赖全部通过构造函数显式注入
type Engine struct {
	source    SourceAdapter
	writer    TargetWriter
	identity  *identity.Store
	resolver  *valuemapping.Resolver
	tracker   *progress.Tracker
	norm      *normalizer.Normalizer
	converter *utils.DataConverter
	logger    *slog.Logger
	pageSize  int
	budget    time.Duration
}

// StepResult 单次步骤的执行结果
type StepResult struct {
	Cursor       models.ImportCursor  `json:"cursor"`
	RowsImported int                  `json:"rows_imported"`
	RowsExisting int                  `json:"rows_existing"` // 已映射而跳过的行数
	RowsSkipped  int                  `json:"rows_skipped"`  // 行级错误跳过的行数
	SkipMessages []string             `json:"skip_messages,omitempty"`
	VariantTasks []models.VariantTask `json:"variant_tasks,omitempty"`
	StepError    *models.StepError    `json:"step_error,omitempty"`
}

// NewEngine 创建导入引擎
func NewEngine(src SourceAdapter, writer TargetWriter, store *identity.Store,
	resolver *valuemapping.Resolver, logger *slog.Logger, cfg Config) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = DefaultStepBudget
	}
	return &Engine{
		source:    src,
		writer:    writer,
		identity:  store,
		resolver:  resolver,
		tracker:   progress.NewTracker(),
		norm:      normalizer.NewNormalizer(src.Definition()),
		converter: utils.NewDataConverter(),
		logger:    logger,
		pageSize:  cfg.PageSize,
		budget:    cfg.StepBudget,
	}
}

// SetTransformScript 挂载行级转换脚本
func (e *Engine) SetTransformScript(script *normalizer.TransformScript) {
	e.norm.SetTransformScript(script)
}

// Progress 计算游标的进度比例
func (e *Engine) Progress(cursor models.ImportCursor) float64 {
	return e.tracker.Progress(cursor)
}

// Step 执行一次有预算的导入步骤并返回更新后的游标
// 游标由调用方回传，服务端不持久化，每次调用重新校验
func (e *Engine) Step(ctx context.Context, cursor models.ImportCursor) *StepResult {
	result := &StepResult{Cursor: cursor}

	if stepErr := e.validateCursor(cursor); stepErr != nil {
		result.Cursor.Error = true
		result.Cursor.Done = true
		result.Cursor.Message = stepErr.Message
		result.StepError = stepErr
		stepErrorsTotal.WithLabelValues(cursor.EntityType, stepErr.Code).Inc()
		return result
	}

	if cursor.EntityType == meta.EntityTypeVariant {
		return e.stepVariants(ctx, cursor)
	}

	if cursor.TotalEstimate < 0 {
		if total, err := e.source.EstimateCount(ctx, cursor.EntityType); err == nil {
			cursor.TotalEstimate = total
		}
	}

	def := meta.EntityTypes[cursor.EntityType]
	deadline := time.Now().Add(e.budget)
	stepStart := time.Now()
	defer func() {
		stepDuration.WithLabelValues(cursor.EntityType).Observe(time.Since(stepStart).Seconds())
	}()

	for {
		rawRows, err := e.source.FetchPage(ctx, cursor.EntityType, cursor.Offset, e.pageSize)
		if err != nil {
			return e.stepFailure(result, cursor, err)
		}
		rows, err := e.norm.Normalize(cursor.EntityType, rawRows)
		if err != nil {
			return e.stepFailure(result, cursor, err)
		}

		pageLen := len(rows)
		processed := 0
		timedOut := false
		for _, row := range rows {
			if time.Now().After(deadline) {
				timedOut = true
				break
			}
			if err := e.processRow(def, row, result); err != nil {
				return e.stepFailure(result, cursor, err)
			}
			processed++
		}

		// 超时中断页内循环时不做耗尽判定，未处理的行留给下一步
		doneLen := pageLen
		if timedOut {
			doneLen = e.pageSize
		}
		cursor = e.tracker.Advance(cursor, processed, doneLen, e.pageSize, time.Since(stepStart))

		if cursor.Done || timedOut {
			break
		}
	}

	if result.RowsSkipped > 0 {
		cursor.Message = fmt.Sprintf("%s（跳过 %d 行）", cursor.Message, result.RowsSkipped)
	}
	result.Cursor = cursor
	e.logger.Info("导入步骤完成",
		"entity_type", cursor.EntityType,
		"offset", cursor.Offset,
		"imported", result.RowsImported,
		"existing", result.RowsExisting,
		"skipped", result.RowsSkipped,
		"done", cursor.Done)
	return result
}

// processRow 处理单条规范行：跳过已映射、解析枚举与外键、写入并记录映射
// 返回的 error 仅用于步骤级致命错误，行级问题累计进 result
func (e *Engine) processRow(def *meta.EntityTypeDefinition, row map[string]interface{}, result *StepResult) error {
	sourceID := e.converter.ToString(row[models.SourceIDField])
	if sourceID == "" {
		e.skipRow(result, def.Name, "行缺少源主键")
		return nil
	}

	if _, found, err := e.identity.LookupTarget(def.Name, sourceID); err != nil {
		return fmt.Errorf("身份映射查询失败: %w", err)
	} else if found {
		result.RowsExisting++
		rowsSkippedTotal.WithLabelValues(def.Name, skipReasonMapped).Inc()
		return nil
	}

	for _, rule := range def.EnumFields {
		raw := e.converter.ToString(row[rule.Field])
		if raw == "" {
			if rule.Required {
				e.skipRow(result, def.Name, fmt.Sprintf("行 %s 必填字段 %s 为空", sourceID, rule.Field))
				return nil
			}
			continue
		}
		resolved, ok := e.resolver.Resolve(rule.Group, raw)
		if !ok || resolved == valuemapping.Unresolved {
			if rule.Required {
				e.skipRow(result, def.Name, fmt.Sprintf("行 %s 字段 %s 的值 %q 缺少 %s 映射", sourceID, rule.Field, raw, rule.Group))
				return nil
			}
			row[rule.Field] = nil
			continue
		}
		row[rule.Field] = resolved
	}

	for _, rule := range def.RefFields {
		refSource := e.converter.ToString(row[rule.Field])
		if refSource == "" || refSource == "0" {
			row[rule.Field] = int64(0)
			continue
		}
		targetID, found, err := e.identity.LookupTarget(rule.RefType, refSource)
		if err != nil {
			return fmt.Errorf("外键映射查询失败: %w", err)
		}
		if !found {
			// 被引用实体尚未导入：写入未解析占位值，依赖导入顺序保证常规情况不发生
			row[rule.Field] = int64(0)
			continue
		}
		row[rule.Field] = targetID
	}

	targetID, err := e.writer.Write(def.Name, row)
	if err != nil {
		e.skipRow(result, def.Name, fmt.Sprintf("行 %s 写入失败: %v", sourceID, err))
		return nil
	}

	if err := e.identity.RecordMapping(def.Name, sourceID, targetID); err != nil {
		if errors.Is(err, identity.ErrDuplicateMapping) {
			return err
		}
		return fmt.Errorf("记录身份映射失败: %w", err)
	}

	result.RowsImported++
	rowsImportedTotal.WithLabelValues(def.Name).Inc()
	return nil
}

// skipRow 累计单行错误，批次继续
func (e *Engine) skipRow(result *StepResult, entityType, message string) {
	result.RowsSkipped++
	result.SkipMessages = append(result.SkipMessages, message)
	rowsSkippedTotal.WithLabelValues(entityType, skipReasonError).Inc()
	e.logger.Warn("行被跳过", "entity_type", entityType, "reason", message)
}

// validateCursor 每次请求重新校验回传的游标
func (e *Engine) validateCursor(cursor models.ImportCursor) *models.StepError {
	if !meta.IsValidEntityType(cursor.EntityType) {
		return &models.StepError{
			Message: fmt.Sprintf("未知实体类型: %s", cursor.EntityType),
			Code:    meta.ErrorCodeInvalidCursor,
		}
	}
	if cursor.Offset < 0 {
		return &models.StepError{
			Message: fmt.Sprintf("偏移量非法: %d", cursor.Offset),
			Code:    meta.ErrorCodeInvalidCursor,
		}
	}
	if !e.source.Definition().HasEntity(cursor.EntityType) {
		return &models.StepError{
			Message: fmt.Sprintf("Profile %s 不支持实体类型 %s", e.source.Definition().Name, cursor.EntityType),
			Code:    meta.ErrorCodeInvalidCursor,
		}
	}
	return nil
}

// stepFailure 步骤级致命错误：游标进入 Error 终态，已提交的偏移依然可恢复
func (e *Engine) stepFailure(result *StepResult, cursor models.ImportCursor, err error) *StepResult {
	code := meta.ErrorCodeInternal
	switch {
	case errors.Is(err, source.ErrSchemaMismatch):
		code = meta.ErrorCodeSchemaMismatch
	case errors.Is(err, source.ErrConnectivity):
		code = meta.ErrorCodeConnectivity
	case errors.Is(err, identity.ErrDuplicateMapping):
		code = meta.ErrorCodeDuplicateMapping
	}

	_, file, line, _ := runtime.Caller(1)
	cursor.Error = true
	cursor.Done = true
	cursor.Message = err.Error()
	result.Cursor = cursor
	result.StepError = &models.StepError{
		Message: err.Error(),
		Code:    code,
		File:    file,
		Line:    line,
	}
	stepErrorsTotal.WithLabelValues(cursor.EntityType, code).Inc()
	e.logger.Error("导入步骤失败", "entity_type", cursor.EntityType, "code", code, "error", err)
	return result
}
