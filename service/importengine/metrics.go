/*
 * @module service/importengine/metrics
 * @description 导入引擎 Prometheus 指标定义
 * @architecture 可观测性
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 引擎步骤内更新，/metrics 端点暴露
 * @rules 指标仅供展示与告警，不参与控制流
 * @dependencies github.com/prometheus/client_golang
 * @refs engine.go, variant.go
 */

package importengine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rowsImportedTotal 按实体类型统计成功写入目标库的行数
	rowsImportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_rows_imported_total",
			Help: "成功导入目标库的行数",
		},
		[]string{"entity_type"},
	)

	// rowsSkippedTotal 按实体类型统计跳过的行数（含已映射行与错误行）
	rowsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_rows_skipped_total",
			Help: "导入时跳过的行数",
		},
		[]string{"entity_type", "reason"},
	)

	// stepDuration 单次步骤耗时分布
	stepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "migration_step_duration_seconds",
			Help:    "单次导入步骤耗时（秒）",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15, 30},
		},
		[]string{"entity_type"},
	)

	// variantsCreatedTotal 变体生成创建的明细行数
	variantsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "migration_variants_created_total",
			Help: "变体生成创建的商品明细行数",
		},
	)

	// stepErrorsTotal 步骤级致命错误计数
	stepErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_step_errors_total",
			Help: "步骤级致命错误次数",
		},
		[]string{"entity_type", "code"},
	)
)

const (
	skipReasonMapped = "already_mapped"
	skipReasonError  = "row_error"
)
