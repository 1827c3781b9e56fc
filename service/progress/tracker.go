/*
 * @module service/progress/tracker
 * @description 进度跟踪器：推进导入游标，判定耗尽，估算剩余时间
 * @architecture 服务层 - 纯计算
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 引擎每步结束 -> Advance 更新游标 -> 返回给调用方往返
 * @rules Done 当且仅当最后抓取的页短于页大小；剩余时间估算仅供展示，不参与控制流
 * @dependencies 无
 * @refs service/importengine
 */

package progress

import (
	"fmt"
	"time"

	"migration-service/service/meta"
	"migration-service/service/models"
)

// Tracker 进度跟踪器
type Tracker struct{}

// NewTracker 创建进度跟踪器
func NewTracker() *Tracker {
	return &Tracker{}
}

// Advance 在一个步骤结束后推进游标
// rowsProcessed 为本步骤处理的行数（含跳过行），lastPageLen 为最后一页实际返回的行数
func (t *Tracker) Advance(cursor models.ImportCursor, rowsProcessed, lastPageLen, pageSize int, elapsed time.Duration) models.ImportCursor {
	cursor.Offset += int64(rowsProcessed)

	// 源耗尽判定：最后一页短于页大小
	if lastPageLen < pageSize {
		cursor.Done = true
	}

	cursor.EstimatedSecondsRemaining = t.estimateRemaining(cursor, rowsProcessed, elapsed)
	cursor.Message = t.buildMessage(cursor)
	return cursor
}

// estimateRemaining 用本步骤的单行耗时外推剩余秒数，仅供展示
func (t *Tracker) estimateRemaining(cursor models.ImportCursor, rowsProcessed int, elapsed time.Duration) int64 {
	if cursor.Done || rowsProcessed <= 0 || cursor.TotalEstimate < 0 {
		return 0
	}
	remaining := cursor.TotalEstimate - cursor.Offset
	if remaining <= 0 {
		return 0
	}
	perRow := elapsed.Seconds() / float64(rowsProcessed)
	return int64(perRow * float64(remaining))
}

// buildMessage 生成人类可读的进度消息
func (t *Tracker) buildMessage(cursor models.ImportCursor) string {
	display := meta.GetEntityDisplayName(cursor.EntityType)
	if cursor.Done {
		return fmt.Sprintf("%s 导入完成，共处理 %d 行", display, cursor.Offset)
	}
	if cursor.TotalEstimate >= 0 {
		return fmt.Sprintf("%s 导入中：%d / 约 %d 行", display, cursor.Offset, cursor.TotalEstimate)
	}
	return fmt.Sprintf("%s 导入中：已处理 %d 行", display, cursor.Offset)
}

// Progress 计算 [0,1] 进度比例，总数未知时返回 -1（由调用方按已完成类型数折算）
func (t *Tracker) Progress(cursor models.ImportCursor) float64 {
	if cursor.Done {
		return 1
	}
	if cursor.TotalEstimate <= 0 {
		return -1
	}
	p := float64(cursor.Offset) / float64(cursor.TotalEstimate)
	if p > 1 {
		p = 1
	}
	return p
}
