/*
 * @module service/progress/tracker_test
 * @description 进度跟踪器单元测试：游标推进、耗尽判定与剩余时间估算
 * @architecture 测试层
 */

package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"migration-service/service/meta"
	"migration-service/service/models"
)

func TestAdvance_FullPageNotDone(t *testing.T) {
	tracker := NewTracker()
	cursor := models.NewImportCursor(meta.EntityTypeArticle)
	cursor.TotalEstimate = 2500

	cursor = tracker.Advance(cursor, 1000, 1000, 1000, time.Second)

	assert.Equal(t, int64(1000), cursor.Offset)
	assert.False(t, cursor.Done, "整页取满时不应判定耗尽")
	assert.Contains(t, cursor.Message, "导入中")
}

func TestAdvance_ShortPageDone(t *testing.T) {
	tracker := NewTracker()
	cursor := models.NewImportCursor(meta.EntityTypeArticle)
	cursor.Offset = 2000
	cursor.TotalEstimate = 2500

	cursor = tracker.Advance(cursor, 500, 500, 1000, time.Second)

	assert.Equal(t, int64(2500), cursor.Offset)
	assert.True(t, cursor.Done, "短页意味着源已耗尽")
	assert.Contains(t, cursor.Message, "导入完成")
	assert.Equal(t, int64(0), cursor.EstimatedSecondsRemaining)
}

func TestAdvance_EmptyPageDone(t *testing.T) {
	tracker := NewTracker()
	cursor := models.NewImportCursor(meta.EntityTypeCategory)

	cursor = tracker.Advance(cursor, 0, 0, 1000, time.Millisecond)

	assert.True(t, cursor.Done, "空页也是短页")
	assert.Equal(t, int64(0), cursor.Offset)
}

func TestAdvance_EstimatesRemainingSeconds(t *testing.T) {
	tracker := NewTracker()
	cursor := models.NewImportCursor(meta.EntityTypeOrder)
	cursor.TotalEstimate = 3000

	// 1000 行耗时 2 秒 -> 剩余 2000 行约 4 秒
	cursor = tracker.Advance(cursor, 1000, 1000, 1000, 2*time.Second)

	assert.Equal(t, int64(4), cursor.EstimatedSecondsRemaining)
}

func TestAdvance_UnknownTotalNoEstimate(t *testing.T) {
	tracker := NewTracker()
	cursor := models.NewImportCursor(meta.EntityTypeOrder)

	cursor = tracker.Advance(cursor, 1000, 1000, 1000, time.Second)

	assert.Equal(t, int64(0), cursor.EstimatedSecondsRemaining)
	assert.Contains(t, cursor.Message, "已处理 1000 行")
}

func TestProgress(t *testing.T) {
	tracker := NewTracker()

	cursor := models.NewImportCursor(meta.EntityTypeArticle)
	cursor.TotalEstimate = 2000
	cursor.Offset = 500
	assert.InDelta(t, 0.25, tracker.Progress(cursor), 1e-9)

	cursor.Done = true
	assert.Equal(t, 1.0, tracker.Progress(cursor))

	unknown := models.NewImportCursor(meta.EntityTypeArticle)
	assert.Equal(t, -1.0, tracker.Progress(unknown), "总数未知时返回 -1")

	over := models.NewImportCursor(meta.EntityTypeArticle)
	over.TotalEstimate = 100
	over.Offset = 150
	assert.Equal(t, 1.0, tracker.Progress(over), "估算偏小的进度截断到 1")
}
