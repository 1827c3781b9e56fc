/*
 * @module service/cleanup/run_cleanup_service_test
 * @description 运行记录清理服务单元测试
 * @architecture 测试层
 */

package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migration-service/service/meta"
	"migration-service/service/models"
	"migration-service/testutil"
)

func createRun(t *testing.T, tdb *testutil.TestDB, status string, age time.Duration) *models.MigrationRun {
	run := &models.MigrationRun{
		ID:        uuid.New().String(),
		Profile:   "xtcommerce",
		Status:    status,
		CreatedBy: "test",
		CreatedAt: time.Now().Add(-age),
	}
	require.NoError(t, tdb.DB.Create(run).Error)
	return run
}

func TestCleanupExpiredRuns(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	service := NewRunCleanupService(tdb.DB)

	createRun(t, tdb, meta.RunStatusSuccess, 40*24*time.Hour)
	createRun(t, tdb, meta.RunStatusFailed, 40*24*time.Hour)
	fresh := createRun(t, tdb, meta.RunStatusSuccess, time.Hour)
	running := createRun(t, tdb, meta.RunStatusRunning, 40*24*time.Hour)

	require.NoError(t, service.CleanupExpiredRuns(context.Background()))

	var remaining []models.MigrationRun
	require.NoError(t, tdb.DB.Find(&remaining).Error)
	require.Len(t, remaining, 2, "只清理已结束且超过保留期的记录")

	ids := []string{remaining[0].ID, remaining[1].ID}
	assert.Contains(t, ids, fresh.ID, "保留期内的记录不受影响")
	assert.Contains(t, ids, running.ID, "进行中的运行不受影响")
}

func TestStartStopScheduledCleanup(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	service := NewRunCleanupService(tdb.DB)

	require.NoError(t, service.StartScheduledCleanup())
	assert.Error(t, service.StartScheduledCleanup(), "重复启动应报错")

	service.StopScheduledCleanup()
	// 停止后可安全重复调用
	service.StopScheduledCleanup()
}
