/*
 * @module service/scheduler/scheduler_service_test
 * @description 迁移调度器单元测试
 * @architecture 测试层
 */

package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migration-service/service/models"
	"migration-service/testutil"
)

// recordingRunner 记录触发次数的假运行器
type recordingRunner struct {
	mu   sync.Mutex
	runs []string
}

func (r *recordingRunner) RunProfile(ctx context.Context, profileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, profileID)
	return nil
}

func (r *recordingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

func TestStart_LoadsScheduledProfiles(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	factory := testutil.NewTestDataFactory(tdb.DB)

	scheduled := factory.CreateSourceProfile("xtcommerce", func(p *models.SourceProfile) {
		p.CronSchedule = "0 0 3 * * *"
	})
	factory.CreateSourceProfile("magento") // 无Cron表达式，不参与调度

	runner := &recordingRunner{}
	service := NewSchedulerService(tdb.DB, runner)
	defer service.Stop()
	require.NoError(t, service.Start())

	service.mu.Lock()
	defer service.mu.Unlock()
	_, registered := service.entries[scheduled.ID]
	assert.True(t, registered)
	assert.Len(t, service.entries, 1)
}

func TestReloadProfile(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	factory := testutil.NewTestDataFactory(tdb.DB)

	profile := factory.CreateSourceProfile("xtcommerce")
	profile.CronSchedule = "0 0 3 * * *"
	profile.IsEnabled = true
	require.NoError(t, tdb.DB.Save(profile).Error)

	runner := &recordingRunner{}
	service := NewSchedulerService(tdb.DB, runner)
	defer service.Stop()
	require.NoError(t, service.Start())

	require.NoError(t, service.ReloadProfile(profile.ID))
	service.mu.Lock()
	_, registered := service.entries[profile.ID]
	service.mu.Unlock()
	assert.True(t, registered, "启用且带Cron表达式的配置应注册调度")

	// 停用后重载应移除条目
	profile.IsEnabled = false
	require.NoError(t, tdb.DB.Save(profile).Error)
	require.NoError(t, service.ReloadProfile(profile.ID))
	service.mu.Lock()
	_, registered = service.entries[profile.ID]
	service.mu.Unlock()
	assert.False(t, registered)

	// 不存在的配置不报错
	require.NoError(t, service.ReloadProfile("missing-id"))
}

func TestTriggerNow(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	runner := &recordingRunner{}
	service := NewSchedulerService(tdb.DB, runner)
	defer service.Stop()

	service.TriggerNow("profile-1")

	assert.Eventually(t, func() bool {
		return runner.count() == 1
	}, time.Second, 10*time.Millisecond)
}
