/*
 * @module service/identity/store_test
 * @description 身份映射存储单元测试：幂等写入、冲突检测与重指
 * @architecture 测试层
 */

package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migration-service/testutil"
)

func TestRecordMapping_Idempotent(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	store := NewStore(tdb.DB)

	require.NoError(t, store.RecordMapping("article", "100", 1))
	// 相同键相同目标重写是空操作
	require.NoError(t, store.RecordMapping("article", "100", 1))

	count, err := store.CountByType("article")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRecordMapping_DuplicateConflict(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	store := NewStore(tdb.DB)

	require.NoError(t, store.RecordMapping("article", "100", 1))

	err := store.RecordMapping("article", "100", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateMapping, "相同键不同目标是不变量违反")

	// 冲突不改变既有映射
	targetID, found, err := store.LookupTarget("article", "100")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(1), targetID)
}

func TestLookupTarget_NotFound(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	store := NewStore(tdb.DB)

	_, found, err := store.LookupTarget("article", "nope")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLookupTarget_TypeIsolation(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	store := NewStore(tdb.DB)

	require.NoError(t, store.RecordMapping("article", "100", 1))
	require.NoError(t, store.RecordMapping("category", "100", 7))

	articleID, _, err := store.LookupTarget("article", "100")
	require.NoError(t, err)
	categoryID, _, err := store.LookupTarget("category", "100")
	require.NoError(t, err)

	assert.Equal(t, int64(1), articleID)
	assert.Equal(t, int64(7), categoryID)
}

func TestRepointMapping(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	store := NewStore(tdb.DB)

	require.NoError(t, store.RecordMapping("article", "100", 1))
	require.NoError(t, store.RepointMapping("article", "100", 42))

	targetID, found, err := store.LookupTarget("article", "100")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(42), targetID)
}

func TestRepointMapping_Missing(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	store := NewStore(tdb.DB)

	err := store.RepointMapping("article", "nope", 42)
	assert.Error(t, err, "重指不存在的映射应报错")
}

func TestClearByType(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	store := NewStore(tdb.DB)

	require.NoError(t, store.RecordMapping("article", "1", 1))
	require.NoError(t, store.RecordMapping("article", "2", 2))
	require.NoError(t, store.RecordMapping("order", "1", 3))

	require.NoError(t, store.ClearByType("article"))

	articles, err := store.CountByType("article")
	require.NoError(t, err)
	orders, err := store.CountByType("order")
	require.NoError(t, err)

	assert.Equal(t, int64(0), articles)
	assert.Equal(t, int64(1), orders, "清理只影响指定实体类型")
}
