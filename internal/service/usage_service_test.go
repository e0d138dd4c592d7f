package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUsageStore 内存版配额存储，语义与仓储实现一致
type memUsageStore struct {
	counts map[string]int
}

func newMemUsageStore() *memUsageStore {
	return &memUsageStore{counts: make(map[string]int)}
}

func usageKey(userID uint, periodStart time.Time) string {
	return fmt.Sprintf("%d/%s", userID, periodStart.Format("2006-01"))
}

func (m *memUsageStore) CountInPeriod(userID uint, periodStart time.Time) (int, error) {
	return m.counts[usageKey(userID, periodStart)], nil
}

func (m *memUsageStore) CheckAndIncrement(userID uint, periodStart time.Time, limit int) (int, bool, error) {
	key := usageKey(userID, periodStart)
	used := m.counts[key]
	if limit >= 0 && used >= limit {
		return used, false, nil
	}
	m.counts[key] = used + 1
	return used + 1, true, nil
}

func newTestUsage(store UsageStore, freeLimit int) *UsageService {
	svc := NewUsageService(store, freeLimit)
	svc.Now = func() time.Time {
		return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCheckAndRecordFreeTier(t *testing.T) {
	store := newMemUsageStore()
	svc := newTestUsage(store, 3)

	for i := 1; i <= 3; i++ {
		status, allowed, err := svc.CheckAndRecord(1, model.TierFree)
		require.NoError(t, err)
		assert.True(t, allowed, "call %d", i)
		assert.Equal(t, i, status.Used)
		assert.Equal(t, 3-i, status.Remaining)
	}

	// 第 4 次被拒，且不再累加
	status, allowed, err := svc.CheckAndRecord(1, model.TierFree)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 3, status.Used)
	assert.Zero(t, status.Remaining)
	assert.True(t, status.Exhausted())

	again, _, err := svc.CheckAndRecord(1, model.TierFree)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Used)
}

func TestCheckAndRecordPremiumIsUnlimited(t *testing.T) {
	store := newMemUsageStore()
	svc := newTestUsage(store, 3)

	for i := 0; i < 10; i++ {
		status, allowed, err := svc.CheckAndRecord(2, model.TierPremium)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.True(t, status.Unlimited())
		assert.Equal(t, -1, status.Remaining)
		assert.False(t, status.Exhausted())
	}
}

// failingUsageStore 写入总是失败
type failingUsageStore struct{}

func (failingUsageStore) CountInPeriod(uint, time.Time) (int, error) { return 0, nil }

func (failingUsageStore) CheckAndIncrement(uint, time.Time, int) (int, bool, error) {
	return 0, false, errors.New("lock wait timeout")
}

// 记录失败不得放行生成
func TestCheckAndRecordStoreFailureBlocksGeneration(t *testing.T) {
	svc := newTestUsage(failingUsageStore{}, 3)

	status, allowed, err := svc.CheckAndRecord(1, model.TierFree)
	assert.Nil(t, status)
	assert.False(t, allowed)
	assert.ErrorIs(t, err, util.ErrRecordFailed)
}

// Status 只读，不消耗额度
func TestStatusDoesNotConsumeQuota(t *testing.T) {
	store := newMemUsageStore()
	svc := newTestUsage(store, 3)

	for i := 0; i < 5; i++ {
		status, err := svc.Status(1, model.TierFree)
		require.NoError(t, err)
		assert.Zero(t, status.Used)
		assert.Equal(t, 3, status.Remaining)
	}
}

func TestQuotaResetDateIsNextMonth(t *testing.T) {
	store := newMemUsageStore()
	svc := newTestUsage(store, 3)

	status, err := svc.Status(1, model.TierFree)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), status.ResetDate)
}

// 不同用户、不同账期的计数互不影响
func TestUsageIsScopedPerUser(t *testing.T) {
	store := newMemUsageStore()
	svc := newTestUsage(store, 1)

	_, allowed, err := svc.CheckAndRecord(1, model.TierFree)
	require.NoError(t, err)
	assert.True(t, allowed)

	_, allowed, err = svc.CheckAndRecord(1, model.TierFree)
	require.NoError(t, err)
	assert.False(t, allowed)

	_, allowed, err = svc.CheckAndRecord(2, model.TierFree)
	require.NoError(t, err)
	assert.True(t, allowed)
}
