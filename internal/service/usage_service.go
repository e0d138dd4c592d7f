package service

import (
	"fmt"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"
	"time"
)

// UsageStore 配额存储的最小接口，仓储层实现，测试里可以换成内存版
type UsageStore interface {
	CountInPeriod(userID uint, periodStart time.Time) (int, error)
	CheckAndIncrement(userID uint, periodStart time.Time, limit int) (used int, allowed bool, err error)
}

// UsageService 免费档按月限次，premium 不限。
// 额度耗尽是业务决策不是错误：allowed=false + 完整的 QuotaStatus。
type UsageService struct {
	Store     UsageStore
	FreeLimit int
	Now       func() time.Time
}

func NewUsageService(store UsageStore, freeLimit int) *UsageService {
	return &UsageService{Store: store, FreeLimit: freeLimit, Now: time.Now}
}

// limitFor premium 返回 -1 表示不限量
func (s *UsageService) limitFor(tier model.SubscriptionTier) int {
	if tier == model.TierPremium {
		return -1
	}
	return s.FreeLimit
}

// nextReset 下一账期起点即额度重置时刻
func nextReset(periodStart time.Time) time.Time {
	return periodStart.AddDate(0, 1, 0)
}

// Status 只读查询，不消耗额度
func (s *UsageService) Status(userID uint, tier model.SubscriptionTier) (*model.QuotaStatus, error) {
	periodStart := periodStartOf(s.Now())
	limit := s.limitFor(tier)

	used, err := s.Store.CountInPeriod(userID, periodStart)
	if err != nil {
		return nil, err
	}
	return buildStatus(used, limit, periodStart), nil
}

// CheckAndRecord 检查并占用一次额度，检查与记录在同一事务内完成。
// 记录失败时返回错误，调用方不得放行生成。
func (s *UsageService) CheckAndRecord(userID uint, tier model.SubscriptionTier) (*model.QuotaStatus, bool, error) {
	periodStart := periodStartOf(s.Now())
	limit := s.limitFor(tier)

	used, allowed, err := s.Store.CheckAndIncrement(userID, periodStart, limit)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", util.ErrRecordFailed, err)
	}
	return buildStatus(used, limit, periodStart), allowed, nil
}

func periodStartOf(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func buildStatus(used, limit int, periodStart time.Time) *model.QuotaStatus {
	status := &model.QuotaStatus{
		Used:      used,
		Limit:     limit,
		ResetDate: nextReset(periodStart),
	}
	if limit < 0 {
		status.Remaining = -1
	} else {
		status.Remaining = limit - used
		if status.Remaining < 0 {
			status.Remaining = 0
		}
	}
	return status
}
