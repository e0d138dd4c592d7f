package repository

import (
	"errors"
	"sensory_sheets_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// UsageRepository 按自然月维护每用户的生成计数，
// 唯一索引 (user_id, period_start) 保证同一账期只有一行。
type UsageRepository struct {
	DB *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{DB: db}
}

// PeriodStart 账期起点：当月一日零点（UTC）
func PeriodStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CountInPeriod 当前账期已用次数，没有记录按 0 计
func (r *UsageRepository) CountInPeriod(userID uint, periodStart time.Time) (int, error) {
	var record model.UsageRecord
	err := r.DB.Where("user_id = ? AND period_start = ?", userID, periodStart).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return record.Count, nil
}

// CheckAndIncrement 在同一事务里读计数、判额度、加一。
// 超额返回已用数且不落任何写入；写入失败整体回滚。
func (r *UsageRepository) CheckAndIncrement(userID uint, periodStart time.Time, limit int) (used int, allowed bool, err error) {
	err = r.DB.Transaction(func(tx *gorm.DB) error {
		var record model.UsageRecord
		findErr := tx.Where("user_id = ? AND period_start = ?", userID, periodStart).First(&record).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			record = model.UsageRecord{UserID: userID, PeriodStart: periodStart, Count: 0}
		case findErr != nil:
			return findErr
		}

		used = record.Count
		if limit >= 0 && used >= limit {
			allowed = false
			return nil
		}

		record.Count++
		if record.ID == 0 {
			if createErr := tx.Create(&record).Error; createErr != nil {
				return createErr
			}
		} else {
			if saveErr := tx.Model(&record).Update("count", record.Count).Error; saveErr != nil {
				return saveErr
			}
		}
		used = record.Count
		allowed = true
		return nil
	})
	return used, allowed, err
}
