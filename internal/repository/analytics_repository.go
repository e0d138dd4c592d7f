package repository

import (
	"sensory_sheets_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// AnalyticsRepository 记录生成事件，供教师侧统计用
type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) Record(event *model.GenerationEvent) error {
	return r.DB.Create(event).Error
}

func (r *AnalyticsRepository) FindByUser(userID uint, limit int) ([]model.GenerationEvent, error) {
	var events []model.GenerationEvent
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// CountByMood 统计区间内各情绪状态的生成次数
func (r *AnalyticsRepository) CountByMood(userID uint, since time.Time) (map[string]int64, error) {
	type row struct {
		Mood  string
		Total int64
	}
	var rows []row
	err := r.DB.Model(&model.GenerationEvent{}).
		Select("mood, COUNT(*) AS total").
		Where("user_id = ? AND created_at >= ? AND mood != ''", userID, since).
		Group("mood").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Mood] = r.Total
	}
	return counts, nil
}

// CountByKind 统计区间内各生成类型的次数
func (r *AnalyticsRepository) CountByKind(userID uint, since time.Time) (map[string]int64, error) {
	type row struct {
		Kind  string
		Total int64
	}
	var rows []row
	err := r.DB.Model(&model.GenerationEvent{}).
		Select("kind, COUNT(*) AS total").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Kind] = r.Total
	}
	return counts, nil
}
