package service

import (
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/repository"
	"sensory_sheets_backend/pkg/logger"
	"sensory_sheets_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// AnalyticsService 生成事件的记录与汇总。
// 记录失败只打日志，绝不影响工作表生成主流程。
type AnalyticsService struct {
	Repo *repository.AnalyticsRepository
}

func NewAnalyticsService(repo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{Repo: repo}
}

// RecordGeneration 异步语义：错误吞掉打日志，指标同步累加
func (s *AnalyticsService) RecordGeneration(event *model.GenerationEvent) {
	monitoring.GenerationCounter.WithLabelValues(event.Kind, event.Mood).Inc()

	if err := s.Repo.Record(event); err != nil {
		logger.Log.Warn("Failed to record generation event",
			zap.Uint("userID", event.UserID),
			zap.String("kind", event.Kind),
			zap.Error(err))
	}
}

// Summary 最近三十天的使用画像
type AnalyticsSummary struct {
	ByMood      map[string]int64        `json:"byMood"`
	ByKind      map[string]int64        `json:"byKind"`
	RecentItems []model.GenerationEvent `json:"recentItems"`
}

func (s *AnalyticsService) Summary(userID uint) (*AnalyticsSummary, error) {
	since := time.Now().AddDate(0, 0, -30)

	byMood, err := s.Repo.CountByMood(userID, since)
	if err != nil {
		return nil, err
	}
	byKind, err := s.Repo.CountByKind(userID, since)
	if err != nil {
		return nil, err
	}
	recent, err := s.Repo.FindByUser(userID, 20)
	if err != nil {
		return nil, err
	}

	return &AnalyticsSummary{
		ByMood:      byMood,
		ByKind:      byKind,
		RecentItems: recent,
	}, nil
}
