package model

import "time"

// UsageRecord 某用户某个计费周期内的生成用量，一个周期一行
type UsageRecord struct {
	BaseModel
	UserID      uint      `gorm:"index:idx_usage_user_period,unique;not null" json:"userId"`
	PeriodStart time.Time `gorm:"index:idx_usage_user_period,unique;not null" json:"periodStart"`
	Count       int       `gorm:"default:0" json:"count"`
}

func (UsageRecord) TableName() string {
	return "usage_records"
}

// QuotaStatus 配额查询结果。额度用尽是正常的决策结果，不是错误。
type QuotaStatus struct {
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"` // premium 用户为 -1（无限制）
	Limit     int       `json:"limit"`
	ResetDate time.Time `json:"resetDate"`
}

// Unlimited 是否无限额度
func (q *QuotaStatus) Unlimited() bool {
	return q.Limit < 0
}

// Exhausted 额度是否已用尽
func (q *QuotaStatus) Exhausted() bool {
	return !q.Unlimited() && q.Remaining <= 0
}

// GenerationEvent 一次生成的分析事件
type GenerationEvent struct {
	BaseModel
	UserID     uint   `gorm:"index;not null" json:"userId"`
	Kind       string `gorm:"size:32;not null" json:"kind"` // mood | pattern | story
	Mood       string `gorm:"size:32" json:"mood,omitempty"`
	Pattern    string `gorm:"size:32" json:"pattern,omitempty"`
	ActivityID string `gorm:"size:64" json:"activityId,omitempty"`
	DurationMs int64  `gorm:"default:0" json:"durationMs"`
}

func (GenerationEvent) TableName() string {
	return "generation_events"
}

// WorksheetExport 导出记录：生成的 PDF 存放位置与命名
type WorksheetExport struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Filename string `gorm:"size:255;not null" json:"filename"`
	URL      string `gorm:"size:512" json:"url"`
	Pages    int    `gorm:"default:1" json:"pages"`
}

func (WorksheetExport) TableName() string {
	return "worksheet_exports"
}
