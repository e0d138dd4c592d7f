package model

import "time"

// PerformanceObservation 一次练习的表现观测
type PerformanceObservation struct {
	TimeTaken time.Duration `json:"timeTakenMs" swaggertype:"integer"`
	HintsUsed int           `json:"hintsUsed"`
	Resets    int           `json:"resets"`
	Completed bool          `json:"completed"`
}

// AdaptiveSession 学习者单次会话的自适应难度状态。
// 只存在于内存中，会话结束即丢弃；两个计数器互斥：
// 记录一次挣扎会清零连续成功计数，反之亦然。
type AdaptiveSession struct {
	ID                  string                   `json:"id"`
	Age                 int                      `json:"age"`
	Tier                Tier                     `json:"tier"`
	Observations        []PerformanceObservation `json:"observations"`
	ConsecutiveStruggle int                      `json:"consecutiveStruggle"`
	ConsecutiveSuccess  int                      `json:"consecutiveSuccess"`
	LastAdaptedAt       time.Time                `json:"lastAdaptedAt"`
	CreatedAt           time.Time                `json:"createdAt"`
}

// StartingTierForAge 年龄只决定起始层级，之后由适应规则接管
func StartingTierForAge(age int) Tier {
	switch {
	case age <= 5:
		return TierEasy
	case age <= 7:
		return TierRegular
	default:
		return TierChallenge
	}
}
