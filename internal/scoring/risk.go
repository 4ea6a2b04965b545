package scoring

import (
	"time"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

// ClassifyRisk 依据任务属性累计风险分并映射到三档风险等级。
// 纯函数，参考时间由调用方显式传入。
func ClassifyRisk(t *domain.Task, now time.Time) domain.RiskLevel {
	score := 0

	// 已过期
	if t.Deadline != nil && t.Deadline.Before(now) {
		score += 3
	}

	// 未分配
	if t.Assignee == "" {
		score++
	}

	// 被阻塞
	if t.Status == domain.StatusBlocked {
		score += 3
	}

	// 描述不清
	if t.Status == domain.StatusUnclear || t.Description == "" {
		score += 2
	}

	// 复杂度高
	if t.StoryPoints >= 8 {
		score++
	}

	switch {
	case score >= 4:
		return domain.RiskHigh
	case score >= 2:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
