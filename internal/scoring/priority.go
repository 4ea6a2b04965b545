package scoring

import (
	"time"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

// ScorePriority 计算任务的优先级分数：截止紧迫度 + 状态 + 风险等级 + 任务类型。
// 分数只在同一次计算批次内可比，不设上限。
func ScorePriority(t *domain.Task, risk domain.RiskLevel, now time.Time) float64 {
	var score float64

	// 截止紧迫度，剩余天数向零截断，过期直接给最高权重
	if t.Deadline != nil {
		days := int(t.Deadline.Sub(now).Hours() / 24)
		switch {
		case days < 0:
			score += 100
		case days <= 1:
			score += 50
		case days <= 3:
			score += 30
		case days <= 7:
			score += 20
		}
	}

	switch t.Status {
	case domain.StatusBlocked:
		score += 40
	case domain.StatusInProgress:
		score += 25
	}

	// 风险权重对所有任务恒定生效
	switch risk {
	case domain.RiskHigh:
		score += 30
	case domain.RiskMedium:
		score += 15
	default:
		score += 5
	}

	if t.TaskType == domain.TypeBug {
		score += 20
	}

	return score
}
