package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

// 各状态的展示文案
const (
	StatusOnTrack       = "On Track"
	StatusAtRisk        = "At Risk"
	StatusOffTrack      = "Off Track"
	StatusNeedsMoreInfo = "Needs More Info"
)

const (
	reasonNoTasks     = "No tasks found in project"
	reasonProgressing = "Project progressing normally"
)

// EvaluateTimeline 聚合项目全量任务得出整体健康状态。
// 阈值与总数比较使用严格大于：恰好 30% 被阻塞不会触发 Off Track。
// 风险等级读取任务上的缓存字段，调用方负责在需要时先重算。
func EvaluateTimeline(tasks []*domain.Task, now time.Time) domain.TimelineStatus {
	if len(tasks) == 0 {
		return domain.TimelineStatus{
			Status: StatusNeedsMoreInfo,
			Reason: reasonNoTasks,
		}
	}

	total := len(tasks)
	var completed, blocked, overdue, highRisk int
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusDone:
			completed++
		case domain.StatusBlocked:
			blocked++
		}
		if t.Deadline != nil && t.Deadline.Before(now) && t.Status != domain.StatusDone {
			overdue++
		}
		if t.RiskLevel == domain.RiskHigh {
			highRisk++
		}
	}
	rate := float64(completed) / float64(total)

	var status, reason string
	switch {
	case float64(blocked) > float64(total)*0.3 || float64(overdue) > float64(total)*0.2:
		status = StatusOffTrack
		reason = fmt.Sprintf("%d blocked tasks, %d overdue tasks", blocked, overdue)
	case float64(highRisk) > float64(total)*0.3 || overdue > 0:
		status = StatusAtRisk
		reason = fmt.Sprintf("%d high-risk tasks, %d overdue tasks", highRisk, overdue)
	case rate > 0.7:
		status = StatusOnTrack
		reason = fmt.Sprintf("%d%% tasks completed", int(rate*100))
	default:
		status = StatusOnTrack
		reason = reasonProgressing
	}

	return domain.TimelineStatus{
		Status: status,
		Reason: reason,
		Metrics: &domain.TimelineMetrics{
			TotalTasks: total,
			Completed:  completed,
			Blocked:    blocked,
			Overdue:    overdue,
			HighRisk:   highRisk,
			// 百分比保留一位小数
			CompletionRate: math.Round(rate*1000) / 10,
		},
	}
}
