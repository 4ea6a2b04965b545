package scoring

import (
	"sort"
	"time"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

// Rank 重算每个任务的风险等级与优先级分数并写回缓存字段，
// 然后按分数降序返回新的切片。同分任务保持输入顺序（稳定排序）。
func Rank(tasks []*domain.Task, now time.Time) []*domain.Task {
	for _, t := range tasks {
		t.RiskLevel = ClassifyRisk(t, now)
		t.PriorityScore = ScorePriority(t, t.RiskLevel, now)
	}

	ranked := make([]*domain.Task, len(tasks))
	copy(ranked, tasks)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})
	return ranked
}
