package scoring

import (
	"testing"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

func TestRank_DescendingByScore(t *testing.T) {
	tasks := []*domain.Task{
		{Title: "low", Description: "d", Status: domain.StatusTodo, Assignee: "a", TaskType: domain.TypeFeature},
		{Title: "high", Description: "d", Status: domain.StatusBlocked, Assignee: "a", TaskType: domain.TypeBug},
		{Title: "mid", Description: "d", Status: domain.StatusInProgress, Assignee: "a", TaskType: domain.TypeFeature},
	}

	ranked := Rank(tasks, refDate)

	if len(ranked) != 3 {
		t.Fatalf("Rank() returned %d tasks, want 3", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].PriorityScore < ranked[i].PriorityScore {
			t.Errorf("ranked[%d].PriorityScore=%v < ranked[%d].PriorityScore=%v",
				i-1, ranked[i-1].PriorityScore, i, ranked[i].PriorityScore)
		}
	}
	if ranked[0].Title != "high" {
		t.Errorf("top task = %q, want %q", ranked[0].Title, "high")
	}
}

func TestRank_StableOnTies(t *testing.T) {
	// 四个完全相同的任务同分，必须保持输入顺序
	var tasks []*domain.Task
	for _, title := range []string{"first", "second", "third", "fourth"} {
		tasks = append(tasks, &domain.Task{
			Title:       title,
			Description: "same",
			Status:      domain.StatusTodo,
			Assignee:    "a",
			TaskType:    domain.TypeFeature,
		})
	}

	ranked := Rank(tasks, refDate)

	want := []string{"first", "second", "third", "fourth"}
	for i, title := range want {
		if ranked[i].Title != title {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Title, title)
		}
	}
}

func TestRank_WritesBackDerivedFields(t *testing.T) {
	task := &domain.Task{
		Title:    "Crash on start",
		Status:   domain.StatusBlocked,
		TaskType: domain.TypeBug,
	}

	Rank([]*domain.Task{task}, refDate)

	if task.RiskLevel != domain.RiskHigh {
		t.Errorf("RiskLevel = %v, want %v", task.RiskLevel, domain.RiskHigh)
	}
	if task.PriorityScore == 0 {
		t.Error("PriorityScore was not written back")
	}
}
