package scoring

import (
	"testing"
	"time"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

var refDate = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestClassifyRisk_BlockedAlone(t *testing.T) {
	// 阻塞贡献 3 分，单独就至少是 MEDIUM
	task := &domain.Task{
		Title:       "Release hotfix",
		Description: "ship it",
		Status:      domain.StatusBlocked,
		Assignee:    "alice",
	}
	if got := ClassifyRisk(task, refDate); got != domain.RiskMedium {
		t.Errorf("ClassifyRisk() = %v, want %v", got, domain.RiskMedium)
	}
}

func TestClassifyRisk_BlockedAndUnassigned(t *testing.T) {
	// 3 + 1 = 4，达到 HIGH 阈值
	task := &domain.Task{
		Title:       "Release hotfix",
		Description: "ship it",
		Status:      domain.StatusBlocked,
	}
	if got := ClassifyRisk(task, refDate); got != domain.RiskHigh {
		t.Errorf("ClassifyRisk() = %v, want %v", got, domain.RiskHigh)
	}
}

func TestClassifyRisk_OverdueDeadline(t *testing.T) {
	task := &domain.Task{
		Title:       "Write docs",
		Description: "user guide",
		Status:      domain.StatusInProgress,
		Assignee:    "bob",
		Deadline:    datePtr(refDate.AddDate(0, 0, -2)),
	}
	// 仅过期 3 分 -> MEDIUM
	if got := ClassifyRisk(task, refDate); got != domain.RiskMedium {
		t.Errorf("ClassifyRisk() = %v, want %v", got, domain.RiskMedium)
	}
}

func TestClassifyRisk_MissingDeadlineIsNeutral(t *testing.T) {
	task := &domain.Task{
		Title:       "Refactor config",
		Description: "split loader",
		Status:      domain.StatusTodo,
		Assignee:    "carol",
	}
	if got := ClassifyRisk(task, refDate); got != domain.RiskLow {
		t.Errorf("ClassifyRisk() = %v, want %v", got, domain.RiskLow)
	}
}

func TestClassifyRisk_ThresholdBoundaries(t *testing.T) {
	// 未分配 + 大故事点 = 2，恰好落在 MEDIUM 下界
	medium := &domain.Task{
		Title:       "Migrate schema",
		Description: "postgres 16",
		Status:      domain.StatusTodo,
		StoryPoints: 8,
	}
	if got := ClassifyRisk(medium, refDate); got != domain.RiskMedium {
		t.Errorf("score 2: ClassifyRisk() = %v, want %v", got, domain.RiskMedium)
	}

	// 过期 + 未分配 = 4，恰好落在 HIGH 下界
	high := &domain.Task{
		Title:       "Migrate schema",
		Description: "postgres 16",
		Status:      domain.StatusTodo,
		Deadline:    datePtr(refDate.AddDate(0, 0, -1)),
	}
	if got := ClassifyRisk(high, refDate); got != domain.RiskHigh {
		t.Errorf("score 4: ClassifyRisk() = %v, want %v", got, domain.RiskHigh)
	}
}

func TestClassifyRisk_UnclearStatusOrEmptyDescription(t *testing.T) {
	unclear := &domain.Task{
		Title:       "???",
		Description: "some text",
		Status:      domain.StatusUnclear,
		Assignee:    "dave",
	}
	if got := ClassifyRisk(unclear, refDate); got != domain.RiskMedium {
		t.Errorf("unclear status: ClassifyRisk() = %v, want %v", got, domain.RiskMedium)
	}

	empty := &domain.Task{
		Title:    "Fix login",
		Status:   domain.StatusTodo,
		Assignee: "dave",
	}
	if got := ClassifyRisk(empty, refDate); got != domain.RiskMedium {
		t.Errorf("empty description: ClassifyRisk() = %v, want %v", got, domain.RiskMedium)
	}
}
