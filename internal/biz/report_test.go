package biz

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

var testNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

// mockProjectRepo 模拟项目仓库
type mockProjectRepo struct {
	projects map[int]*domain.Project
}

func (m *mockProjectRepo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	p.ID = len(m.projects) + 1
	m.projects[p.ID] = p
	return p, nil
}

func (m *mockProjectRepo) Get(ctx context.Context, id int) (*domain.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, errors.NotFound("PROJECT_NOT_FOUND", "project not found")
	}
	return p, nil
}

func (m *mockProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int) error {
	delete(m.projects, id)
	return nil
}

// mockTaskRepo 模拟任务仓库
type mockTaskRepo struct {
	tasks       []*domain.Task
	scoreWrites int
}

func (m *mockTaskRepo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	t.ID = len(m.tasks) + 1
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID int) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) UpdateScores(ctx context.Context, t *domain.Task) error {
	m.scoreWrites++
	return nil
}

// mockReportRepo 以 (project_id, date) 为键模拟 upsert 语义
type mockReportRepo struct {
	byKey  map[string]*domain.DailyReport
	nextID int
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{byKey: map[string]*domain.DailyReport{}, nextID: 1}
}

func reportKey(projectID int, date time.Time) string {
	return fmt.Sprintf("%d:%s", projectID, date.Format(time.DateOnly))
}

func (m *mockReportRepo) Upsert(ctx context.Context, r *domain.DailyReport) (*domain.DailyReport, error) {
	key := reportKey(r.ProjectID, r.Date)
	if existing, ok := m.byKey[key]; ok {
		r.ID = existing.ID
	} else {
		r.ID = m.nextID
		m.nextID++
	}
	m.byKey[key] = r
	return r, nil
}

func (m *mockReportRepo) Get(ctx context.Context, id int) (*domain.DailyReport, error) {
	for _, r := range m.byKey {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.NotFound("REPORT_NOT_FOUND", "report not found")
}

func (m *mockReportRepo) LatestByProject(ctx context.Context, projectID int) (*domain.DailyReport, error) {
	var latest *domain.DailyReport
	for _, r := range m.byKey {
		if r.ProjectID != projectID {
			continue
		}
		if latest == nil || r.Date.After(latest.Date) {
			latest = r
		}
	}
	if latest == nil {
		return nil, errors.NotFound("REPORT_NOT_FOUND", "report not found")
	}
	return latest, nil
}

// fakeProvider 可编程的叙事服务替身
type fakeProvider struct {
	summary      *domain.NarrativeSummary
	summaryErr   error
	update       string
	updateErr    error
	summaryCalls int
}

func (f *fakeProvider) DailySummary(ctx context.Context, tasks []domain.TaskSnapshot, projectName string) (*domain.NarrativeSummary, error) {
	f.summaryCalls++
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeProvider) StakeholderUpdate(ctx context.Context, summary *domain.ReportSummary, projectName string) (string, error) {
	if f.updateErr != nil {
		return "", f.updateErr
	}
	return f.update, nil
}

func (f *fakeProvider) AnalyzeTask(ctx context.Context, title, description string) (*domain.TaskAnalysis, error) {
	return nil, fmt.Errorf("not implemented")
}

func newTestReportUseCase(tasks []*domain.Task, provider NarrativeProvider) (*ReportUseCase, *mockReportRepo, *mockTaskRepo) {
	projects := &mockProjectRepo{projects: map[int]*domain.Project{
		1: {ID: 1, Name: "Apollo"},
	}}
	taskRepo := &mockTaskRepo{tasks: tasks}
	reportRepo := newMockReportRepo()
	uc := NewReportUseCase(projects, taskRepo, reportRepo, provider, log.DefaultLogger)
	uc.now = func() time.Time { return testNow }
	return uc, reportRepo, taskRepo
}

func projectTasks() []*domain.Task {
	overdue := testNow.AddDate(0, 0, -2)
	return []*domain.Task{
		{ID: 1, ProjectID: 1, Title: "Fix login crash", Description: "d", Status: domain.StatusInProgress, TaskType: domain.TypeBug, Assignee: "alice", Deadline: &overdue},
		{ID: 2, ProjectID: 1, Title: "Waiting on vendor", Description: "d", Status: domain.StatusBlocked, TaskType: domain.TypeFeature, Assignee: "bob"},
		{ID: 3, ProjectID: 1, Title: "Write docs", Description: "d", Status: domain.StatusTodo, TaskType: domain.TypeFeature, Assignee: "carol"},
	}
}

func TestReportUseCase_GenerateDailyReport(t *testing.T) {
	provider := &fakeProvider{summary: &domain.NarrativeSummary{
		SummaryText: "Project is healthy.",
		Risks:       []domain.ReportEntry{{Task: "Fix login crash", Reason: "deadline passed"}},
	}}
	uc, _, taskRepo := newTestReportUseCase(projectTasks(), provider)

	report, err := uc.GenerateDailyReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateDailyReport() error = %v", err)
	}

	if report.SummaryText != "Project is healthy." {
		t.Errorf("SummaryText = %q", report.SummaryText)
	}
	if len(report.PriorityList) != 3 {
		t.Fatalf("PriorityList has %d entries, want 3", len(report.PriorityList))
	}
	// 过期的 bug 必须排在最前
	if report.PriorityList[0].Title != "Fix login crash" {
		t.Errorf("top priority = %q", report.PriorityList[0].Title)
	}
	if len(report.BlockedTasks) != 1 || report.BlockedTasks[0].Task != "Waiting on vendor" {
		t.Errorf("BlockedTasks = %+v", report.BlockedTasks)
	}
	if report.BlockedTasks[0].Reason != "Marked as blocked" {
		t.Errorf("blocked reason = %q", report.BlockedTasks[0].Reason)
	}
	if taskRepo.scoreWrites != 3 {
		t.Errorf("scoreWrites = %d, want 3", taskRepo.scoreWrites)
	}
}

func TestReportUseCase_GenerateDailyReport_Idempotent(t *testing.T) {
	provider := &fakeProvider{summary: &domain.NarrativeSummary{SummaryText: "stable"}}
	uc, reportRepo, _ := newTestReportUseCase(projectTasks(), provider)

	first, err := uc.GenerateDailyReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("first GenerateDailyReport() error = %v", err)
	}
	second, err := uc.GenerateDailyReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("second GenerateDailyReport() error = %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("report identity changed: %d -> %d", first.ID, second.ID)
	}
	if len(reportRepo.byKey) != 1 {
		t.Errorf("stored %d reports, want 1", len(reportRepo.byKey))
	}
	if second.SummaryText != first.SummaryText {
		t.Errorf("content differs between identical runs")
	}
}

func TestReportUseCase_ProviderFailureDegrades(t *testing.T) {
	provider := &fakeProvider{summaryErr: fmt.Errorf("provider exploded")}
	uc, _, _ := newTestReportUseCase(projectTasks(), provider)

	report, err := uc.GenerateDailyReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("provider failure must not fail report generation: %v", err)
	}

	if report.SummaryText != "Unable to generate summary at this time." {
		t.Errorf("SummaryText = %q", report.SummaryText)
	}
	if len(report.Risks) != 0 {
		t.Errorf("Risks = %+v, want empty", report.Risks)
	}
	// 阻塞提取是本地规则，不受叙事服务失败影响
	if len(report.BlockedTasks) != 1 {
		t.Errorf("BlockedTasks = %+v, want 1 entry", report.BlockedTasks)
	}
}

func TestReportUseCase_TopTenTruncation(t *testing.T) {
	var tasks []*domain.Task
	for i := 0; i < 12; i++ {
		tasks = append(tasks, &domain.Task{
			ID:        i + 1,
			ProjectID: 1,
			Title:     fmt.Sprintf("task %d", i+1),
			Status:    domain.StatusTodo,
			TaskType:  domain.TypeFeature,
			Assignee:  "a",
		})
	}
	provider := &fakeProvider{summary: &domain.NarrativeSummary{SummaryText: "s"}}
	uc, _, _ := newTestReportUseCase(tasks, provider)

	report, err := uc.GenerateDailyReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateDailyReport() error = %v", err)
	}
	if len(report.PriorityList) != 10 {
		t.Errorf("PriorityList has %d entries, want 10", len(report.PriorityList))
	}
}

func TestReportUseCase_GenerateDailyReport_UnknownProject(t *testing.T) {
	provider := &fakeProvider{summary: &domain.NarrativeSummary{SummaryText: "s"}}
	uc, _, _ := newTestReportUseCase(nil, provider)

	_, err := uc.GenerateDailyReport(context.Background(), 42)
	if !errors.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestReportUseCase_GetReportSummary(t *testing.T) {
	provider := &fakeProvider{summary: &domain.NarrativeSummary{
		SummaryText: "Project is healthy.",
		Risks:       []domain.ReportEntry{{Task: "Fix login crash", Reason: "deadline passed"}},
	}}
	uc, _, _ := newTestReportUseCase(projectTasks(), provider)

	report, err := uc.GenerateDailyReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateDailyReport() error = %v", err)
	}

	view, err := uc.GetReportSummary(context.Background(), report.ID)
	if err != nil {
		t.Fatalf("GetReportSummary() error = %v", err)
	}
	if view.Date != testNow.Format(time.DateOnly) {
		t.Errorf("Date = %q", view.Date)
	}
	if view.Summary != "Project is healthy." {
		t.Errorf("Summary = %q", view.Summary)
	}
	if len(view.Risks) != 1 || view.Risks[0].Task != "Fix login crash" {
		t.Errorf("Risks = %+v", view.Risks)
	}

	if _, err := uc.GetReportSummary(context.Background(), 999); !errors.IsNotFound(err) {
		t.Errorf("missing report: err = %v, want NotFound", err)
	}
}

func TestReportUseCase_StakeholderEmail_SelfHeals(t *testing.T) {
	provider := &fakeProvider{
		summary: &domain.NarrativeSummary{SummaryText: "fresh"},
		update:  "All systems go.",
	}
	uc, reportRepo, _ := newTestReportUseCase(projectTasks(), provider)

	// 没有任何日报时应当先生成一份再写邮件
	email, err := uc.GenerateStakeholderEmail(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateStakeholderEmail() error = %v", err)
	}
	if email.Subject != "Project Update: Apollo" {
		t.Errorf("Subject = %q", email.Subject)
	}
	if email.Body != "All systems go." {
		t.Errorf("Body = %q", email.Body)
	}
	if len(reportRepo.byKey) != 1 {
		t.Errorf("self-heal did not create a report")
	}
}

func TestReportUseCase_StakeholderEmail_ProviderFallback(t *testing.T) {
	provider := &fakeProvider{
		summary:   &domain.NarrativeSummary{SummaryText: "fresh"},
		updateErr: fmt.Errorf("provider down"),
	}
	uc, _, _ := newTestReportUseCase(projectTasks(), provider)

	email, err := uc.GenerateStakeholderEmail(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateStakeholderEmail() error = %v", err)
	}
	if email.Body != "Project Apollo update: Work is progressing as planned." {
		t.Errorf("Body = %q", email.Body)
	}
}

func TestReportUseCase_TimelineStatus(t *testing.T) {
	provider := &fakeProvider{summary: &domain.NarrativeSummary{SummaryText: "s"}}
	uc, _, _ := newTestReportUseCase(nil, provider)

	status, err := uc.TimelineStatus(context.Background(), 1)
	if err != nil {
		t.Fatalf("TimelineStatus() error = %v", err)
	}
	if status.Status != "Needs More Info" {
		t.Errorf("Status = %q", status.Status)
	}
	if status.Metrics != nil {
		t.Error("empty project must not carry metrics")
	}
}
