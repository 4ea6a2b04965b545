package biz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/scoring"
)

const (
	topPriorityCount   = 10
	blockedReason      = "Marked as blocked"
	placeholderSummary = "Unable to generate summary at this time."
)

// ReportRepo 日报仓库接口
type ReportRepo interface {
	// Upsert 按 (project_id, date) 写入：已存在则原地覆盖内容字段并保留标识
	Upsert(ctx context.Context, report *domain.DailyReport) (*domain.DailyReport, error)
	Get(ctx context.Context, id int) (*domain.DailyReport, error)
	LatestByProject(ctx context.Context, projectID int) (*domain.DailyReport, error)
}

// NarrativeProvider 外部叙事服务。调用方负责将失败降级为占位内容，
// 实现方只需如实返回错误。
type NarrativeProvider interface {
	DailySummary(ctx context.Context, tasks []domain.TaskSnapshot, projectName string) (*domain.NarrativeSummary, error)
	StakeholderUpdate(ctx context.Context, summary *domain.ReportSummary, projectName string) (string, error)
	AnalyzeTask(ctx context.Context, title, description string) (*domain.TaskAnalysis, error)
}

// ReportUseCase 日报编排：排序、叙事、阻塞提取、按天幂等落库
type ReportUseCase struct {
	projects ProjectRepo
	tasks    TaskRepo
	reports  ReportRepo
	provider NarrativeProvider
	locks    sync.Map
	log      *log.Helper
	now      func() time.Time
}

// NewReportUseCase 创建日报业务逻辑实例
func NewReportUseCase(projects ProjectRepo, tasks TaskRepo, reports ReportRepo, provider NarrativeProvider, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{
		projects: projects,
		tasks:    tasks,
		reports:  reports,
		provider: provider,
		log:      log.NewHelper(logger),
		now:      time.Now,
	}
}

// GenerateDailyReport 为项目生成（或覆盖）当天的日报。
// 叙事服务失败只降级为占位摘要，不会让整次生成失败。
func (uc *ReportUseCase) GenerateDailyReport(ctx context.Context, projectID int) (*domain.DailyReport, error) {
	project, err := uc.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// 同一 (项目, 日期) 的读改写串行化
	mu := uc.lockFor(fmt.Sprintf("%d:%s", projectID, day.Format(time.DateOnly)))
	mu.Lock()
	defer mu.Unlock()

	tasks, err := uc.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ranked := scoring.Rank(tasks, now)
	for _, t := range ranked {
		if err := uc.tasks.UpdateScores(ctx, t); err != nil {
			uc.log.Warnf("failed to persist scores for task %d: %v", t.ID, err)
		}
	}

	snapshots := make([]domain.TaskSnapshot, 0, len(ranked))
	for _, t := range ranked {
		snapshots = append(snapshots, snapshotOf(t))
	}

	var summary *domain.NarrativeSummary
	if uc.provider != nil {
		summary, err = uc.provider.DailySummary(ctx, snapshots, project.Name)
		if err != nil {
			uc.log.Errorf("narrative provider failed for project %d: %v", projectID, err)
			summary = nil
		}
	}
	if summary == nil {
		summary = &domain.NarrativeSummary{
			SummaryText: placeholderSummary,
			Risks:       []domain.ReportEntry{},
		}
	}

	// 阻塞任务由规则本地提取，与叙事服务报告的风险无关
	blocked := make([]domain.ReportEntry, 0)
	for _, t := range tasks {
		if t.Status == domain.StatusBlocked {
			blocked = append(blocked, domain.ReportEntry{Task: t.Title, Reason: blockedReason})
		}
	}

	top := snapshots
	if len(top) > topPriorityCount {
		top = top[:topPriorityCount]
	}

	risks := summary.Risks
	if risks == nil {
		risks = []domain.ReportEntry{}
	}

	return uc.reports.Upsert(ctx, &domain.DailyReport{
		ProjectID:    projectID,
		Date:         day,
		SummaryText:  summary.SummaryText,
		PriorityList: top,
		Risks:        risks,
		BlockedTasks: blocked,
	})
}

// GetReportSummary 按报告 ID 返回摘要视图，不存在时报 NotFound
func (uc *ReportUseCase) GetReportSummary(ctx context.Context, reportID int) (*domain.ReportSummary, error) {
	report, err := uc.reports.Get(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return summaryView(report), nil
}

// GetLatestReport 返回项目最近一份日报的摘要视图
func (uc *ReportUseCase) GetLatestReport(ctx context.Context, projectID int) (*domain.ReportSummary, error) {
	if _, err := uc.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	report, err := uc.reports.LatestByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return summaryView(report), nil
}

// GenerateStakeholderEmail 生成干系人更新邮件。
// 没有日报时先自动生成一份，NotFound 只会来自项目查询。
func (uc *ReportUseCase) GenerateStakeholderEmail(ctx context.Context, projectID int) (*domain.StakeholderEmail, error) {
	project, err := uc.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	report, err := uc.reports.LatestByProject(ctx, projectID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		report, err = uc.GenerateDailyReport(ctx, projectID)
		if err != nil {
			return nil, err
		}
	}

	var body string
	if uc.provider != nil {
		body, err = uc.provider.StakeholderUpdate(ctx, summaryView(report), project.Name)
		if err != nil {
			uc.log.Errorf("stakeholder update failed for project %d: %v", projectID, err)
			body = ""
		}
	}
	if body == "" {
		body = fmt.Sprintf("Project %s update: Work is progressing as planned.", project.Name)
	}

	return &domain.StakeholderEmail{
		Subject: "Project Update: " + project.Name,
		Body:    body,
	}, nil
}

// TimelineStatus 基于项目全量任务评估整体健康状态
func (uc *ReportUseCase) TimelineStatus(ctx context.Context, projectID int) (*domain.TimelineStatus, error) {
	if _, err := uc.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	status := scoring.EvaluateTimeline(tasks, uc.now())
	return &status, nil
}

func (uc *ReportUseCase) lockFor(key string) *sync.Mutex {
	mu, _ := uc.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func snapshotOf(t *domain.Task) domain.TaskSnapshot {
	snap := domain.TaskSnapshot{
		ID:            t.ID,
		Title:         t.Title,
		Status:        t.Status.String(),
		Assignee:      t.Assignee,
		PriorityScore: t.PriorityScore,
		RiskLevel:     t.RiskLevel.String(),
		TaskType:      t.TaskType.String(),
	}
	if t.Deadline != nil {
		snap.Deadline = t.Deadline.Format(time.DateOnly)
	}
	return snap
}

func summaryView(r *domain.DailyReport) *domain.ReportSummary {
	view := &domain.ReportSummary{
		Date:          r.Date.Format(time.DateOnly),
		Summary:       r.SummaryText,
		PriorityTasks: r.PriorityList,
		Risks:         r.Risks,
		BlockedTasks:  r.BlockedTasks,
	}
	if view.PriorityTasks == nil {
		view.PriorityTasks = []domain.TaskSnapshot{}
	}
	if view.Risks == nil {
		view.Risks = []domain.ReportEntry{}
	}
	if view.BlockedTasks == nil {
		view.BlockedTasks = []domain.ReportEntry{}
	}
	return view
}
