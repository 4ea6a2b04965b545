package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/importer"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/scoring"
)

const defaultStoryPoints = 3

// TaskRepo 任务仓库接口
type TaskRepo interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID int) ([]*domain.Task, error)
	// UpdateScores 仅回写派生缓存字段 priority_score 与 risk_level
	UpdateScores(ctx context.Context, task *domain.Task) error
}

// CreateTaskInput 从文本创建任务的入参
type CreateTaskInput struct {
	Title       string
	Description string
	Deadline    string
	Assignee    string
}

// TaskUseCase 任务生命周期业务逻辑
type TaskUseCase struct {
	projects ProjectRepo
	tasks    TaskRepo
	provider NarrativeProvider
	log      *log.Helper
	now      func() time.Time
}

// NewTaskUseCase 创建任务业务逻辑实例，provider 可为 nil（退化为启发式补全）
func NewTaskUseCase(projects ProjectRepo, tasks TaskRepo, provider NarrativeProvider, logger log.Logger) *TaskUseCase {
	return &TaskUseCase{
		projects: projects,
		tasks:    tasks,
		provider: provider,
		log:      log.NewHelper(logger),
		now:      time.Now,
	}
}

// Create 从标题与描述创建单个任务，持久化前补全拆解结果与派生字段
func (uc *TaskUseCase) Create(ctx context.Context, projectID int, in CreateTaskInput) (*domain.Task, error) {
	if _, err := uc.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusTodo,
		TaskType:    domain.TypeFeature,
		Deadline:    importer.ParseDeadline(in.Deadline),
		Assignee:    in.Assignee,
		RiskLevel:   domain.RiskLow,
	}
	uc.enrich(ctx, task)
	uc.refreshScores(task)
	return uc.tasks.Create(ctx, task)
}

// ImportDrafts 批量导入规范化后的任务草稿
func (uc *TaskUseCase) ImportDrafts(ctx context.Context, projectID int, drafts []importer.TaskDraft) ([]*domain.Task, error) {
	if _, err := uc.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	created := make([]*domain.Task, 0, len(drafts))
	for _, d := range drafts {
		task := &domain.Task{
			ProjectID:   projectID,
			Title:       d.Title,
			Description: d.Description,
			Status:      d.Status,
			TaskType:    domain.TypeFeature,
			Deadline:    d.Deadline,
			Assignee:    d.Assignee,
			StoryPoints: d.StoryPoints,
			RiskLevel:   domain.RiskLow,
		}
		uc.enrich(ctx, task)
		uc.refreshScores(task)

		saved, err := uc.tasks.Create(ctx, task)
		if err != nil {
			return nil, err
		}
		created = append(created, saved)
	}
	uc.log.Infof("imported %d tasks into project %d", len(created), projectID)
	return created, nil
}

// List 列出项目的全部任务
func (uc *TaskUseCase) List(ctx context.Context, projectID int) ([]*domain.Task, error) {
	if _, err := uc.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.tasks.ListByProject(ctx, projectID)
}

// Recompute 对项目全部任务显式重算派生缓存并落库
func (uc *TaskUseCase) Recompute(ctx context.Context, projectID int) ([]*domain.Task, error) {
	tasks, err := uc.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		uc.refreshScores(t)
		if err := uc.tasks.UpdateScores(ctx, t); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// enrich 请求叙事服务拆解任务；失败时退化为关键词分类与默认故事点
func (uc *TaskUseCase) enrich(ctx context.Context, task *domain.Task) {
	if uc.provider != nil {
		analysis, err := uc.provider.AnalyzeTask(ctx, task.Title, task.Description)
		if err == nil {
			if analysis.Description != "" {
				task.Description = analysis.Description
			}
			task.AcceptanceCriteria = analysis.AcceptanceCriteria
			task.Subtasks = analysis.Subtasks
			task.Tags = analysis.Tags
			if analysis.StoryPoints > 0 {
				task.StoryPoints = analysis.StoryPoints
			}
			if tt := domain.TaskType(analysis.TaskType); tt.IsValid() {
				task.TaskType = tt
			}
			if task.StoryPoints == 0 {
				task.StoryPoints = defaultStoryPoints
			}
			return
		}
		uc.log.Warnf("task analysis unavailable, falling back to heuristics: %v", err)
	}

	if task.StoryPoints == 0 {
		task.StoryPoints = defaultStoryPoints
	}
	task.TaskType = importer.ClassifyType(task.Title, task.Description)
}

func (uc *TaskUseCase) refreshScores(task *domain.Task) {
	now := uc.now()
	task.RiskLevel = scoring.ClassifyRisk(task, now)
	task.PriorityScore = scoring.ScorePriority(task, task.RiskLevel, now)
}
