package service

import (
	"io"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/biz"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/importer"
)

// PMService 项目管理 HTTP 服务
type PMService struct {
	projects *biz.ProjectUseCase
	tasks    *biz.TaskUseCase
	reports  *biz.ReportUseCase
	log      *log.Helper
}

// NewPMService 创建 HTTP 服务实例
func NewPMService(projects *biz.ProjectUseCase, tasks *biz.TaskUseCase, reports *biz.ReportUseCase, logger log.Logger) *PMService {
	return &PMService{
		projects: projects,
		tasks:    tasks,
		reports:  reports,
		log:      log.NewHelper(logger),
	}
}

// ----- DTO -----

type CreateProjectReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectReply struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type CreateTaskReq struct {
	ProjectID   int    `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Assignee    string `json:"assignee"`
}

type TaskReply struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Status             string   `json:"status"`
	TaskType           string   `json:"task_type"`
	Deadline           string   `json:"deadline,omitempty"`
	Assignee           string   `json:"assignee,omitempty"`
	PriorityScore      float64  `json:"priority_score"`
	RiskLevel          string   `json:"risk_level"`
	StoryPoints        int      `json:"story_points"`
	Tags               []string `json:"tags"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
	Subtasks           []string `json:"subtasks"`
}

type ImportReply struct {
	Imported int         `json:"imported"`
	Tasks    []TaskReply `json:"tasks"`
}

// ----- Projects -----

func (s *PMService) CreateProject(ctx http.Context) error {
	var req CreateProjectReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if req.Name == "" {
		return errors.BadRequest("NAME_REQUIRED", "project name is required")
	}

	project, err := s.projects.Create(ctx, req.Name, req.Description)
	if err != nil {
		return err
	}
	return ctx.Result(201, projectReply(project))
}

func (s *PMService) ListProjects(ctx http.Context) error {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return err
	}
	out := make([]ProjectReply, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectReply(p))
	}
	return ctx.Result(200, out)
}

func (s *PMService) GetProject(ctx http.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return err
	}
	return ctx.Result(200, projectReply(project))
}

func (s *PMService) DeleteProject(ctx http.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	return ctx.Result(200, map[string]string{"message": "project deleted"})
}

// ----- Tasks -----

func (s *PMService) CreateTask(ctx http.Context) error {
	var req CreateTaskReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if req.Title == "" {
		return errors.BadRequest("TITLE_REQUIRED", "task title is required")
	}

	task, err := s.tasks.Create(ctx, req.ProjectID, biz.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Assignee:    req.Assignee,
	})
	if err != nil {
		return err
	}
	return ctx.Result(201, taskReply(task))
}

func (s *PMService) ListTasks(ctx http.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	tasks, err := s.tasks.List(ctx, id)
	if err != nil {
		return err
	}
	out := make([]TaskReply, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskReply(t))
	}
	return ctx.Result(200, out)
}

// ImportCSV 请求体是原始 CSV 文本
func (s *PMService) ImportCSV(ctx http.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	body := ctx.Request().Body
	defer body.Close()

	drafts, err := importer.FromCSV(io.LimitReader(body, 10<<20))
	if err != nil {
		return errors.BadRequest("INVALID_CSV", err.Error())
	}

	created, err := s.tasks.ImportDrafts(ctx, id, drafts)
	if err != nil {
		return err
	}
	return ctx.Result(200, importReply(created))
}

func (s *PMService) ImportBoard(ctx http.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var cards []importer.BoardCard
	if err := ctx.Bind(&cards); err != nil {
		return err
	}

	created, err := s.tasks.ImportDrafts(ctx, id, importer.FromBoard(cards))
	if err != nil {
		return err
	}
	return ctx.Result(200, importReply(created))
}

// ----- Reports -----

func (s *PMService) GenerateReport(ctx http.Context) error {
	id, err := pathID(ctx, "project_id")
	if err != nil {
		return err
	}
	report, err := s.reports.GenerateDailyReport(ctx, id)
	if err != nil {
		return err
	}
	view, err := s.reports.GetReportSummary(ctx, report.ID)
	if err != nil {
		return err
	}
	return ctx.Result(200, view)
}

func (s *PMService) LatestReport(ctx http.Context) error {
	id, err := pathID(ctx, "project_id")
	if err != nil {
		return err
	}
	view, err := s.reports.GetLatestReport(ctx, id)
	if err != nil {
		return err
	}
	return ctx.Result(200, view)
}

func (s *PMService) TimelineStatus(ctx http.Context) error {
	id, err := pathID(ctx, "project_id")
	if err != nil {
		return err
	}
	status, err := s.reports.TimelineStatus(ctx, id)
	if err != nil {
		return err
	}
	return ctx.Result(200, status)
}

func (s *PMService) StakeholderEmail(ctx http.Context) error {
	id, err := pathID(ctx, "project_id")
	if err != nil {
		return err
	}
	email, err := s.reports.GenerateStakeholderEmail(ctx, id)
	if err != nil {
		return err
	}
	return ctx.Result(200, email)
}

// ----- helpers -----

func pathID(ctx http.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Vars().Get(name))
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("INVALID_ID", "invalid "+name)
	}
	return id, nil
}

func projectReply(p *domain.Project) ProjectReply {
	return ProjectReply{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func taskReply(t *domain.Task) TaskReply {
	reply := TaskReply{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		Status:             t.Status.String(),
		TaskType:           t.TaskType.String(),
		Assignee:           t.Assignee,
		PriorityScore:      t.PriorityScore,
		RiskLevel:          t.RiskLevel.String(),
		StoryPoints:        t.StoryPoints,
		Tags:               emptyIfNil(t.Tags),
		AcceptanceCriteria: emptyIfNil(t.AcceptanceCriteria),
		Subtasks:           emptyIfNil(t.Subtasks),
	}
	if t.Deadline != nil {
		reply.Deadline = t.Deadline.Format(time.DateOnly)
	}
	return reply
}

func importReply(tasks []*domain.Task) ImportReply {
	out := ImportReply{Imported: len(tasks), Tasks: make([]TaskReply, 0, len(tasks))}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, taskReply(t))
	}
	return out
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
