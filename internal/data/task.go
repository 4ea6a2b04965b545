package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/biz"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

type taskRepo struct {
	data *Data
	log  *log.Helper
}

func NewTaskRepo(data *Data, logger log.Logger) biz.TaskRepo {
	return &taskRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *taskRepo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	row := r.data.db.QueryRowContext(ctx,
		`INSERT INTO tasks (project_id, title, description, status, task_type, deadline,
		                    assignee, priority_score, risk_level, story_points,
		                    tags, acceptance_criteria, subtasks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		t.ProjectID, t.Title, t.Description, t.Status.String(), t.TaskType.String(),
		nullTime(t.Deadline), t.Assignee, t.PriorityScore, t.RiskLevel.String(),
		t.StoryPoints, encodeList(t.Tags), encodeList(t.AcceptanceCriteria), encodeList(t.Subtasks),
	)
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID int) ([]*domain.Task, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, project_id, title, description, status, task_type, deadline,
		        assignee, priority_score, risk_level, story_points,
		        tags, acceptance_criteria, subtasks, created_at, updated_at
		 FROM tasks
		 WHERE project_id = $1
		 ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var (
			t                      domain.Task
			status, taskType, risk string
			deadline               sql.NullTime
			tags, criteria, subs   string
		)
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &status, &taskType,
			&deadline, &t.Assignee, &t.PriorityScore, &risk, &t.StoryPoints,
			&tags, &criteria, &subs, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Status = domain.TaskStatus(status)
		t.TaskType = domain.TaskType(taskType)
		t.RiskLevel = domain.RiskLevel(risk)
		if deadline.Valid {
			d := deadline.Time
			t.Deadline = &d
		}
		t.Tags = decodeList(tags)
		t.AcceptanceCriteria = decodeList(criteria)
		t.Subtasks = decodeList(subs)
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

func (r *taskRepo) UpdateScores(ctx context.Context, t *domain.Task) error {
	_, err := r.data.db.ExecContext(ctx,
		`UPDATE tasks
		 SET priority_score = $1, risk_level = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		t.PriorityScore, t.RiskLevel.String(), t.ID,
	)
	return err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func encodeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(b)
}

func decodeList(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}
