package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/biz"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

type reportRepo struct {
	data *Data
	log  *log.Helper
}

func NewReportRepo(data *Data, logger log.Logger) biz.ReportRepo {
	return &reportRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// Upsert 依赖 (project_id, date) 的唯一约束做原子的条件写入：
// 冲突时原地覆盖内容字段，行标识保持不变。
func (r *reportRepo) Upsert(ctx context.Context, report *domain.DailyReport) (*domain.DailyReport, error) {
	priorityJSON, err := json.Marshal(report.PriorityList)
	if err != nil {
		return nil, fmt.Errorf("marshal priority list: %w", err)
	}
	risksJSON, err := json.Marshal(report.Risks)
	if err != nil {
		return nil, fmt.Errorf("marshal risks: %w", err)
	}
	blockedJSON, err := json.Marshal(report.BlockedTasks)
	if err != nil {
		return nil, fmt.Errorf("marshal blocked tasks: %w", err)
	}

	row := r.data.db.QueryRowContext(ctx,
		`INSERT INTO daily_reports (project_id, date, summary_text, priority_list_json, risks_json, blocked_tasks_json)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (project_id, date) DO UPDATE SET
		     summary_text = EXCLUDED.summary_text,
		     priority_list_json = EXCLUDED.priority_list_json,
		     risks_json = EXCLUDED.risks_json,
		     blocked_tasks_json = EXCLUDED.blocked_tasks_json
		 RETURNING id`,
		report.ProjectID, report.Date, report.SummaryText,
		string(priorityJSON), string(risksJSON), string(blockedJSON),
	)
	if err := row.Scan(&report.ID); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reportRepo) Get(ctx context.Context, id int) (*domain.DailyReport, error) {
	row := r.data.db.QueryRowContext(ctx,
		`SELECT id, project_id, date, summary_text, priority_list_json, risks_json, blocked_tasks_json
		 FROM daily_reports WHERE id = $1`, id)
	return scanReport(row)
}

func (r *reportRepo) LatestByProject(ctx context.Context, projectID int) (*domain.DailyReport, error) {
	row := r.data.db.QueryRowContext(ctx,
		`SELECT id, project_id, date, summary_text, priority_list_json, risks_json, blocked_tasks_json
		 FROM daily_reports
		 WHERE project_id = $1
		 ORDER BY date DESC
		 LIMIT 1`,
		projectID,
	)
	return scanReport(row)
}

func scanReport(row *sql.Row) (*domain.DailyReport, error) {
	var (
		report                               domain.DailyReport
		priorityJSON, risksJSON, blockedJSON string
	)
	err := row.Scan(&report.ID, &report.ProjectID, &report.Date, &report.SummaryText,
		&priorityJSON, &risksJSON, &blockedJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("REPORT_NOT_FOUND", "report not found")
		}
		return nil, err
	}

	if priorityJSON != "" {
		if err := json.Unmarshal([]byte(priorityJSON), &report.PriorityList); err != nil {
			return nil, fmt.Errorf("unmarshal priority list: %w", err)
		}
	}
	if risksJSON != "" {
		if err := json.Unmarshal([]byte(risksJSON), &report.Risks); err != nil {
			return nil, fmt.Errorf("unmarshal risks: %w", err)
		}
	}
	if blockedJSON != "" {
		if err := json.Unmarshal([]byte(blockedJSON), &report.BlockedTasks); err != nil {
			return nil, fmt.Errorf("unmarshal blocked tasks: %w", err)
		}
	}
	return &report, nil
}
