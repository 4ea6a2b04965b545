package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/conf"
)

type Data struct {
	db *sql.DB
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, nil, fmt.Errorf("failed to init projects table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id SERIAL PRIMARY KEY,
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'todo',
			task_type TEXT NOT NULL DEFAULT 'feature',
			deadline TIMESTAMP,
			assignee TEXT NOT NULL DEFAULT '',
			priority_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			risk_level TEXT NOT NULL DEFAULT 'low',
			story_points INTEGER NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '',
			acceptance_criteria TEXT NOT NULL DEFAULT '',
			subtasks TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, nil, fmt.Errorf("failed to init tasks table: %w", err)
	}

	// 每个项目每天至多一份日报，由唯一约束兜底
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_reports (
			id SERIAL PRIMARY KEY,
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			summary_text TEXT NOT NULL DEFAULT '',
			priority_list_json TEXT NOT NULL DEFAULT '',
			risks_json TEXT NOT NULL DEFAULT '',
			blocked_tasks_json TEXT NOT NULL DEFAULT '',
			UNIQUE (project_id, date)
		)
	`); err != nil {
		return nil, nil, fmt.Errorf("failed to init daily_reports table: %w", err)
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}
