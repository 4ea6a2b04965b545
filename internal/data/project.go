package data

import (
	"context"
	"database/sql"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/biz"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

type projectRepo struct {
	data *Data
	log  *log.Helper
}

func NewProjectRepo(data *Data, logger log.Logger) biz.ProjectRepo {
	return &projectRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	row := r.data.db.QueryRowContext(ctx,
		`INSERT INTO projects (name, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		p.Name, p.Description,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectRepo) Get(ctx context.Context, id int) (*domain.Project, error) {
	row := r.data.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM projects WHERE id = $1`, id)

	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("PROJECT_NOT_FOUND", "project not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

func (r *projectRepo) Delete(ctx context.Context, id int) error {
	// 任务与日报由外键级联删除
	_, err := r.data.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
