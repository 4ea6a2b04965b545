package biz

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

// ProjectRepo 项目仓库接口
type ProjectRepo interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Get(ctx context.Context, id int) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// Delete 级联删除项目名下的任务与日报（由存储层外键保证）
	Delete(ctx context.Context, id int) error
}

// ProjectUseCase 项目业务逻辑
type ProjectUseCase struct {
	repo ProjectRepo
	log  *log.Helper
}

// NewProjectUseCase 创建项目业务逻辑实例
func NewProjectUseCase(repo ProjectRepo, logger log.Logger) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, log: log.NewHelper(logger)}
}

func (uc *ProjectUseCase) Create(ctx context.Context, name, description string) (*domain.Project, error) {
	return uc.repo.Create(ctx, &domain.Project{Name: name, Description: description})
}

func (uc *ProjectUseCase) Get(ctx context.Context, id int) (*domain.Project, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *ProjectUseCase) List(ctx context.Context) ([]*domain.Project, error) {
	return uc.repo.List(ctx)
}

func (uc *ProjectUseCase) Delete(ctx context.Context, id int) error {
	if _, err := uc.repo.Get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
