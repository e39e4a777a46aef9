package repository

import (
	"context"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	// ListRanked returns all non-deleted projects ordered by total votes
	// descending. Rank is the caller's 1-based position, never stored.
	ListRanked(ctx context.Context) ([]entity.Project, error)
	ListAll(ctx context.Context, includeDeleted bool) ([]entity.Project, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Project, error)
	Create(ctx context.Context, project *entity.Project) error
	Update(ctx context.Context, project *entity.Project) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListRanked(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Order("likes + dislikes DESC, created_at ASC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListAll(ctx context.Context, includeDeleted bool) ([]entity.Project, error) {
	var projects []entity.Project
	q := r.db.WithContext(ctx)
	if includeDeleted {
		q = q.Unscoped()
	}
	err := q.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
