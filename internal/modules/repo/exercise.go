package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
)

type ExerciseRepo interface {
	Create(ctx context.Context, e *model.Exercise) error
	Get(ctx context.Context, id uuid.UUID) (*model.Exercise, error)
	GetByName(ctx context.Context, name string) (*model.Exercise, error)
	// FirstOrCreateByName returns the oldest exercise with the template's
	// name and creator, creating it from the template when none exists yet.
	FirstOrCreateByName(ctx context.Context, template *model.Exercise) (*model.Exercise, error)
	List(ctx context.Context, category string, limit, offset int) ([]model.Exercise, error)
}

type exerciseRepo struct {
	db *gorm.DB
}

func NewExerciseRepo(db *gorm.DB) ExerciseRepo {
	return &exerciseRepo{db: db}
}

func (r *exerciseRepo) Create(ctx context.Context, e *model.Exercise) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *exerciseRepo) Get(ctx context.Context, id uuid.UUID) (*model.Exercise, error) {
	var e model.Exercise
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *exerciseRepo) GetByName(ctx context.Context, name string) (*model.Exercise, error) {
	var e model.Exercise
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("created_at ASC").First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *exerciseRepo) FirstOrCreateByName(ctx context.Context, template *model.Exercise) (*model.Exercise, error) {
	q := r.db.WithContext(ctx).Where("name = ?", template.Name)
	if template.CreatedBy != nil {
		q = q.Where("created_by = ?", *template.CreatedBy)
	} else {
		q = q.Where("created_by IS NULL")
	}
	var e model.Exercise
	err := q.Attrs(template).
		Order("created_at ASC").
		FirstOrCreate(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *exerciseRepo) List(ctx context.Context, category string, limit, offset int) ([]model.Exercise, error) {
	q := r.db.WithContext(ctx).Model(&model.Exercise{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var exercises []model.Exercise
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}
