package repository

import (
	"context"

	"gorm.io/gorm"

	"blendhouse/internal/model"
)

// BlendRepository defines catalog persistence operations.
type BlendRepository interface {
	Create(ctx context.Context, blend *model.Blend) error
	Update(ctx context.Context, blend *model.Blend) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Blend, error)
	List(ctx context.Context) ([]model.Blend, error)
}

type blendRepository struct {
	db *gorm.DB
}

// NewBlendRepository builds a GORM-backed repository.
func NewBlendRepository(db *gorm.DB) BlendRepository {
	return &blendRepository{db: db}
}

func (r *blendRepository) Create(ctx context.Context, blend *model.Blend) error {
	return r.db.WithContext(ctx).Create(blend).Error
}

func (r *blendRepository) Update(ctx context.Context, blend *model.Blend) error {
	return r.db.WithContext(ctx).Save(blend).Error
}

func (r *blendRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Blend{}, id).Error
}

func (r *blendRepository) FindByID(ctx context.Context, id uint) (*model.Blend, error) {
	var blend model.Blend
	if err := r.db.WithContext(ctx).First(&blend, id).Error; err != nil {
		return nil, err
	}
	return &blend, nil
}

// List returns the whole catalog, newest first.
func (r *blendRepository) List(ctx context.Context) ([]model.Blend, error) {
	var blends []model.Blend
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&blends).Error; err != nil {
		return nil, err
	}
	return blends, nil
}
