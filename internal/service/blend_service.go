package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"blendhouse/internal/cache"
	apperrors "blendhouse/internal/errors"
	"blendhouse/internal/model"
	"blendhouse/internal/repository"
)

const (
	blendCacheTTL    = 5 * time.Minute
	catalogCacheKey  = "blends:all"
	blendCachePrefix = "blend:"
)

// BlendInput carries the create/update payload for a catalog entry.
type BlendInput struct {
	Name     string
	Type     string
	Price    decimal.Decimal
	Stock    int
	ImageURL string
}

// BlendService exposes catalog operations.
type BlendService interface {
	GetBlend(ctx context.Context, id uint) (*model.Blend, error)
	ListBlends(ctx context.Context) ([]model.Blend, error)
	CreateBlend(ctx context.Context, input BlendInput) (*model.Blend, error)
	UpdateBlend(ctx context.Context, id uint, input BlendInput) (*model.Blend, error)
	DeleteBlend(ctx context.Context, id uint) error
}

type blendService struct {
	repo  repository.BlendRepository
	cache *cache.Client
}

// NewBlendService creates a new catalog service.
func NewBlendService(repo repository.BlendRepository, cache *cache.Client) BlendService {
	return &blendService{repo: repo, cache: cache}
}

func (s *blendService) cacheKey(id uint) string {
	return fmt.Sprintf("%s%d", blendCachePrefix, id)
}

// GetBlend retrieves a single catalog entry with read-through caching.
func (s *blendService) GetBlend(ctx context.Context, id uint) (*model.Blend, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Blend
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	blend, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBlendNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(blend); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, blendCacheTTL)
	}
	return blend, nil
}

// ListBlends returns the whole catalog, newest first, cached as one entry.
// This is the hottest read in the system (anonymous mobile browsing).
func (s *blendService) ListBlends(ctx context.Context) ([]model.Blend, error) {
	if data, _ := s.cache.Get(ctx, catalogCacheKey); data != nil {
		var cached []model.Blend
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	blends, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(blends); err == nil {
		_ = s.cache.Set(ctx, catalogCacheKey, payload, blendCacheTTL)
	}
	return blends, nil
}

func (s *blendService) CreateBlend(ctx context.Context, input BlendInput) (*model.Blend, error) {
	blend := &model.Blend{
		Name:     input.Name,
		Type:     input.Type,
		Price:    input.Price,
		Stock:    input.Stock,
		ImageURL: input.ImageURL,
	}
	if err := s.repo.Create(ctx, blend); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return blend, nil
}

func (s *blendService) UpdateBlend(ctx context.Context, id uint, input BlendInput) (*model.Blend, error) {
	blend, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBlendNotFound
		}
		return nil, err
	}

	blend.Name = input.Name
	blend.Type = input.Type
	blend.Price = input.Price
	blend.Stock = input.Stock
	blend.ImageURL = input.ImageURL

	if err := s.repo.Update(ctx, blend); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return blend, nil
}

func (s *blendService) DeleteBlend(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBlendNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *blendService) invalidate(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	_ = s.cache.Delete(ctx, catalogCacheKey)
}
