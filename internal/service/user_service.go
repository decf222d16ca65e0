package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"blendhouse/internal/auth"
	"blendhouse/internal/cache"
	apperrors "blendhouse/internal/errors"
	"blendhouse/internal/model"
	"blendhouse/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// CreateUserInput carries the admin create-user payload. The role string is
// parsed with a fallback to User: this is the one entry point where an
// unknown role silently defaults instead of being rejected.
type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
	ImageURL    string
	Role        string
	Active      bool
}

// UpdateUserInput carries the admin partial-update payload. Nil means leave
// the field alone. Role, when present, is parsed strictly.
type UpdateUserInput struct {
	Email       *string
	Password    *string
	DisplayName *string
	ImageURL    *string
	Active      *bool
	Role        *string
}

// UpdateProfileInput carries the self-service profile update. Role and
// active are deliberately absent: an account cannot escalate or reactivate
// itself.
type UpdateProfileInput struct {
	Email       *string
	Password    *string
	DisplayName *string
	ImageURL    *string
}

// UserService exposes user management operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser retrieves a user by id with read-through caching.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// CreateUser is the admin create path. Password is required by the handler;
// the account comes out with exactly the role and active flag the admin set.
func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	digest, salt, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: digest,
		PasswordSalt: salt,
		DisplayName:  input.DisplayName,
		ImageURL:     input.ImageURL,
		Role:         model.ParseRoleOrDefault(input.Role),
		Active:       input.Active,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies an admin partial update to any account.
func (s *userService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if input.Role != nil {
		role, err := model.ParseRole(*input.Role)
		if err != nil {
			return nil, apperrors.ErrUnknownRole
		}
		user.Role = role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if err := s.applyProfile(user, input.Email, input.Password, input.DisplayName, input.ImageURL); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// UpdateProfile applies a self-service update. It reuses the admin plumbing
// minus role and active.
func (s *userService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.applyProfile(user, input.Email, input.Password, input.DisplayName, input.ImageURL); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

func (s *userService) applyProfile(user *model.User, email, password, displayName, imageURL *string) error {
	if email != nil && *email != "" {
		user.Email = *email
	}
	if displayName != nil && *displayName != "" {
		user.DisplayName = *displayName
	}
	if imageURL != nil && *imageURL != "" {
		user.ImageURL = *imageURL
	}
	if password != nil && *password != "" {
		digest, salt, err := auth.HashPassword(*password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = digest
		user.PasswordSalt = salt
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
