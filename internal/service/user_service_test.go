package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blendhouse/internal/auth"
	"blendhouse/internal/cache"
	apperrors "blendhouse/internal/errors"
	"blendhouse/internal/model"
)

// nilCache exercises the fail-safe path of the cache client: a typed nil
// behaves like a cache that always misses.
var nilCache *cache.Client

func TestUserService_CreateUser_RoleFallback(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected model.Role
	}{
		{"explicit admin", "Admin", model.RoleAdmin},
		{"explicit user", "user", model.RoleUser},
		{"empty defaults to user", "", model.RoleUser},
		{"garbage defaults to user", "superuser", model.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

			svc := NewUserService(mockRepo, nilCache)
			user, err := svc.CreateUser(context.Background(), CreateUserInput{
				Email:    "new@example.com",
				Password: "pw123",
				Role:     tt.role,
				Active:   true,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, user.Role)
			assert.True(t, auth.VerifyPassword("pw123", user.PasswordHash, user.PasswordSalt))
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateUser_StrictRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(2)).
		Return(&model.User{ID: 2, Email: "bob@example.com", Role: model.RoleUser, Active: true}, nil)

	svc := NewUserService(mockRepo, nilCache)

	bad := "superuser"
	_, err := svc.UpdateUser(context.Background(), 2, UpdateUserInput{Role: &bad})
	assert.ErrorIs(t, err, apperrors.ErrUnknownRole)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_AppliesFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	existing := hashedUser(2, "bob@example.com", "old-pw", model.RoleUser, true)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo, nilCache)

	role := "Admin"
	active := false
	name := "Bobby"
	password := "new-pw"
	user, err := svc.UpdateUser(context.Background(), 2, UpdateUserInput{
		Role:        &role,
		Active:      &active,
		DisplayName: &name,
		Password:    &password,
	})

	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.False(t, user.Active)
	assert.Equal(t, "Bobby", user.DisplayName)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.True(t, auth.VerifyPassword("new-pw", user.PasswordHash, user.PasswordSalt))
	assert.False(t, auth.VerifyPassword("old-pw", user.PasswordHash, user.PasswordSalt))
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_CannotTouchRoleOrActive(t *testing.T) {
	mockRepo := new(MockUserRepository)
	existing := hashedUser(2, "bob@example.com", "pw456", model.RoleUser, true)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo, nilCache)

	name := "Bob II"
	user, err := svc.UpdateProfile(context.Background(), 2, UpdateProfileInput{DisplayName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Bob II", user.DisplayName)
	// Role and active are untouched by construction.
	assert.Equal(t, model.RoleUser, user.Role)
	assert.True(t, user.Active)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, nilCache)
	_, err := svc.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2}, nil)
	mockRepo.On("Delete", mock.Anything, uint(2)).Return(nil)

	svc := NewUserService(mockRepo, nilCache)
	assert.NoError(t, svc.DeleteUser(context.Background(), 2))

	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, nilCache)
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 99), apperrors.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}
