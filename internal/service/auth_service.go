package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blendhouse/internal/auth"
	apperrors "blendhouse/internal/errors"
	"blendhouse/internal/model"
	"blendhouse/internal/repository"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	users repository.UserRepository
	jwt   *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService) AuthService {
	return &authService{users: users, jwt: jwt}
}

// Register creates a new account with a freshly salted password hash. The
// very first account in the store becomes Admin, every later one is User.
func (s *authService) Register(ctx context.Context, email, password, displayName string) (*model.User, error) {
	// Fast-path duplicate check for a friendly error; the unique index in
	// the store is what actually closes the race.
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	digest, salt, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := model.RoleUser
	if count == 0 {
		role = model.RoleAdmin
	}

	user := &model.User{
		Email:        email,
		PasswordHash: digest,
		PasswordSalt: salt,
		DisplayName:  displayName,
		Role:         role,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown email, wrong
// password and deactivated account all fail the same way so callers cannot
// probe which it was. A deactivated account keeps any token issued before
// deactivation until it expires; only new issuance is blocked here.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !auth.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.Active {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}
