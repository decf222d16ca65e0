package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"blendhouse/internal/config"
	"blendhouse/internal/errors"
	"blendhouse/internal/model"
)

// Claims is the signed claim set carried by a bearer token. The payload is
// readable by any holder; only the signature check makes it trustworthy.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the verified identity encoded in the claims. A claim set
// whose role does not parse strictly has no identity.
func (c *Claims) Identity() (*Identity, error) {
	role, err := model.ParseRole(c.Role)
	if err != nil {
		return nil, errors.ErrTokenInvalid
	}
	return &Identity{UserID: c.UserID, Email: c.Email, Role: role}, nil
}

// JWTService issues and verifies HS256 bearer tokens. It is a pure function
// of its inputs plus the process-wide secret and is safe for concurrent use.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
}

// NewJWTService builds a token service from the startup configuration. The
// secret is validated as non-empty by config.Load.
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.JWTTTL,
		leeway: cfg.JWTLeeway,
	}
}

// Issue produces a signed token encoding the user's id, email and role, valid
// for the configured TTL (7 days by default).
func (s *JWTService) Issue(userID uint, email string, role model.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks structure, signature and expiry of a token and returns its
// claims. Expiry is checked manually so the configured leeway is applied
// explicitly and nothing more: a token is accepted until exp + leeway.
// Any failure yields ErrTokenInvalid, never a partial claim set.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, errors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.ErrTokenInvalid
	}

	if claims.ExpiresAt == nil {
		return nil, errors.ErrTokenInvalid
	}
	if time.Now().After(claims.ExpiresAt.Time.Add(s.leeway)) {
		return nil, errors.ErrTokenInvalid
	}

	// Reject rather than default on an ambiguous role claim.
	if _, err := model.ParseRole(claims.Role); err != nil {
		return nil, errors.ErrTokenInvalid
	}

	return claims, nil
}
