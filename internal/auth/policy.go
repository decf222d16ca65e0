package auth

import (
	"blendhouse/internal/errors"
	"blendhouse/internal/model"
)

// Tier is the fixed authorization requirement of an operation.
type Tier int

const (
	// TierPublic operations are open to anyone, including anonymous callers.
	TierPublic Tier = iota
	// TierSelfOrAdmin operations require the caller to own the target
	// resource or hold the admin role.
	TierSelfOrAdmin
	// TierAdminOnly operations require the admin role, owner or not.
	TierAdminOnly
)

// Identity is a verified caller identity extracted from a valid token.
// A nil *Identity means the caller is anonymous.
type Identity struct {
	UserID uint
	Email  string
	Role   model.Role
}

// Authorize decides whether a caller may perform an operation of the given
// tier against the resource owned by ownerID (ignored for TierPublic and
// TierAdminOnly). It keeps "not authenticated" and "authenticated but not
// allowed" apart: ErrUnauthenticated for the former, ErrForbidden for the
// latter. Callers must run this before any existence check so unauthorized
// requests cannot probe which resources exist.
func Authorize(caller *Identity, tier Tier, ownerID uint) error {
	switch tier {
	case TierPublic:
		return nil
	case TierSelfOrAdmin:
		if caller == nil {
			return errors.ErrUnauthenticated
		}
		if caller.Role == model.RoleAdmin || caller.UserID == ownerID {
			return nil
		}
		return errors.ErrForbidden
	case TierAdminOnly:
		if caller == nil {
			return errors.ErrUnauthenticated
		}
		if caller.Role != model.RoleAdmin {
			return errors.ErrForbidden
		}
		return nil
	default:
		return errors.ErrForbidden
	}
}
