package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// ParseRole parses a role string strictly. Anything outside the two known
// roles is an error; callers that want a lenient default must opt in via
// ParseRoleOrDefault.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// ParseRoleOrDefault parses a role string, falling back to RoleUser when the
// input is empty or unrecognized. Used only by the admin create-user path.
func ParseRoleOrDefault(s string) Role {
	role, err := ParseRole(s)
	if err != nil {
		return RoleUser
	}
	return role
}
