package domain

import (
	"strings"
	"time"
)

// PermissionManageRoles lets a non-system role pass the role admin gate.
const PermissionManageRoles = "roles:manage"

var systemRoleNames = map[string]struct{}{
	"admin":     {},
	"system":    {},
	"superuser": {},
}

// Role is a named set of permission strings.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsSystemRoleName reports whether name normalizes into the reserved set.
func IsSystemRoleName(name string) bool {
	_, ok := systemRoleNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// IsSystem reports whether r is a system role, regardless of IsActive.
func (r *Role) IsSystem() bool {
	return IsSystemRoleName(r.Name)
}

// HasPermission reports whether perm is granted by r.
func (r *Role) HasPermission(perm string) bool {
	for _, p := range r.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
