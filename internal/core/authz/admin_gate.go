package authz

import (
	"context"
	"errors"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

// AdminGate decides whether an actor may manage roles at all. It runs before
// any other role rule.
type AdminGate interface {
	VerifyAdmin(ctx context.Context, actorID string) error
}

// AllowAll is the default gate: every actor passes. Deployments that need
// real role management control swap in RoleMembershipGate.
type AllowAll struct{}

func (AllowAll) VerifyAdmin(context.Context, string) error { return nil }

// RoleMembershipGate admits actors whose assigned role is a system role or
// grants domain.PermissionManageRoles.
type RoleMembershipGate struct {
	users ports.UserRepository
	roles ports.RoleRepository
}

func NewRoleMembershipGate(users ports.UserRepository, roles ports.RoleRepository) *RoleMembershipGate {
	return &RoleMembershipGate{users: users, roles: roles}
}

func (g *RoleMembershipGate) VerifyAdmin(ctx context.Context, actorID string) error {
	if actorID == "" {
		return domain.Unauthorized("actor required")
	}
	user, err := g.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Unauthorized("unknown actor")
		}
		return err
	}
	if !user.IsActive || user.RoleID == "" {
		return domain.Unauthorized("role management requires an admin role")
	}
	role, err := g.roles.GetByID(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Unauthorized("role management requires an admin role")
		}
		return err
	}
	if !role.IsActive {
		return domain.Unauthorized("actor role is inactive")
	}
	if role.IsSystem() || role.HasPermission(domain.PermissionManageRoles) {
		return nil
	}
	return domain.Unauthorized("role management requires an admin role")
}
