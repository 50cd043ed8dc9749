package ports

import (
	"context"

	"github.com/studytrack/tracker/internal/core/domain"
)

type NewRoleInput struct {
	Name        string
	Description string
	Permissions []string
	// IsActive defaults to true when nil.
	IsActive *bool
}

type RolePatch struct {
	Name        *string
	Description *string
	Permissions *[]string
	IsActive    *bool
}

type RoleService interface {
	GetRole(ctx context.Context, id string) (*domain.Role, error)
	ListActiveRoles(ctx context.Context) ([]*domain.Role, error)
	CreateRole(ctx context.Context, actorID string, in NewRoleInput) (*domain.Role, error)
	UpdateRole(ctx context.Context, actorID, id string, patch RolePatch) (*domain.Role, error)
	DeleteRole(ctx context.Context, actorID, id string) (bool, error)
}
