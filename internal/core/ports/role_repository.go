package ports

import (
	"context"

	"github.com/studytrack/tracker/internal/core/domain"
)

// RoleRepository persists roles. Names are unique.
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	ListActive(ctx context.Context) ([]*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Delete(ctx context.Context, id string) (bool, error)
}
