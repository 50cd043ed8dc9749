package ports

import (
	"context"

	"github.com/studytrack/tracker/internal/core/domain"
)

// UserRepository persists users. Lookups return domain.ErrUserNotFound when
// nothing matches; Create and Update return domain.ErrDuplicate when the
// username or email is already taken.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// CountByRole reports how many users reference roleID.
	CountByRole(ctx context.Context, roleID string) (int, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}
