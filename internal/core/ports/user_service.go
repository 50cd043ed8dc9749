package ports

import (
	"context"

	"github.com/studytrack/tracker/internal/core/domain"
)

// NewUserInput carries registration data.
type NewUserInput struct {
	Username    string
	Email       string
	Password    string
	ProfileText string
	RoleID      string
}

// UserPatch holds the caller-updatable user fields. Nil means "leave as is".
type UserPatch struct {
	Username    *string
	Email       *string
	Password    *string
	ProfileText *string
	RoleID      *string
	IsActive    *bool
}

type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, in NewUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
