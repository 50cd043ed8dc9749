package ports

import (
	"context"

	"github.com/studytrack/tracker/internal/core/domain"
)

// TaskRepository persists tasks.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByCreator(ctx context.Context, userID string) ([]*domain.Task, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
}
