package ports

import (
	"context"
	"time"

	"github.com/studytrack/tracker/internal/core/domain"
)

// NewTaskInput carries the caller-supplied task fields. Creator and
// timestamps are not part of it: the service stamps them.
type NewTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string
	Status      string
	SessionID   string
	DocumentRef string
}

// TaskPatch lists the task fields an owner may change.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
	SessionID   *string
	DocumentRef *string
}

type TaskService interface {
	GetTask(ctx context.Context, actorID, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, actorID string) ([]*domain.Task, error)
	ListSessionTasks(ctx context.Context, actorID, sessionID string) ([]*domain.Task, error)
	CreateTask(ctx context.Context, actorID string, in NewTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, actorID, id string, patch TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, actorID, id string) (bool, error)
}
