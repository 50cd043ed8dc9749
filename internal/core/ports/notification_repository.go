package ports

import (
	"context"

	"github.com/studytrack/tracker/internal/core/domain"
)

// NotificationRepository persists notifications. ListByRecipient returns
// newest first.
type NotificationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, userID string) ([]*domain.Notification, error)
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NotificationPublisher pushes a notification to live subscribers after it
// has been committed.
type NotificationPublisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}
