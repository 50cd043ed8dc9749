package ports

import (
	"context"

	"github.com/studytrack/tracker/internal/core/domain"
)

type NewNotificationInput struct {
	Title       string
	Message     string
	RecipientID string
	Type        string
	IsRead      bool
}

// ListNotificationsInput filters the recipient's notifications. Limit <= 0
// selects the default page size.
type ListNotificationsInput struct {
	Limit       int
	IncludeRead bool
}

type NotificationService interface {
	GetNotification(ctx context.Context, actorID, id string) (*domain.Notification, error)
	ListNotifications(ctx context.Context, actorID string, in ListNotificationsInput) ([]*domain.Notification, error)
	CreateNotification(ctx context.Context, actorID string, in NewNotificationInput) (*domain.Notification, error)
	MarkAsRead(ctx context.Context, actorID, id string) (*domain.Notification, error)
	DeleteNotification(ctx context.Context, actorID, id string) (bool, error)
}
