package memory

import (
	"context"
	"sort"

	"github.com/studytrack/tracker/internal/core/domain"
)

// NotificationRepository implements ports.NotificationRepository.
type NotificationRepository struct {
	s *Store
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	defer r.s.read(ctx)()

	n, ok := r.s.data.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	return &n, nil
}

// ListByRecipient returns the user's notifications, newest first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, userID string) ([]*domain.Notification, error) {
	defer r.s.read(ctx)()

	var out []*domain.Notification
	for _, n := range r.s.data.notifications {
		if n.RecipientID == userID {
			out = append(out, &n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	defer r.s.write(ctx)()

	stored := *n
	stored.ID = newID()
	r.s.data.notifications[stored.ID] = stored
	return &stored, nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.notifications[n.ID]; !ok {
		return nil, domain.ErrNotificationNotFound
	}
	stored := *n
	r.s.data.notifications[stored.ID] = stored
	return &stored, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.notifications[id]; !ok {
		return false, nil
	}
	delete(r.s.data.notifications, id)
	return true, nil
}
