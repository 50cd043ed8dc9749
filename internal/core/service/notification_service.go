package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/tracker/internal/core/authz"
	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
	"github.com/studytrack/tracker/internal/core/validation"
	"github.com/studytrack/tracker/internal/pkg/metrics"
)

const (
	entityNotification = "notification"

	defaultNotificationLimit = 50
)

// NotificationService owns notifications. Reads and mutations are gated by
// the ownership rule on RecipientID.
type NotificationService struct {
	notifications ports.NotificationRepository
	users         ports.UserRepository
	publisher     ports.NotificationPublisher
	tx            ports.Transactor
	validate      *validation.Validator
	logger        zerolog.Logger
	now           func() time.Time
}

// NewNotificationService wires a NotificationService. publisher may be nil,
// in which case nothing is pushed to live subscribers.
func NewNotificationService(
	notifications ports.NotificationRepository,
	users ports.UserRepository,
	publisher ports.NotificationPublisher,
	tx ports.Transactor,
	validate *validation.Validator,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		publisher:     publisher,
		tx:            tx,
		validate:      validate,
		logger:        logger.With().Str("entity", entityNotification).Logger(),
		now:           time.Now,
	}
}

func (s *NotificationService) GetNotification(ctx context.Context, actorID, id string) (_ *domain.Notification, err error) {
	log := s.logger.With().Str("notification_id", id).Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityNotification, "get", err) }()

	return s.ownedNotification(ctx, actorID, id)
}

func (s *NotificationService) ownedNotification(ctx context.Context, actorID, id string) (*domain.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actorID, n.RecipientID, entityNotification); err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotifications returns the actor's notifications, newest first. Read
// ones are skipped unless in.IncludeRead is set.
func (s *NotificationService) ListNotifications(ctx context.Context, actorID string, in ports.ListNotificationsInput) (_ []*domain.Notification, err error) {
	log := s.logger.With().Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityNotification, "list", err) }()

	limit := in.Limit
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	all, err := s.notifications.ListByRecipient(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Notification, 0, min(len(all), limit))
	for _, n := range all {
		if len(out) == limit {
			break
		}
		if n.IsRead && !in.IncludeRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// CreateNotification validates in and stores it for its recipient. The
// committed notification is then published; a publish failure is logged and
// does not fail the call.
func (s *NotificationService) CreateNotification(ctx context.Context, actorID string, in ports.NewNotificationInput) (_ *domain.Notification, err error) {
	log := s.logger.With().Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityNotification, "create", err) }()

	n, err := s.validate.NewNotification(in)
	if err != nil {
		return nil, err
	}
	n.CreatedAt = s.now().UTC()

	var created *domain.Notification
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, n.RecipientID); err != nil {
			return err
		}
		var err error
		created, err = s.notifications.Create(ctx, n)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("notification_id", created.ID).
		Str("recipient_id", created.RecipientID).
		Msg("notification created")
	s.publish(ctx, created)
	return created, nil
}

// MarkAsRead flips IsRead to true on an owned notification and publishes the
// change. Marking an already read notification is a no-op. There is no way
// back to unread.
func (s *NotificationService) MarkAsRead(ctx context.Context, actorID, id string) (_ *domain.Notification, err error) {
	log := s.logger.With().Str("notification_id", id).Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityNotification, "mark_read", err) }()

	var (
		updated *domain.Notification
		changed bool
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := s.ownedNotification(ctx, actorID, id)
		if err != nil {
			return err
		}
		if n.IsRead {
			updated = n
			return nil
		}
		n.IsRead = true
		updated, err = s.notifications.Update(ctx, n)
		changed = err == nil
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		log.Info().Msg("notification marked as read")
		s.publish(ctx, updated)
	}
	return updated, nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, actorID, id string) (_ bool, err error) {
	log := s.logger.With().Str("notification_id", id).Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityNotification, "delete", err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.ownedNotification(ctx, actorID, id); err != nil {
			return err
		}
		ok, err := s.notifications.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotificationNotFound
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().Msg("notification deleted")
	return true, nil
}

func (s *NotificationService) publish(ctx context.Context, n *domain.Notification) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		metrics.NotificationsPublishedTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Str("notification_id", n.ID).Msg("failed to publish notification")
		return
	}
	metrics.NotificationsPublishedTotal.WithLabelValues("ok").Inc()
}
