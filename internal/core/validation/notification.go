package validation

import (
	"strings"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

type notificationSchema struct {
	Title       string `json:"title" validate:"min=1,max=200"`
	Message     string `json:"message" validate:"required"`
	RecipientID string `json:"user_id" validate:"required"`
	Type        string `json:"notification_type" validate:"oneof=info warning error"`
}

func (v *Validator) NewNotification(in ports.NewNotificationInput) (*domain.Notification, error) {
	s := notificationSchema{
		Title:       strings.TrimSpace(in.Title),
		Message:     strings.TrimSpace(in.Message),
		RecipientID: strings.TrimSpace(in.RecipientID),
		Type:        normalizeEnum(in.Type),
	}
	if s.Type == "" {
		s.Type = string(domain.NotificationInfo)
	}

	var r reasons
	v.structRules(s, &r)
	if err := r.err(); err != nil {
		return nil, err
	}

	return &domain.Notification{
		Title:       s.Title,
		Message:     s.Message,
		RecipientID: s.RecipientID,
		Type:        domain.NotificationType(s.Type),
		IsRead:      in.IsRead,
	}, nil
}
