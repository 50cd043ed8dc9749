package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/studytrack/tracker/internal/core/domain"
)

const defaultChannelPrefix = "notifications:"

// Notifier publishes committed notifications on a per-recipient channel.
// Channel format: <prefix><recipient_id>
type Notifier struct {
	client *redis.Client
	prefix string
}

// NewNotifier wraps client. An empty prefix selects "notifications:".
func NewNotifier(client *redis.Client, prefix string) *Notifier {
	if prefix == "" {
		prefix = defaultChannelPrefix
	}
	return &Notifier{client: client, prefix: prefix}
}

func (n *Notifier) Publish(ctx context.Context, notification *domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := n.client.Publish(ctx, n.Channel(notification.RecipientID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (n *Notifier) Channel(recipientID string) string {
	return n.prefix + recipientID
}
