package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/tracker/internal/core/domain"
)

func TestNotifier_Channel(t *testing.T) {
	assert.Equal(t, "notifications:42", NewNotifier(nil, "").Channel("42"))
	assert.Equal(t, "tracker:n:42", NewNotifier(nil, "tracker:n:").Channel("42"))
}

func TestNotifier_PublishUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	err := NewNotifier(client, "").Publish(context.Background(), &domain.Notification{ID: "1", RecipientID: "42"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish notification")
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect redis 127.0.0.1:1")
}
