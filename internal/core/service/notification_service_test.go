package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

func (f *fixture) notify(t *testing.T, recipient, title string) *domain.Notification {
	t.Helper()
	n, err := f.notifications.CreateNotification(context.Background(), recipient, ports.NewNotificationInput{
		Title:       title,
		Message:     "m",
		RecipientID: recipient,
	})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}
	return n
}

func TestNotificationService_Create(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	n := f.notify(t, alice.ID, "Quiz tomorrow")

	if n.Type != domain.NotificationInfo || n.IsRead {
		t.Fatalf("unexpected defaults: %+v", n)
	}
	if !n.CreatedAt.Equal(f.clock.Now()) {
		t.Fatalf("created_at not stamped: %v", n.CreatedAt)
	}
	if len(f.publisher.published) != 1 || f.publisher.published[0].ID != n.ID {
		t.Fatalf("expected one publish, got %+v", f.publisher.published)
	}
}

func TestNotificationService_Create_EmptyTitle(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.notifications.CreateNotification(context.Background(), alice.ID, ports.NewNotificationInput{
		Title:       "",
		Message:     "m",
		RecipientID: alice.ID,
	})
	assertKind(t, err, domain.ErrInvalidData)
	if len(f.publisher.published) != 0 {
		t.Fatal("nothing should be published on failure")
	}
}

func TestNotificationService_Create_UnknownRecipient(t *testing.T) {
	f := newFixture(t)

	_, err := f.notifications.CreateNotification(context.Background(), "x", ports.NewNotificationInput{
		Title:       "t",
		Message:     "m",
		RecipientID: "ghost",
	})
	assertKind(t, err, domain.ErrUserNotFound)
}

func TestNotificationService_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	f.publisher.err = errors.New("redis down")

	n, err := f.notifications.CreateNotification(context.Background(), alice.ID, ports.NewNotificationInput{
		Title:       "t",
		Message:     "m",
		RecipientID: alice.ID,
	})
	if err != nil {
		t.Fatalf("expected success despite publish failure, got %v", err)
	}
	if _, err := f.notifications.GetNotification(context.Background(), alice.ID, n.ID); err != nil {
		t.Fatalf("notification should be stored: %v", err)
	}
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	other := f.user(t, "other")
	n := f.notify(t, owner.ID, "Reminder")

	if _, err := f.notifications.MarkAsRead(ctx, other.ID, n.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("other user: expected unauthorized, got %v", err)
	}

	got, err := f.notifications.MarkAsRead(ctx, owner.ID, n.ID)
	if err != nil || !got.IsRead {
		t.Fatalf("owner: %v %+v", err, got)
	}

	again, err := f.notifications.MarkAsRead(ctx, owner.ID, n.ID)
	if err != nil || !again.IsRead {
		t.Fatalf("second mark: %v %+v", err, again)
	}
	// create + first transition only
	if len(f.publisher.published) != 2 {
		t.Fatalf("expected 2 publishes, got %d", len(f.publisher.published))
	}

	if _, err := f.notifications.MarkAsRead(ctx, owner.ID, "missing"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNotificationService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	first := f.notify(t, alice.ID, "first")
	f.clock.Advance(time.Minute)
	f.notify(t, alice.ID, "second")
	f.clock.Advance(time.Minute)
	f.notify(t, alice.ID, "third")
	f.notify(t, bob.ID, "bob's")

	if _, err := f.notifications.MarkAsRead(ctx, alice.ID, first.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}

	unread, err := f.notifications.ListNotifications(ctx, alice.ID, ports.ListNotificationsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(unread) != 2 || unread[0].Title != "third" || unread[1].Title != "second" {
		t.Fatalf("expected unread newest first, got %+v", unread)
	}

	all, err := f.notifications.ListNotifications(ctx, alice.ID, ports.ListNotificationsInput{IncludeRead: true, Limit: 2})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 || all[0].Title != "third" {
		t.Fatalf("expected limit applied, got %+v", all)
	}
}

func TestNotificationService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	n := f.notify(t, alice.ID, "bye")

	if _, err := f.notifications.DeleteNotification(ctx, bob.ID, n.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if ok, err := f.notifications.DeleteNotification(ctx, alice.ID, n.ID); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if _, err := f.notifications.GetNotification(ctx, alice.ID, n.ID); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
