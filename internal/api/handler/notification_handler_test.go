package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/tracker/internal/api/middleware"
	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

type stubNotificationService struct {
	listFn     func(ctx context.Context, actorID string, in ports.ListNotificationsInput) ([]*domain.Notification, error)
	markReadFn func(ctx context.Context, actorID, id string) (*domain.Notification, error)
}

func (s *stubNotificationService) GetNotification(context.Context, string, string) (*domain.Notification, error) {
	return nil, domain.ErrNotificationNotFound
}
func (s *stubNotificationService) ListNotifications(ctx context.Context, actorID string, in ports.ListNotificationsInput) ([]*domain.Notification, error) {
	return s.listFn(ctx, actorID, in)
}
func (s *stubNotificationService) CreateNotification(_ context.Context, _ string, in ports.NewNotificationInput) (*domain.Notification, error) {
	return &domain.Notification{ID: "n1", RecipientID: in.RecipientID}, nil
}
func (s *stubNotificationService) MarkAsRead(ctx context.Context, actorID, id string) (*domain.Notification, error) {
	return s.markReadFn(ctx, actorID, id)
}
func (s *stubNotificationService) DeleteNotification(context.Context, string, string) (bool, error) {
	return true, nil
}

func TestNotificationHandler_ListQuery(t *testing.T) {
	e := newTestEcho()
	var got ports.ListNotificationsInput
	handler := NewNotificationHandler(&stubNotificationService{
		listFn: func(_ context.Context, actorID string, in ports.ListNotificationsInput) ([]*domain.Notification, error) {
			if actorID != "u1" {
				t.Fatalf("unexpected actor %q", actorID)
			}
			got = in
			return []*domain.Notification{}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/notifications?limit=5&include_read=true", nil), rec)
	c.Set(middleware.ActorIDKey, "u1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Limit != 5 || !got.IncludeRead {
		t.Fatalf("unexpected list input: %+v", got)
	}
}

func TestNotificationHandler_ListRejectsBadLimit(t *testing.T) {
	for _, target := range []string{"/v1/notifications?limit=500", "/v1/notifications?limit=abc"} {
		e := newTestEcho()
		handler := NewNotificationHandler(&stubNotificationService{
			listFn: func(context.Context, string, ports.ListNotificationsInput) ([]*domain.Notification, error) {
				t.Fatalf("service must not be called for %s", target)
				return nil, nil
			},
		})

		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.Set(middleware.ActorIDKey, "u1")

		err := handler.List(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 HTTPError, got %v", target, err)
		}
	}
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	e := newTestEcho()
	handler := NewNotificationHandler(&stubNotificationService{
		markReadFn: func(_ context.Context, actorID, id string) (*domain.Notification, error) {
			if actorID != "u1" || id != "n1" {
				t.Fatalf("unexpected args: %s %s", actorID, id)
			}
			return &domain.Notification{ID: id, RecipientID: actorID, IsRead: true}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/notifications/n1/read", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("n1")
	c.Set(middleware.ActorIDKey, "u1")

	if err := handler.MarkRead(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
