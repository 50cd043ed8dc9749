package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/tracker/internal/api/middleware"
	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, actorID string, in ports.NewTaskInput) (*domain.Task, error)
	updateFn func(ctx context.Context, actorID, id string, patch ports.TaskPatch) (*domain.Task, error)
	getFn    func(ctx context.Context, actorID, id string) (*domain.Task, error)
}

func (s *stubTaskService) GetTask(ctx context.Context, actorID, id string) (*domain.Task, error) {
	return s.getFn(ctx, actorID, id)
}
func (s *stubTaskService) ListTasks(context.Context, string) ([]*domain.Task, error) {
	return []*domain.Task{}, nil
}
func (s *stubTaskService) ListSessionTasks(context.Context, string, string) ([]*domain.Task, error) {
	return []*domain.Task{}, nil
}
func (s *stubTaskService) CreateTask(ctx context.Context, actorID string, in ports.NewTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, actorID, in)
}
func (s *stubTaskService) UpdateTask(ctx context.Context, actorID, id string, patch ports.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, actorID, id, patch)
}
func (s *stubTaskService) DeleteTask(context.Context, string, string) (bool, error) {
	return true, nil
}

func TestTaskHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(_ context.Context, actorID string, in ports.NewTaskInput) (*domain.Task, error) {
			if actorID != "u1" {
				t.Fatalf("unexpected actor %q", actorID)
			}
			if in.Title != "Read" || in.DueDate == nil || !in.DueDate.Equal(time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Task{ID: "t1", Title: in.Title, CreatedBy: actorID}, nil
		},
	}
	handler := NewTaskHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/tasks",
		`{"title":"Read","description":"ch. 3","due_date":"2030-01-02T15:00:00Z"}`), rec)
	c.Set(middleware.ActorIDKey, "u1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var task domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if task.ID != "t1" || task.CreatedBy != "u1" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestTaskHandler_RequiresActor(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/tasks", `{}`), httptest.NewRecorder())

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestTaskHandler_UpdatePassesOnlySuppliedFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		updateFn: func(_ context.Context, _ string, id string, patch ports.TaskPatch) (*domain.Task, error) {
			if id != "t1" {
				t.Fatalf("unexpected id %q", id)
			}
			if patch.Status == nil || *patch.Status != "completed" {
				t.Fatalf("status not passed: %+v", patch)
			}
			if patch.Title != nil || patch.DueDate != nil {
				t.Fatalf("unsupplied fields must stay nil: %+v", patch)
			}
			return &domain.Task{ID: id, Status: domain.TaskCompleted}, nil
		},
	}
	handler := NewTaskHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/v1/tasks/t1", `{"status":"completed"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	c.Set(middleware.ActorIDKey, "u1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_GetPropagatesDomainErrors(t *testing.T) {
	cases := map[string]error{
		"not found":    domain.ErrTaskNotFound,
		"unauthorized": domain.Unauthorized("user not authorized to access this task"),
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho()
			handler := NewTaskHandler(&stubTaskService{
				getFn: func(context.Context, string, string) (*domain.Task, error) { return nil, want },
			})

			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/tasks/t9", nil), httptest.NewRecorder())
			c.SetParamNames("id")
			c.SetParamValues("t9")
			c.Set(middleware.ActorIDKey, "u1")

			if err := handler.Get(c); !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
		})
	}
}
