package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

func TestTaskService_Create_Defaults(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	task, err := f.tasks.CreateTask(context.Background(), alice.ID, ports.NewTaskInput{
		Title:       "Flashcards",
		Description: "Make 20 cards",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.Priority != domain.PriorityMedium || task.Status != domain.TaskPending {
		t.Fatalf("unexpected defaults: %s/%s", task.Priority, task.Status)
	}
	if task.CreatedBy != alice.ID {
		t.Fatalf("creator not stamped: %q", task.CreatedBy)
	}
	if !task.CreatedAt.Equal(f.clock.Now()) || !task.UpdatedAt.Equal(f.clock.Now()) {
		t.Fatalf("timestamps not stamped from clock: %v %v", task.CreatedAt, task.UpdatedAt)
	}
}

func TestTaskService_Create_NormalizesEnums(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	task, err := f.tasks.CreateTask(context.Background(), alice.ID, ports.NewTaskInput{
		Title:       "Essay",
		Description: "Outline",
		Priority:    "HIGH",
		Status:      "In_Progress",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Priority != domain.PriorityHigh || task.Status != domain.TaskInProgress {
		t.Fatalf("enums not normalized: %s/%s", task.Priority, task.Status)
	}
}

func TestTaskService_Create_DueDateMustBeFuture(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	now := f.clock.Now()

	for _, due := range []time.Time{now, now.Add(-time.Second), now.Add(-72 * time.Hour)} {
		_, err := f.tasks.CreateTask(context.Background(), alice.ID, ports.NewTaskInput{
			Title:       "Late",
			Description: "already due",
			DueDate:     &due,
		})
		assertKind(t, err, domain.ErrInvalidData)
	}
}

func TestTaskService_Create_CollectsAllReasons(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.tasks.CreateTask(context.Background(), alice.ID, ports.NewTaskInput{
		Priority: "urgent",
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Reasons) != 3 {
		t.Fatalf("expected title, description and priority reasons, got %v", ve.Reasons)
	}
}

func TestTaskService_Create_RequiresActor(t *testing.T) {
	f := newFixture(t)

	_, err := f.tasks.CreateTask(context.Background(), "", ports.NewTaskInput{Title: "x", Description: "y"})
	assertKind(t, err, domain.ErrUnauthorized)
}

func TestTaskService_Create_UnknownSession(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.tasks.CreateTask(context.Background(), alice.ID, ports.NewTaskInput{
		Title:       "x",
		Description: "y",
		SessionID:   "missing",
	})
	assertKind(t, err, domain.ErrSessionNotFound)
}

func TestTaskService_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	task := f.task(t, alice.ID, "Alice's task")

	if _, err := f.tasks.GetTask(ctx, bob.ID, task.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("get by other user: expected unauthorized, got %v", err)
	}
	if _, err := f.tasks.UpdateTask(ctx, bob.ID, task.ID, ports.TaskPatch{Title: ptr("hijack")}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("update by other user: expected unauthorized, got %v", err)
	}
	if _, err := f.tasks.DeleteTask(ctx, bob.ID, task.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("delete by other user: expected unauthorized, got %v", err)
	}

	got, err := f.tasks.GetTask(ctx, alice.ID, task.ID)
	if err != nil || got.Title != "Alice's task" {
		t.Fatalf("owner get: %v %+v", err, got)
	}
	if _, err := f.tasks.UpdateTask(ctx, alice.ID, task.ID, ports.TaskPatch{Status: ptr("completed")}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	ok, err := f.tasks.DeleteTask(ctx, alice.ID, task.ID)
	if err != nil || !ok {
		t.Fatalf("owner delete: %v %v", ok, err)
	}
}

func TestTaskService_GetMissing(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.tasks.GetTask(context.Background(), alice.ID, "999")
	assertKind(t, err, domain.ErrTaskNotFound)
}

func TestTaskService_NotFoundPrecedesUnauthorized(t *testing.T) {
	f := newFixture(t)

	_, err := f.tasks.DeleteTask(context.Background(), "nobody", "999")
	assertKind(t, err, domain.ErrTaskNotFound)
}

func TestTaskService_PartialUpdate(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	before := f.task(t, alice.ID, "Original")

	f.clock.Advance(time.Minute)
	after, err := f.tasks.UpdateTask(context.Background(), alice.ID, before.ID, ports.TaskPatch{Title: ptr("X")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if after.Title != "X" {
		t.Fatalf("title not applied: %q", after.Title)
	}
	if after.Description != before.Description || after.Priority != before.Priority || after.Status != before.Status {
		t.Fatalf("untouched fields changed: %+v", after)
	}
	if after.DueDate == nil || !after.DueDate.Equal(*before.DueDate) {
		t.Fatalf("due date changed: %v", after.DueDate)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) || after.CreatedBy != before.CreatedBy {
		t.Fatalf("server-owned fields changed: %+v", after)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("updated_at not advanced: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestTaskService_Update_AnyStatusAllowed(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	task := f.task(t, alice.ID, "Loop")

	for _, status := range []string{"completed", "pending", "cancelled", "in_progress"} {
		got, err := f.tasks.UpdateTask(context.Background(), alice.ID, task.ID, ports.TaskPatch{Status: ptr(status)})
		if err != nil {
			t.Fatalf("status %s: %v", status, err)
		}
		if string(got.Status) != status {
			t.Fatalf("expected %s, got %s", status, got.Status)
		}
	}
}

func TestTaskService_Update_PastDueDateAccepted(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	task := f.task(t, alice.ID, "Backdate")

	past := f.clock.Now().Add(-24 * time.Hour)
	got, err := f.tasks.UpdateTask(context.Background(), alice.ID, task.ID, ports.TaskPatch{DueDate: &past})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.DueDate.Equal(past) {
		t.Fatalf("due date not applied: %v", got.DueDate)
	}
}

func TestTaskService_Update_InvalidFieldLeavesRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	task := f.task(t, alice.ID, "Keep")

	_, err := f.tasks.UpdateTask(ctx, alice.ID, task.ID, ports.TaskPatch{Title: ptr("new"), Priority: ptr("critical")})
	assertKind(t, err, domain.ErrInvalidData)

	got, err := f.tasks.GetTask(ctx, alice.ID, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Keep" {
		t.Fatalf("rejected patch was partially applied: %q", got.Title)
	}
}

func TestTaskService_ListSessionTasks_OnlyOwned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	session, err := f.sessions.CreateSession(ctx, alice.ID, ports.NewSessionInput{
		Name:    "Group study",
		EndTime: f.clock.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	for _, owner := range []string{alice.ID, bob.ID, alice.ID} {
		if _, err := f.tasks.CreateTask(ctx, owner, ports.NewTaskInput{
			Title:       "t",
			Description: "d",
			SessionID:   session.ID,
		}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	got, err := f.tasks.ListSessionTasks(ctx, alice.ID, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks for alice, got %d", len(got))
	}

	if _, err := f.tasks.ListSessionTasks(ctx, alice.ID, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}
}
