package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/tracker/internal/core/authz"
	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
	"github.com/studytrack/tracker/internal/core/validation"
)

const entityTask = "task"

// TaskService owns task rules. Every access to an existing task is gated by
// the ownership rule on CreatedBy.
type TaskService struct {
	tasks    ports.TaskRepository
	sessions ports.SessionRepository
	users    ports.UserRepository
	tx       ports.Transactor
	validate *validation.Validator
	logger   zerolog.Logger
	now      func() time.Time
}

func NewTaskService(
	tasks ports.TaskRepository,
	sessions ports.SessionRepository,
	users ports.UserRepository,
	tx ports.Transactor,
	validate *validation.Validator,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		tasks:    tasks,
		sessions: sessions,
		users:    users,
		tx:       tx,
		validate: validate,
		logger:   logger.With().Str("entity", entityTask).Logger(),
		now:      time.Now,
	}
}

// GetTask returns the task if it exists and actorID owns it.
func (s *TaskService) GetTask(ctx context.Context, actorID, id string) (_ *domain.Task, err error) {
	log := s.logger.With().Str("task_id", id).Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityTask, "get", err) }()

	return s.ownedTask(ctx, actorID, id)
}

func (s *TaskService) ownedTask(ctx context.Context, actorID, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actorID, task.CreatedBy, entityTask); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns every task created by actorID.
func (s *TaskService) ListTasks(ctx context.Context, actorID string) (_ []*domain.Task, err error) {
	log := s.logger.With().Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityTask, "list", err) }()

	return s.tasks.ListByCreator(ctx, actorID)
}

// ListSessionTasks returns the actor's tasks attached to sessionID.
func (s *TaskService) ListSessionTasks(ctx context.Context, actorID, sessionID string) (_ []*domain.Task, err error) {
	log := s.logger.With().Str("session_id", sessionID).Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityTask, "list_session", err) }()

	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	all, err := s.tasks.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	owned := make([]*domain.Task, 0, len(all))
	for _, t := range all {
		if t.CreatedBy == actorID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

// CreateTask validates in, stamps creator and timestamps, and persists the task.
func (s *TaskService) CreateTask(ctx context.Context, actorID string, in ports.NewTaskInput) (_ *domain.Task, err error) {
	log := s.logger.With().Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityTask, "create", err) }()

	if actorID == "" {
		return nil, domain.Unauthorized("user ID is required to create a task")
	}

	now := s.now().UTC()
	task, err := s.validate.NewTask(in, now)
	if err != nil {
		return nil, err
	}
	task.CreatedBy = actorID
	task.CreatedAt = now
	task.UpdatedAt = now

	var created *domain.Task
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, actorID); err != nil {
			return err
		}
		if task.SessionID != "" {
			if _, err := s.sessions.GetByID(ctx, task.SessionID); err != nil {
				return err
			}
		}
		var err error
		created, err = s.tasks.Create(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("task_id", created.ID).Msg("task created")
	return created, nil
}

// UpdateTask merges the supplied fields into an owned task. Status and
// priority may move to any enum member; the due date is not re-checked.
func (s *TaskService) UpdateTask(ctx context.Context, actorID, id string, patch ports.TaskPatch) (_ *domain.Task, err error) {
	log := s.logger.With().Str("task_id", id).Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityTask, "update", err) }()

	var updated *domain.Task
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.ownedTask(ctx, actorID, id)
		if err != nil {
			return err
		}
		p, err := s.validate.TaskPatch(patch)
		if err != nil {
			return err
		}
		if p.SessionID != nil && *p.SessionID != "" && *p.SessionID != task.SessionID {
			if _, err := s.sessions.GetByID(ctx, *p.SessionID); err != nil {
				return err
			}
		}

		applyTaskPatch(task, p)
		task.UpdatedAt = s.now().UTC()

		updated, err = s.tasks.Update(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Msg("task updated")
	return updated, nil
}

// DeleteTask removes an owned task.
func (s *TaskService) DeleteTask(ctx context.Context, actorID, id string) (_ bool, err error) {
	log := s.logger.With().Str("task_id", id).Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityTask, "delete", err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.ownedTask(ctx, actorID, id); err != nil {
			return err
		}
		ok, err := s.tasks.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().Msg("task deleted")
	return true, nil
}

// applyTaskPatch copies supplied fields only. ID, CreatedBy and CreatedAt
// are not reachable from a patch.
func applyTaskPatch(t *domain.Task, p ports.TaskPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.Priority != nil {
		t.Priority = domain.TaskPriority(*p.Priority)
	}
	if p.Status != nil {
		t.Status = domain.TaskStatus(*p.Status)
	}
	if p.SessionID != nil {
		t.SessionID = *p.SessionID
	}
	if p.DocumentRef != nil {
		t.DocumentRef = *p.DocumentRef
	}
}
