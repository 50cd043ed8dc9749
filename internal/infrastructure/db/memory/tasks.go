package memory

import (
	"context"
	"sort"

	"github.com/studytrack/tracker/internal/core/domain"
)

// TaskRepository implements ports.TaskRepository.
type TaskRepository struct {
	s *Store
}

func cloneTask(t domain.Task) *domain.Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return &t
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	defer r.s.read(ctx)()

	t, ok := r.s.data.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *TaskRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Task, error) {
	return r.list(ctx, func(t domain.Task) bool { return t.CreatedBy == userID }), nil
}

func (r *TaskRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Task, error) {
	return r.list(ctx, func(t domain.Task) bool { return t.SessionID == sessionID }), nil
}

// list returns matching tasks ordered by creation time.
func (r *TaskRepository) list(ctx context.Context, match func(domain.Task) bool) []*domain.Task {
	defer r.s.read(ctx)()

	var out []*domain.Task
	for _, t := range r.s.data.tasks {
		if match(t) {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	defer r.s.write(ctx)()

	stored := *cloneTask(*task)
	stored.ID = newID()
	r.s.data.tasks[stored.ID] = stored
	return cloneTask(stored), nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.tasks[task.ID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	stored := *cloneTask(*task)
	r.s.data.tasks[stored.ID] = stored
	return cloneTask(stored), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.tasks[id]; !ok {
		return false, nil
	}
	delete(r.s.data.tasks, id)
	return true, nil
}
