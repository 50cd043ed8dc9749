package memory

import (
	"context"

	"github.com/studytrack/tracker/internal/core/domain"
)

// UserRepository implements ports.UserRepository. Username and email are
// unique case-insensitively.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	defer r.s.read(ctx)()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return fold(u.Email) == fold(email) })
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return fold(u.Username) == fold(username) })
}

func (r *UserRepository) CountByRole(ctx context.Context, roleID string) (int, error) {
	defer r.s.read(ctx)()

	n := 0
	for _, u := range r.s.data.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

func (r *UserRepository) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	defer r.s.read(ctx)()

	for _, u := range r.s.data.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	defer r.s.write(ctx)()

	u := *user
	u.ID = newID()
	if r.clashes(u) {
		return nil, domain.ErrDuplicate
	}
	r.s.data.users[u.ID] = u
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *user
	if r.clashes(u) {
		return nil, domain.ErrDuplicate
	}
	r.s.data.users[u.ID] = u
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.users[id]; !ok {
		return false, nil
	}
	delete(r.s.data.users, id)
	return true, nil
}

// clashes reports whether another user already holds u's username or email.
// Callers hold the write lock.
func (r *UserRepository) clashes(u domain.User) bool {
	for id, other := range r.s.data.users {
		if id == u.ID {
			continue
		}
		if fold(other.Username) == fold(u.Username) || fold(other.Email) == fold(u.Email) {
			return true
		}
	}
	return false
}
