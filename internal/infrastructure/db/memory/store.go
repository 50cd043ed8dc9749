// Package memory is a process-local entity store. It enforces the same
// uniqueness rules as the Mongo store and supports units of work with
// rollback, which makes it usable for local runs and service tests.
package memory

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/studytrack/tracker/internal/core/domain"
)

// Store holds every entity table. Records are stored as private copies and
// replaced, never mutated, on update.
//
// txMu is held exclusively by a unit of work for its whole duration. Calls
// made outside a unit of work take it too, so they only ever observe
// committed state.
type Store struct {
	mu   sync.RWMutex
	txMu sync.RWMutex
	data tables
}

type txKey struct{}

type tables struct {
	users         map[string]domain.User
	roles         map[string]domain.Role
	sessions      map[string]domain.Session
	memberships   map[membershipKey]domain.Membership
	tasks         map[string]domain.Task
	notifications map[string]domain.Notification
}

func New() *Store {
	return &Store{data: tables{
		users:         make(map[string]domain.User),
		roles:         make(map[string]domain.Role),
		sessions:      make(map[string]domain.Session),
		memberships:   make(map[membershipKey]domain.Membership),
		tasks:         make(map[string]domain.Task),
		notifications: make(map[string]domain.Notification),
	}}
}

func (t tables) clone() tables {
	return tables{
		users:         maps.Clone(t.users),
		roles:         maps.Clone(t.roles),
		sessions:      maps.Clone(t.sessions),
		memberships:   maps.Clone(t.memberships),
		tasks:         maps.Clone(t.tasks),
		notifications: maps.Clone(t.notifications),
	}
}

// WithinTx serializes units of work and restores every table if fn fails.
// A call made from inside a unit of work joins it.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// read locks the tables for reading and returns the matching unlock.
func (s *Store) read(ctx context.Context) func() {
	if s.inTx(ctx) {
		s.mu.RLock()
		return s.mu.RUnlock
	}
	s.txMu.RLock()
	s.mu.RLock()
	return func() {
		s.mu.RUnlock()
		s.txMu.RUnlock()
	}
}

// write locks the tables for writing and returns the matching unlock.
func (s *Store) write(ctx context.Context) func() {
	if s.inTx(ctx) {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *Store) Users() *UserRepository                 { return &UserRepository{s: s} }
func (s *Store) Roles() *RoleRepository                 { return &RoleRepository{s: s} }
func (s *Store) Sessions() *SessionRepository           { return &SessionRepository{s: s} }
func (s *Store) Memberships() *MembershipRepository     { return &MembershipRepository{s: s} }
func (s *Store) Tasks() *TaskRepository                 { return &TaskRepository{s: s} }
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s: s} }

func newID() string {
	return uuid.NewString()
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
