package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
	"github.com/studytrack/tracker/internal/core/validation"
	"github.com/studytrack/tracker/internal/infrastructure/db/memory"
	"github.com/studytrack/tracker/internal/infrastructure/security"
)

const strongPassword = "Str0ng!Pass"

// clock is a settable time source shared by every service of a fixture.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type stubPublisher struct {
	mu        sync.Mutex
	published []*domain.Notification
	err       error
}

func (p *stubPublisher) Publish(_ context.Context, n *domain.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n)
	return nil
}

type fixture struct {
	store     *memory.Store
	clock     *clock
	publisher *stubPublisher

	users         *UserService
	sessions      *SessionService
	tasks         *TaskService
	roles         *RoleService
	notifications *NotificationService
	auth          *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	clk := &clock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	pub := &stubPublisher{}
	v := validation.New()
	log := zerolog.Nop()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	f := &fixture{
		store:         store,
		clock:         clk,
		publisher:     pub,
		users:         NewUserService(store.Users(), store.Roles(), UserReferrers{
			Sessions:      store.Sessions(),
			Memberships:   store.Memberships(),
			Tasks:         store.Tasks(),
			Notifications: store.Notifications(),
		}, hasher, store, v, log),
		sessions:      NewSessionService(store.Sessions(), store.Memberships(), store.Tasks(), store.Users(), store, v, log),
		tasks:         NewTaskService(store.Tasks(), store.Sessions(), store.Users(), store, v, log),
		roles:         NewRoleService(store.Roles(), store.Users(), nil, store, v, log),
		notifications: NewNotificationService(store.Notifications(), store.Users(), pub, store, v, log),
		auth:          NewAuthService(store.Users(), hasher, "test-secret", time.Hour, log),
	}
	f.users.now = clk.Now
	f.sessions.now = clk.Now
	f.tasks.now = clk.Now
	f.roles.now = clk.Now
	f.notifications.now = clk.Now
	return f
}

func (f *fixture) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), ports.NewUserInput{
		Username: name,
		Email:    name + "@example.com",
		Password: strongPassword,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func (f *fixture) task(t *testing.T, owner string, title string) *domain.Task {
	t.Helper()
	due := f.clock.Now().Add(48 * time.Hour)
	task, err := f.tasks.CreateTask(context.Background(), owner, ports.NewTaskInput{
		Title:       title,
		Description: "read chapter 4",
		DueDate:     &due,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func ptr[T any](v T) *T { return &v }

func assertKind(t *testing.T, err error, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}
