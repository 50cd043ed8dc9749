package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

func TestUserService_Create_HashesAndNormalizes(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.CreateUser(context.Background(), ports.NewUserInput{
		Username: "  alice ",
		Email:    " Alice@Example.COM ",
		Password: strongPassword,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Username != "alice" || user.Email != "alice@example.com" {
		t.Fatalf("not normalized: %q %q", user.Username, user.Email)
	}
	if !user.IsActive {
		t.Fatal("expected new user to be active")
	}
	if user.PasswordHash == strongPassword {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strongPassword)); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_PasswordRules(t *testing.T) {
	tests := []struct {
		name     string
		password string
		unmet    []string
	}{
		{"too short", "Ab1!", []string{"at least 8 characters"}},
		{"no uppercase", "lower1!pass", []string{"uppercase"}},
		{"no lowercase", "UPPER1!PASS", []string{"lowercase"}},
		{"no digit", "NoDigits!Here", []string{"number"}},
		{"no symbol", "NoSymbol1Here", []string{"special character"}},
		{"empty", "", []string{"at least 8 characters", "uppercase", "lowercase", "number", "special character"}},
		{"short and plain", "abc", []string{"at least 8 characters", "uppercase", "number", "special character"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.users.CreateUser(context.Background(), ports.NewUserInput{
				Username: "alice",
				Email:    "alice@example.com",
				Password: tt.password,
			})

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(ve.Reasons) != len(tt.unmet) {
				t.Fatalf("expected %d reasons, got %v", len(tt.unmet), ve.Reasons)
			}
			for i, want := range tt.unmet {
				if !strings.Contains(ve.Reasons[i], want) {
					t.Errorf("reason %d = %q, want it to mention %q", i, ve.Reasons[i], want)
				}
			}
		})
	}
}

func TestUserService_Create_InvalidEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.CreateUser(context.Background(), ports.NewUserInput{
		Username: "alice",
		Email:    "not-an-email",
		Password: strongPassword,
	})
	assertKind(t, err, domain.ErrInvalidData)
}

func TestUserService_Create_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.user(t, "alice")

	_, err := f.users.CreateUser(context.Background(), ports.NewUserInput{
		Username: "ALICE",
		Email:    "other@example.com",
		Password: strongPassword,
	})
	assertKind(t, err, domain.ErrDuplicate)
	assertKind(t, err, domain.ErrInvalidData)
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.CreateUser(context.Background(), ports.NewUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: strongPassword,
		RoleID:   "missing",
	})
	assertKind(t, err, domain.ErrRoleNotFound)
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	f.clock.Advance(time.Hour)
	got, err := f.users.UpdateUser(ctx, alice.ID, ports.UserPatch{
		ProfileText: ptr("Biology major"),
		Password:    ptr("N3w!Password"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ProfileText != "Biology major" || got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.PasswordHash == alice.PasswordHash {
		t.Fatal("expected password to be re-hashed")
	}
	if !got.UpdatedAt.After(alice.UpdatedAt) || !got.CreatedAt.Equal(alice.CreatedAt) {
		t.Fatalf("unexpected timestamps: %v %v", got.CreatedAt, got.UpdatedAt)
	}

	if _, err := f.users.UpdateUser(ctx, alice.ID, ports.UserPatch{Password: ptr("weak")}); !errors.Is(err, domain.ErrInvalidData) {
		t.Fatalf("expected weak password rejected, got %v", err)
	}
	if _, err := f.users.UpdateUser(ctx, "missing", ports.UserPatch{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestUserService_DeleteAndLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	byEmail, err := f.users.GetUserByEmail(ctx, "ALICE@example.com")
	if err != nil || byEmail.ID != alice.ID {
		t.Fatalf("lookup by email: %v %+v", err, byEmail)
	}

	ok, err := f.users.DeleteUser(ctx, alice.ID)
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if _, err := f.users.GetUser(ctx, alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found after delete, got %v", err)
	}
}

func TestUserService_DeleteRefusedWhileReferenced(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		link func(t *testing.T, f *fixture, u *domain.User)
	}{
		{
			name: "created session",
			link: func(t *testing.T, f *fixture, u *domain.User) {
				if _, err := f.sessions.CreateSession(ctx, u.ID, ports.NewSessionInput{
					Name:    "Solo",
					EndTime: f.clock.Now().Add(time.Hour),
				}); err != nil {
					t.Fatalf("create session: %v", err)
				}
			},
		},
		{
			name: "created task",
			link: func(t *testing.T, f *fixture, u *domain.User) {
				f.task(t, u.ID, "Read")
			},
		},
		{
			name: "received notification",
			link: func(t *testing.T, f *fixture, u *domain.User) {
				if _, err := f.notifications.CreateNotification(ctx, "system", ports.NewNotificationInput{
					Title:       "Reminder",
					Message:     "Session starts soon",
					RecipientID: u.ID,
				}); err != nil {
					t.Fatalf("create notification: %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			alice := f.user(t, "alice")
			tc.link(t, f, alice)

			_, err := f.users.DeleteUser(ctx, alice.ID)
			assertKind(t, err, domain.ErrInvalidData)
			assertKind(t, err, domain.ErrReferenced)

			if _, err := f.users.GetUser(ctx, alice.ID); err != nil {
				t.Fatalf("user should survive a refused delete: %v", err)
			}
		})
	}
}

func TestUserService_DeleteDropsMemberships(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	session, err := f.sessions.CreateSession(ctx, alice.ID, ports.NewSessionInput{
		Name:    "Group",
		EndTime: f.clock.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := f.sessions.AddMember(ctx, session.ID, bob.ID, ""); err != nil {
		t.Fatalf("add member: %v", err)
	}

	if ok, err := f.users.DeleteUser(ctx, bob.ID); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	members, err := f.sessions.ListMembers(ctx, session.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	for _, m := range members {
		if m.UserID == bob.ID {
			t.Fatalf("membership of deleted user survived: %+v", m)
		}
	}
	if len(members) != 1 {
		t.Fatalf("expected only the owner to remain, got %d members", len(members))
	}
}
