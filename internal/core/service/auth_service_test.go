package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

func TestAuthService_Login_Success(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	token, user, err := f.auth.Login(context.Background(), " Alice@Example.com ", strongPassword)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != alice.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if sub, _ := claims.GetSubject(); sub != alice.ID {
		t.Fatalf("expected sub %q, got %q", alice.ID, sub)
	}
	if claims["username"] != "alice" {
		t.Fatalf("unexpected username claim: %v", claims["username"])
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || exp.Time.Before(time.Now()) {
		t.Fatalf("expected future expiry, got %v %v", exp, err)
	}
}

func TestAuthService_Login_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	disabled := f.user(t, "disabled")
	if _, err := f.users.UpdateUser(ctx, disabled.ID, ports.UserPatch{IsActive: ptr(false)}); err != nil {
		t.Fatalf("disable: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "ghost@example.com", strongPassword},
		{"wrong password", alice.Email, "Wr0ng!Pass"},
		{"inactive user", disabled.Email, strongPassword},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.auth.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
