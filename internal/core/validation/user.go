package validation

import (
	"strings"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

const (
	usernameRule    = "required,max=100"
	emailRule       = "required,email"
	profileTextRule = "max=1000"
)

type userSchema struct {
	Username    string `json:"username" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	ProfileText string `json:"profile_text" validate:"max=1000"`
}

// NewUser validates registration input. The returned user has no ID,
// password hash or timestamps; the password itself is checked but not kept.
func (v *Validator) NewUser(in ports.NewUserInput) (*domain.User, error) {
	s := userSchema{
		Username:    strings.TrimSpace(in.Username),
		Email:       normalizeEmail(in.Email),
		ProfileText: strings.TrimSpace(in.ProfileText),
	}

	var r reasons
	v.structRules(s, &r)
	r = append(r, PasswordViolations(in.Password)...)
	if err := r.err(); err != nil {
		return nil, err
	}

	return &domain.User{
		Username:    s.Username,
		Email:       s.Email,
		ProfileText: s.ProfileText,
		RoleID:      strings.TrimSpace(in.RoleID),
		IsActive:    true,
	}, nil
}

// UserPatch validates and normalizes the supplied fields of p.
func (v *Validator) UserPatch(p ports.UserPatch) (ports.UserPatch, error) {
	var r reasons
	if p.Username != nil {
		username := strings.TrimSpace(*p.Username)
		v.fieldRule("username", username, usernameRule, &r)
		p.Username = &username
	}
	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		v.fieldRule("email", email, emailRule, &r)
		p.Email = &email
	}
	if p.ProfileText != nil {
		text := strings.TrimSpace(*p.ProfileText)
		v.fieldRule("profile_text", text, profileTextRule, &r)
		p.ProfileText = &text
	}
	if p.RoleID != nil {
		roleID := strings.TrimSpace(*p.RoleID)
		p.RoleID = &roleID
	}
	if p.Password != nil {
		r = append(r, PasswordViolations(*p.Password)...)
	}
	return p, r.err()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
