package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by a service matches exactly one of these
// through errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidData  = errors.New("invalid data")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrRoleNotFound         = fmt.Errorf("role %w", ErrNotFound)
	ErrSessionNotFound      = fmt.Errorf("session %w", ErrNotFound)
	ErrTaskNotFound         = fmt.Errorf("task %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
	ErrMembershipNotFound   = fmt.Errorf("membership %w", ErrNotFound)

	// ErrDuplicate is returned by stores when a unique field is already taken.
	ErrDuplicate = fmt.Errorf("%w: duplicate value for unique field", ErrInvalidData)

	// ErrReferenced is returned when a delete would leave other records
	// pointing at a missing one.
	ErrReferenced = fmt.Errorf("%w: record is still referenced", ErrInvalidData)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// ValidationError carries every constraint an input violated.
type ValidationError struct {
	Reasons []string
}

func NewValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

func (e *ValidationError) Error() string {
	return "invalid data: " + strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidData
}

// Unauthorized wraps ErrUnauthorized with a reason.
func Unauthorized(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, reason)
}

// StillReferenced reports that entity cannot be removed while referrers
// still point at it.
func StillReferenced(entity, referrers string) error {
	return fmt.Errorf("%s still referenced by %s: %w", entity, referrers, ErrReferenced)
}

// Kind names the taxonomy bucket of err, for logs and metric labels.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidData):
		return "invalid_data"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "internal"
	}
}
