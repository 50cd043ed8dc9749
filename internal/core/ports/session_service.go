package ports

import (
	"context"
	"time"

	"github.com/studytrack/tracker/internal/core/domain"
)

// NewSessionInput carries the fields of a new study session. A zero
// StartTime means "now"; an empty Status means pending.
type NewSessionInput struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

type SessionPatch struct {
	Name      *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
}

type SessionService interface {
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	ListSessionsByCreator(ctx context.Context, userID string) ([]*domain.Session, error)
	CreateSession(ctx context.Context, actorID string, in NewSessionInput) (*domain.Session, error)
	UpdateSession(ctx context.Context, id string, patch SessionPatch) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) (bool, error)

	AddMember(ctx context.Context, sessionID, userID, role string) (*domain.Membership, error)
	RemoveMember(ctx context.Context, sessionID, userID string) (bool, error)
	ListMembers(ctx context.Context, sessionID string) ([]*domain.Membership, error)
	ListMemberships(ctx context.Context, userID string) ([]*domain.Membership, error)
}
