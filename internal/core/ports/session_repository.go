package ports

import (
	"context"

	"github.com/studytrack/tracker/internal/core/domain"
)

// SessionRepository persists study sessions.
type SessionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	ListByCreator(ctx context.Context, userID string) ([]*domain.Session, error)
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) (*domain.Session, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MembershipRepository persists (user, session) memberships. Add on an
// existing pair returns domain.ErrDuplicate.
type MembershipRepository interface {
	Add(ctx context.Context, m *domain.Membership) (*domain.Membership, error)
	Remove(ctx context.Context, sessionID, userID string) (bool, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error)
}
