package memory

import (
	"context"
	"sort"

	"github.com/studytrack/tracker/internal/core/domain"
)

// SessionRepository implements ports.SessionRepository.
type SessionRepository struct {
	s *Store
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	defer r.s.read(ctx)()

	session, ok := r.s.data.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

// ListByCreator returns the user's sessions ordered by start time.
func (r *SessionRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Session, error) {
	defer r.s.read(ctx)()

	var out []*domain.Session
	for _, session := range r.s.data.sessions {
		if session.CreatedBy == userID {
			out = append(out, &session)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	defer r.s.write(ctx)()

	stored := *session
	stored.ID = newID()
	r.s.data.sessions[stored.ID] = stored
	return &stored, nil
}

func (r *SessionRepository) Update(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.sessions[session.ID]; !ok {
		return nil, domain.ErrSessionNotFound
	}
	stored := *session
	r.s.data.sessions[stored.ID] = stored
	return &stored, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.sessions[id]; !ok {
		return false, nil
	}
	delete(r.s.data.sessions, id)
	return true, nil
}

type membershipKey struct {
	sessionID string
	userID    string
}

// MembershipRepository implements ports.MembershipRepository.
type MembershipRepository struct {
	s *Store
}

func (r *MembershipRepository) Add(ctx context.Context, m *domain.Membership) (*domain.Membership, error) {
	defer r.s.write(ctx)()

	key := membershipKey{sessionID: m.SessionID, userID: m.UserID}
	if _, ok := r.s.data.memberships[key]; ok {
		return nil, domain.ErrDuplicate
	}
	stored := *m
	r.s.data.memberships[key] = stored
	return &stored, nil
}

func (r *MembershipRepository) Remove(ctx context.Context, sessionID, userID string) (bool, error) {
	defer r.s.write(ctx)()

	key := membershipKey{sessionID: sessionID, userID: userID}
	if _, ok := r.s.data.memberships[key]; !ok {
		return false, nil
	}
	delete(r.s.data.memberships, key)
	return true, nil
}

func (r *MembershipRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Membership, error) {
	return r.list(ctx, func(m domain.Membership) bool { return m.SessionID == sessionID }), nil
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error) {
	return r.list(ctx, func(m domain.Membership) bool { return m.UserID == userID }), nil
}

// list returns matching memberships ordered by join time.
func (r *MembershipRepository) list(ctx context.Context, match func(domain.Membership) bool) []*domain.Membership {
	defer r.s.read(ctx)()

	var out []*domain.Membership
	for _, m := range r.s.data.memberships {
		if match(m) {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out
}
