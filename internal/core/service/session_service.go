package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
	"github.com/studytrack/tracker/internal/core/validation"
)

const (
	entitySession = "session"

	// ownerMemberRole is the role-in-session given to a session's creator.
	ownerMemberRole = "owner"
)

// SessionService owns study sessions and their memberships. Sessions carry no
// ownership gate: any actor may read or change them.
type SessionService struct {
	sessions    ports.SessionRepository
	memberships ports.MembershipRepository
	tasks       ports.TaskRepository
	users       ports.UserRepository
	tx          ports.Transactor
	validate    *validation.Validator
	logger      zerolog.Logger
	now         func() time.Time
}

func NewSessionService(
	sessions ports.SessionRepository,
	memberships ports.MembershipRepository,
	tasks ports.TaskRepository,
	users ports.UserRepository,
	tx ports.Transactor,
	validate *validation.Validator,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessions:    sessions,
		memberships: memberships,
		tasks:       tasks,
		users:       users,
		tx:          tx,
		validate:    validate,
		logger:      logger.With().Str("entity", entitySession).Logger(),
		now:         time.Now,
	}
}

func (s *SessionService) GetSession(ctx context.Context, id string) (_ *domain.Session, err error) {
	log := s.logger.With().Str("session_id", id).Logger()
	defer func() { observe(log, entitySession, "get", err) }()

	return s.sessions.GetByID(ctx, id)
}

func (s *SessionService) ListSessionsByCreator(ctx context.Context, userID string) (_ []*domain.Session, err error) {
	log := s.logger.With().Str("user_id", userID).Logger()
	defer func() { observe(log, entitySession, "list", err) }()

	return s.sessions.ListByCreator(ctx, userID)
}

// CreateSession validates in and persists a session created by actorID. The
// creator joins the session as its owner in the same unit of work.
func (s *SessionService) CreateSession(ctx context.Context, actorID string, in ports.NewSessionInput) (_ *domain.Session, err error) {
	log := s.logger.With().Str("actor_id", actorID).Logger()
	defer func() { observe(log, entitySession, "create", err) }()

	now := s.now().UTC()
	session, err := s.validate.NewSession(in, now)
	if err != nil {
		return nil, err
	}
	session.CreatedBy = actorID
	session.CreatedAt = now
	session.UpdatedAt = now

	var created *domain.Session
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, actorID); err != nil {
			return err
		}
		var err error
		created, err = s.sessions.Create(ctx, session)
		if err != nil {
			return err
		}
		_, err = s.memberships.Add(ctx, &domain.Membership{
			UserID:    actorID,
			SessionID: created.ID,
			Role:      ownerMemberRole,
			JoinedAt:  now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("session_id", created.ID).Msg("session created")
	return created, nil
}

// UpdateSession merges the supplied fields. Start/end ordering is checked only
// when both are part of the patch.
func (s *SessionService) UpdateSession(ctx context.Context, id string, patch ports.SessionPatch) (_ *domain.Session, err error) {
	log := s.logger.With().Str("session_id", id).Logger()
	defer func() { observe(log, entitySession, "update", err) }()

	var updated *domain.Session
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		session, err := s.sessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p, err := s.validate.SessionPatch(patch)
		if err != nil {
			return err
		}

		applySessionPatch(session, p)
		session.UpdatedAt = s.now().UTC()

		updated, err = s.sessions.Update(ctx, session)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Msg("session updated")
	return updated, nil
}

// DeleteSession removes the session and its memberships. A session that
// still has tasks is refused with domain.ErrReferenced.
func (s *SessionService) DeleteSession(ctx context.Context, id string) (_ bool, err error) {
	log := s.logger.With().Str("session_id", id).Logger()
	defer func() { observe(log, entitySession, "delete", err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.sessions.GetByID(ctx, id); err != nil {
			return err
		}
		tasks, err := s.tasks.ListBySession(ctx, id)
		if err != nil {
			return err
		}
		if len(tasks) > 0 {
			return domain.StillReferenced(entitySession, "tasks")
		}
		members, err := s.memberships.ListBySession(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range members {
			if _, err := s.memberships.Remove(ctx, id, m.UserID); err != nil {
				return err
			}
		}
		ok, err := s.sessions.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrSessionNotFound
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().Msg("session deleted")
	return true, nil
}

// AddMember joins userID to sessionID. An empty role becomes
// domain.DefaultMemberRole.
func (s *SessionService) AddMember(ctx context.Context, sessionID, userID, role string) (_ *domain.Membership, err error) {
	log := s.logger.With().Str("session_id", sessionID).Str("user_id", userID).Logger()
	defer func() { observe(log, entitySession, "add_member", err) }()

	role = strings.TrimSpace(role)
	if role == "" {
		role = domain.DefaultMemberRole
	}

	var added *domain.Membership
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
			return err
		}
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			return err
		}
		var err error
		added, err = s.memberships.Add(ctx, &domain.Membership{
			UserID:    userID,
			SessionID: sessionID,
			Role:      role,
			JoinedAt:  s.now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("role", role).Msg("member added")
	return added, nil
}

func (s *SessionService) RemoveMember(ctx context.Context, sessionID, userID string) (_ bool, err error) {
	log := s.logger.With().Str("session_id", sessionID).Str("user_id", userID).Logger()
	defer func() { observe(log, entitySession, "remove_member", err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.memberships.Remove(ctx, sessionID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrMembershipNotFound
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().Msg("member removed")
	return true, nil
}

func (s *SessionService) ListMembers(ctx context.Context, sessionID string) (_ []*domain.Membership, err error) {
	log := s.logger.With().Str("session_id", sessionID).Logger()
	defer func() { observe(log, entitySession, "list_members", err) }()

	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.memberships.ListBySession(ctx, sessionID)
}

func (s *SessionService) ListMemberships(ctx context.Context, userID string) (_ []*domain.Membership, err error) {
	log := s.logger.With().Str("user_id", userID).Logger()
	defer func() { observe(log, entitySession, "list_memberships", err) }()

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.memberships.ListByUser(ctx, userID)
}

func applySessionPatch(s *domain.Session, p ports.SessionPatch) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.StartTime != nil {
		s.StartTime = p.StartTime.UTC()
	}
	if p.EndTime != nil {
		s.EndTime = p.EndTime.UTC()
	}
	if p.Status != nil {
		s.Status = domain.SessionStatus(*p.Status)
	}
}
