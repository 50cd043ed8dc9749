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

const entityUser = "user"

// UserService owns user accounts. Username and email uniqueness is enforced
// by the store; a clash surfaces as domain.ErrDuplicate.
type UserService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	refs     UserReferrers
	hasher   ports.PasswordHasher
	tx       ports.Transactor
	validate *validation.Validator
	logger   zerolog.Logger
	now      func() time.Time
}

// UserReferrers are the stores whose records point at a user.
type UserReferrers struct {
	Sessions      ports.SessionRepository
	Memberships   ports.MembershipRepository
	Tasks         ports.TaskRepository
	Notifications ports.NotificationRepository
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	refs UserReferrers,
	hasher ports.PasswordHasher,
	tx ports.Transactor,
	validate *validation.Validator,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		roles:    roles,
		refs:     refs,
		hasher:   hasher,
		tx:       tx,
		validate: validate,
		logger:   logger.With().Str("entity", entityUser).Logger(),
		now:      time.Now,
	}
}

func (s *UserService) GetUser(ctx context.Context, id string) (_ *domain.User, err error) {
	log := s.logger.With().Str("user_id", id).Logger()
	defer func() { observe(log, entityUser, "get", err) }()

	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (_ *domain.User, err error) {
	defer func() { observe(s.logger, entityUser, "get_by_email", err) }()

	return s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// CreateUser validates in, hashes the password and persists the account.
func (s *UserService) CreateUser(ctx context.Context, in ports.NewUserInput) (_ *domain.User, err error) {
	log := s.logger.With().Str("username", in.Username).Logger()
	defer func() { observe(log, entityUser, "create", err) }()

	user, err := s.validate.NewUser(in)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	user.PasswordHash = hash
	user.CreatedAt = now
	user.UpdatedAt = now

	var created *domain.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if user.RoleID != "" {
			if _, err := s.roles.GetByID(ctx, user.RoleID); err != nil {
				return err
			}
		}
		var err error
		created, err = s.users.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", created.ID).Msg("user created")
	return created, nil
}

// UpdateUser merges the supplied fields. A new password is checked against
// the password policy and re-hashed.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch ports.UserPatch) (_ *domain.User, err error) {
	log := s.logger.With().Str("user_id", id).Logger()
	defer func() { observe(log, entityUser, "update", err) }()

	var updated *domain.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p, err := s.validate.UserPatch(patch)
		if err != nil {
			return err
		}
		if p.RoleID != nil && *p.RoleID != "" && *p.RoleID != user.RoleID {
			if _, err := s.roles.GetByID(ctx, *p.RoleID); err != nil {
				return err
			}
		}
		if p.Password != nil {
			hash, err := s.hasher.Hash(*p.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}

		applyUserPatch(user, p)
		user.UpdatedAt = s.now().UTC()

		updated, err = s.users.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Msg("user updated")
	return updated, nil
}

// DeleteUser removes the account and its session memberships. A user who
// still created sessions or tasks, or received notifications, is refused with
// domain.ErrReferenced.
func (s *UserService) DeleteUser(ctx context.Context, id string) (_ bool, err error) {
	log := s.logger.With().Str("user_id", id).Logger()
	defer func() { observe(log, entityUser, "delete", err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.ensureUnreferenced(ctx, id); err != nil {
			return err
		}
		members, err := s.refs.Memberships.ListByUser(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range members {
			if _, err := s.refs.Memberships.Remove(ctx, m.SessionID, id); err != nil {
				return err
			}
		}
		ok, err := s.users.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().Msg("user deleted")
	return true, nil
}

func (s *UserService) ensureUnreferenced(ctx context.Context, id string) error {
	sessions, err := s.refs.Sessions.ListByCreator(ctx, id)
	if err != nil {
		return err
	}
	if len(sessions) > 0 {
		return domain.StillReferenced(entityUser, "sessions")
	}
	tasks, err := s.refs.Tasks.ListByCreator(ctx, id)
	if err != nil {
		return err
	}
	if len(tasks) > 0 {
		return domain.StillReferenced(entityUser, "tasks")
	}
	notifications, err := s.refs.Notifications.ListByRecipient(ctx, id)
	if err != nil {
		return err
	}
	if len(notifications) > 0 {
		return domain.StillReferenced(entityUser, "notifications")
	}
	return nil
}

// applyUserPatch copies supplied profile fields. The password hash is set by
// the caller; ID and CreatedAt are never touched.
func applyUserPatch(u *domain.User, p ports.UserPatch) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.ProfileText != nil {
		u.ProfileText = *p.ProfileText
	}
	if p.RoleID != nil {
		u.RoleID = *p.RoleID
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}
