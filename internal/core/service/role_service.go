package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/tracker/internal/core/authz"
	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
	"github.com/studytrack/tracker/internal/core/validation"
)

const entityRole = "role"

// RoleService owns roles. System roles (admin, system, superuser) can be
// neither created, renamed into, updated nor deleted through it.
type RoleService struct {
	roles    ports.RoleRepository
	users    ports.UserRepository
	gate     authz.AdminGate
	tx       ports.Transactor
	validate *validation.Validator
	logger   zerolog.Logger
	now      func() time.Time
}

// NewRoleService wires a RoleService. A nil gate falls back to authz.AllowAll.
func NewRoleService(
	roles ports.RoleRepository,
	users ports.UserRepository,
	gate authz.AdminGate,
	tx ports.Transactor,
	validate *validation.Validator,
	logger zerolog.Logger,
) *RoleService {
	if gate == nil {
		gate = authz.AllowAll{}
	}
	return &RoleService{
		roles:    roles,
		users:    users,
		gate:     gate,
		tx:       tx,
		validate: validate,
		logger:   logger.With().Str("entity", entityRole).Logger(),
		now:      time.Now,
	}
}

func (s *RoleService) GetRole(ctx context.Context, id string) (_ *domain.Role, err error) {
	log := s.logger.With().Str("role_id", id).Logger()
	defer func() { observe(log, entityRole, "get", err) }()

	return s.roles.GetByID(ctx, id)
}

func (s *RoleService) ListActiveRoles(ctx context.Context) (_ []*domain.Role, err error) {
	defer func() { observe(s.logger, entityRole, "list", err) }()

	return s.roles.ListActive(ctx)
}

// CreateRole runs the admin gate, then the system-role guard, then field
// validation, so a reserved name is always reported as unauthorized.
func (s *RoleService) CreateRole(ctx context.Context, actorID string, in ports.NewRoleInput) (_ *domain.Role, err error) {
	log := s.logger.With().Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityRole, "create", err) }()

	if err := s.gate.VerifyAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := authz.GuardRoleName(in.Name); err != nil {
		log.Warn().Str("name", in.Name).Msg("attempt to create system role")
		return nil, err
	}
	role, err := s.validate.NewRole(in)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	role.CreatedAt = now
	role.UpdatedAt = now

	var created *domain.Role
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.roles.Create(ctx, role)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("role_id", created.ID).Str("name", created.Name).Msg("role created")
	return created, nil
}

// UpdateRole rejects changes to a stored system role and renames into the
// reserved set; both checks run independently.
func (s *RoleService) UpdateRole(ctx context.Context, actorID, id string, patch ports.RolePatch) (_ *domain.Role, err error) {
	log := s.logger.With().Str("role_id", id).Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityRole, "update", err) }()

	if err := s.gate.VerifyAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	var updated *domain.Role
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		role, err := s.roles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authz.GuardExistingRole(role); err != nil {
			return err
		}
		if patch.Name != nil {
			if err := authz.GuardRoleName(*patch.Name); err != nil {
				return err
			}
		}
		p, err := s.validate.RolePatch(patch)
		if err != nil {
			return err
		}

		applyRolePatch(role, p)
		role.UpdatedAt = s.now().UTC()

		updated, err = s.roles.Update(ctx, role)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Msg("role updated")
	return updated, nil
}

// DeleteRole removes a non-system role that no user holds, then re-reads it
// to confirm it is gone. A role that is still present yields
// domain.ErrInternal.
func (s *RoleService) DeleteRole(ctx context.Context, actorID, id string) (_ bool, err error) {
	log := s.logger.With().Str("role_id", id).Str("actor_id", actorID).Logger()
	defer func() { observe(log, entityRole, "delete", err) }()

	if err := s.gate.VerifyAdmin(ctx, actorID); err != nil {
		return false, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		role, err := s.roles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authz.GuardExistingRole(role); err != nil {
			return err
		}
		holders, err := s.users.CountByRole(ctx, id)
		if err != nil {
			return err
		}
		if holders > 0 {
			return domain.StillReferenced(entityRole, "users")
		}
		ok, err := s.roles.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrRoleNotFound
		}

		_, err = s.roles.GetByID(ctx, id)
		switch {
		case err == nil:
			return fmt.Errorf("%w: role %s still present after deletion", domain.ErrInternal, id)
		case errors.Is(err, domain.ErrNotFound):
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}

	log.Info().Msg("role deleted")
	return true, nil
}

func applyRolePatch(r *domain.Role, p ports.RolePatch) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Permissions != nil {
		r.Permissions = *p.Permissions
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
}
