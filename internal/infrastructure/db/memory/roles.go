package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/studytrack/tracker/internal/core/domain"
)

// RoleRepository implements ports.RoleRepository. Names are unique
// case-insensitively.
type RoleRepository struct {
	s *Store
}

func cloneRole(r domain.Role) *domain.Role {
	r.Permissions = slices.Clone(r.Permissions)
	if r.Permissions == nil {
		r.Permissions = []string{}
	}
	return &r
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	defer r.s.read(ctx)()

	role, ok := r.s.data.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return cloneRole(role), nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	defer r.s.read(ctx)()

	for _, role := range r.s.data.roles {
		if fold(role.Name) == fold(name) {
			return cloneRole(role), nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

// ListActive returns active roles ordered by name.
func (r *RoleRepository) ListActive(ctx context.Context) ([]*domain.Role, error) {
	defer r.s.read(ctx)()

	out := make([]*domain.Role, 0, len(r.s.data.roles))
	for _, role := range r.s.data.roles {
		if role.IsActive {
			out = append(out, cloneRole(role))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	defer r.s.write(ctx)()

	stored := *cloneRole(*role)
	stored.ID = newID()
	if r.nameTaken(stored) {
		return nil, domain.ErrDuplicate
	}
	r.s.data.roles[stored.ID] = stored
	return cloneRole(stored), nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.roles[role.ID]; !ok {
		return nil, domain.ErrRoleNotFound
	}
	stored := *cloneRole(*role)
	if r.nameTaken(stored) {
		return nil, domain.ErrDuplicate
	}
	r.s.data.roles[stored.ID] = stored
	return cloneRole(stored), nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.roles[id]; !ok {
		return false, nil
	}
	delete(r.s.data.roles, id)
	return true, nil
}

func (r *RoleRepository) nameTaken(role domain.Role) bool {
	for id, other := range r.s.data.roles {
		if id != role.ID && fold(other.Name) == fold(role.Name) {
			return true
		}
	}
	return false
}
