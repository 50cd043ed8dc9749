package validation

import (
	"strings"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

const (
	roleNameRule        = "min=1,max=100"
	roleDescriptionRule = "min=1,max=500"
)

type roleSchema struct {
	Name        string `json:"name" validate:"min=1,max=100"`
	Description string `json:"description" validate:"min=1,max=500"`
}

func (v *Validator) NewRole(in ports.NewRoleInput) (*domain.Role, error) {
	s := roleSchema{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	var r reasons
	v.structRules(s, &r)
	if err := r.err(); err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	perms := make([]string, len(in.Permissions))
	copy(perms, in.Permissions)

	return &domain.Role{
		Name:        s.Name,
		Description: s.Description,
		Permissions: perms,
		IsActive:    active,
	}, nil
}

func (v *Validator) RolePatch(p ports.RolePatch) (ports.RolePatch, error) {
	var r reasons
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		v.fieldRule("name", name, roleNameRule, &r)
		p.Name = &name
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		v.fieldRule("description", desc, roleDescriptionRule, &r)
		p.Description = &desc
	}
	if p.Permissions != nil {
		perms := make([]string, len(*p.Permissions))
		copy(perms, *p.Permissions)
		p.Permissions = &perms
	}
	return p, r.err()
}
