// Package authz holds the access predicates the domain services evaluate
// before touching an existing record. Predicates never mutate state.
package authz

import (
	"github.com/studytrack/tracker/internal/core/domain"
)

// RequireOwner allows access only when actorID is the record's owning user.
func RequireOwner(actorID, ownerID, entity string) error {
	if actorID == "" || actorID != ownerID {
		return domain.Unauthorized("user not authorized to access this " + entity)
	}
	return nil
}

// GuardRoleName rejects a create or rename whose target name is a system role.
func GuardRoleName(name string) error {
	if domain.IsSystemRoleName(name) {
		return domain.Unauthorized("cannot create or rename to a system role")
	}
	return nil
}

// GuardExistingRole rejects any mutation of a stored system role.
func GuardExistingRole(role *domain.Role) error {
	if role.IsSystem() {
		return domain.Unauthorized("cannot modify system roles")
	}
	return nil
}
