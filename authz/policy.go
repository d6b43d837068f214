package authz

import (
	"fmt"

	"homeflow/auth"
)

// Requirement associates a protected operation with the roles allowed to
// invoke it. An empty AllowedRoles set means the operation is public.
type Requirement struct {
	OperationKey string
	AllowedRoles []auth.Role
}

// Public reports whether the requirement imposes no role check.
func (r Requirement) Public() bool {
	return len(r.AllowedRoles) == 0
}

// Allows reports whether the given role satisfies the requirement.
func (r Requirement) Allows(role auth.Role) bool {
	for _, allowed := range r.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Registry maps operation keys to role requirements. It is populated once at
// startup from static route metadata, then frozen; after Freeze it is
// read-only and safe for unsynchronized concurrent reads.
type Registry struct {
	requirements map[string]Requirement
	frozen       bool
}

// NewRegistry creates an empty policy registry.
func NewRegistry() *Registry {
	return &Registry{requirements: make(map[string]Requirement)}
}

// Register declares the roles allowed to invoke an operation. Registering
// after Freeze or registering the same key twice is a wiring bug, so it
// panics rather than returning an error the startup path would ignore.
func (r *Registry) Register(operationKey string, roles ...auth.Role) {
	if r.frozen {
		panic(fmt.Sprintf("authz: register %q after freeze", operationKey))
	}
	if _, exists := r.requirements[operationKey]; exists {
		panic(fmt.Sprintf("authz: duplicate registration for %q", operationKey))
	}
	for _, role := range roles {
		if !auth.ValidRole(role) {
			panic(fmt.Sprintf("authz: unknown role %q for %q", role, operationKey))
		}
	}
	r.requirements[operationKey] = Requirement{
		OperationKey: operationKey,
		AllowedRoles: roles,
	}
}

// Freeze marks the registry read-only. Called once after route wiring.
func (r *Registry) Freeze() {
	r.frozen = true
}

// RequirementFor returns the requirement for an operation key. Unregistered
// operations default to a public requirement.
func (r *Registry) RequirementFor(operationKey string) Requirement {
	if req, ok := r.requirements[operationKey]; ok {
		return req
	}
	return Requirement{OperationKey: operationKey}
}
