package httpapi

import (
	"homeflow/auth"
	"homeflow/authz"
)

// Operation keys identify each externally invocable action. They are the
// handles the policy registry and the decision engine agree on.
const (
	OpSignup     = "auth.signup"
	OpLogin      = "auth.login"
	OpMe         = "auth.me"
	OpProductKey = "auth.product_key"

	OpListingSearch = "listing.search"
	OpListingGet    = "listing.get"
	OpListingCreate = "listing.create"
	OpListingUpdate = "listing.update"
	OpListingDelete = "listing.delete"
)

// RegisterPolicies declares the role requirement of every protected
// operation. Operations left unregistered (signup, login, search, get) are
// public: the engine performs no credential parsing for them at all.
func RegisterPolicies(registry *authz.Registry) {
	registry.Register(OpMe, auth.RoleBuyer, auth.RoleRealtor, auth.RoleAdmin)
	registry.Register(OpProductKey, auth.RoleAdmin)

	registry.Register(OpListingCreate, auth.RoleRealtor)
	registry.Register(OpListingUpdate, auth.RoleRealtor)
	registry.Register(OpListingDelete, auth.RoleRealtor)

	registry.Freeze()
}
