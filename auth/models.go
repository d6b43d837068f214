package auth

import "time"

// Role is a caller's permission class. Exactly one role per user record.
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleRealtor Role = "realtor"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether role is one of the closed enumeration.
func ValidRole(role Role) bool {
	switch role {
	case RoleBuyer, RoleRealtor, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the domain representation of a directory record. It mirrors the
// users table and carries no JSON annotations so it can be reused by
// different presentation layers.
type User struct {
	ID           int64
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the verified caller reconstructed per request from a token plus
// a directory lookup. It is never persisted.
type Identity struct {
	ID        int64
	Name      string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SignupRequest contains registration data supplied by callers. ProductKey is
// required only when requesting a role above buyer.
type SignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Role       Role   `json:"role"`
	ProductKey string `json:"product_key,omitempty"`
}

// LoginRequest contains user login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult bundles the token and domain user returned after a successful login.
type LoginResult struct {
	Token string
	User  User
}
