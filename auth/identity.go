package auth

import (
	"context"
	"errors"
	"strings"
)

// ErrUserNotFound signals that the token's subject has no directory record.
var ErrUserNotFound = errors.New("auth: user not found")

const bearerPrefix = "Bearer "

// Directory is the external user lookup the resolver consults on every call.
type Directory interface {
	FindByID(ctx context.Context, userID int64) (User, error)
}

// Resolver recovers a verified caller identity from a raw credential header.
type Resolver struct {
	codec     *Codec
	directory Directory
}

// NewResolver creates an identity resolver. The directory is injected so
// tests can substitute a fake.
func NewResolver(codec *Codec, directory Directory) *Resolver {
	return &Resolver{codec: codec, directory: directory}
}

// Resolve verifies the Authorization header value and returns the caller's
// identity. The directory record, not the token, supplies the current role
// and name: re-querying on every call picks up role changes without
// re-issuing tokens. Failures are ErrTokenInvalid, ErrTokenExpired or
// ErrUserNotFound.
func (r *Resolver) Resolve(ctx context.Context, authorization string) (Identity, error) {
	raw, ok := strings.CutPrefix(authorization, bearerPrefix)
	if !ok || raw == "" {
		return Identity{}, ErrTokenInvalid
	}

	claims, err := r.codec.Verify(raw)
	if err != nil {
		return Identity{}, err
	}

	user, err := r.directory.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Identity{}, ErrUserNotFound
		}
		return Identity{}, err
	}

	identity := Identity{
		ID:        user.ID,
		Name:      user.Name,
		Role:      user.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	return identity, nil
}
