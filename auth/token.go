package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid signals a missing, malformed or badly signed token.
	ErrTokenInvalid = errors.New("auth: invalid token")
	// ErrTokenExpired signals a well-formed, correctly signed token past its expiry.
	ErrTokenExpired = errors.New("auth: token expired")
)

// TokenClaims is the decoded token payload. The token is a capability proof
// only; apart from the subject id its fields are never treated as a source of
// truth for the caller's current role or name.
type TokenClaims struct {
	UserID int64  `json:"id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Codec signs and verifies identity tokens with an HMAC-SHA256 secret.
// It is a pure component: no I/O, safe for concurrent use.
type Codec struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewCodec creates a token codec. The secret must already have been validated
// as non-empty by the configuration layer.
func NewCodec(secret string, expiry time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Sign issues a token for the given subject.
func (c *Codec) Sign(userID int64, name string) (string, error) {
	issued := c.now()
	claims := TokenClaims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(c.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a raw token and returns its
// claims. Expiry is reported as ErrTokenExpired, every other defect as
// ErrTokenInvalid, so callers can tell the two apart without inspecting
// library internals.
func (c *Codec) Verify(raw string) (TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())

	switch {
	case err == nil && token.Valid:
		return *claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return TokenClaims{}, ErrTokenInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return TokenClaims{}, ErrTokenExpired
	default:
		return TokenClaims{}, ErrTokenInvalid
	}
}
