package auth

import (
	"errors"
	"testing"
	"time"
)

func TestCodec_SignAndVerify(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	token, err := codec.Sign(42, "Alice Realtor")
	if err != nil {
		t.Fatalf("sign: unexpected error: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42 got %d", claims.UserID)
	}
	if claims.Name != "Alice Realtor" {
		t.Fatalf("expected name %q got %q", "Alice Realtor", claims.Name)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Fatal("expected exp > iat")
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	signer := NewCodec("secret-a", time.Hour)
	verifier := NewCodec("secret-b", time.Hour)

	token, err := signer.Sign(1, "Bob")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	codec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := codec.Sign(1, "Bob")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Same secret, valid signature, but exp is an hour in the past.
	verifier := NewCodec("test-secret", time.Hour)
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := codec.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("verify %q: expected ErrTokenInvalid, got %v", raw, err)
		}
	}
}
