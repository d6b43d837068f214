package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials signals wrong email or password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrWeakPassword signals password doesn't meet requirements.
	ErrWeakPassword = errors.New("auth: password must be at least 8 characters")
	// ErrInvalidProductKey signals a missing or wrong key for a privileged role signup.
	ErrInvalidProductKey = errors.New("auth: invalid product key")
)

// Service handles authentication business logic.
type Service struct {
	repo             Repository
	codec            *Codec
	productKeySecret string
}

// NewService creates a new authentication service.
func NewService(repo Repository, codec *Codec, productKeySecret string) *Service {
	return &Service{
		repo:             repo,
		codec:            codec,
		productKeySecret: productKeySecret,
	}
}

// Signup creates a new user account and returns a signed token for it.
// Accounts default to the buyer role; realtor and admin signups must present
// a product key issued out of band for that email and role.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (LoginResult, error) {
	if len(req.Password) < 8 {
		return LoginResult{}, ErrWeakPassword
	}
	if req.Email == "" || req.Name == "" {
		return LoginResult{}, fmt.Errorf("auth: email and name are required")
	}

	role := req.Role
	if role == "" {
		role = RoleBuyer
	}
	if !ValidRole(role) {
		return LoginResult{}, fmt.Errorf("auth: invalid role %q", role)
	}
	if role != RoleBuyer {
		if err := s.checkProductKey(req.ProductKey, req.Email, role); err != nil {
			return LoginResult{}, err
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: string(passwordHash),
		Role:         role,
	})
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.codec.Sign(user.ID, user.Name)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: user}, nil
}

// Login authenticates a user and returns a signed token. Unknown email and
// wrong password collapse into the same error so callers can't probe for
// registered addresses.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.codec.Sign(user.ID, user.Name)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: user}, nil
}

// GenerateProductKey derives the signup key that authorizes creating an
// account with the given privileged role for the given email.
func (s *Service) GenerateProductKey(email string, role Role) (string, error) {
	if !ValidRole(role) || role == RoleBuyer {
		return "", fmt.Errorf("auth: product keys are only issued for privileged roles")
	}
	key, err := bcrypt.GenerateFromPassword(s.productKeyMaterial(email, role), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: generate product key: %w", err)
	}
	return string(key), nil
}

func (s *Service) checkProductKey(key, email string, role Role) error {
	if key == "" {
		return ErrInvalidProductKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(key), s.productKeyMaterial(email, role)); err != nil {
		return ErrInvalidProductKey
	}
	return nil
}

func (s *Service) productKeyMaterial(email string, role Role) []byte {
	return []byte(fmt.Sprintf("%s-%s-%s", email, role, s.productKeySecret))
}
