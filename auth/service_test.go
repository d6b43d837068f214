package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestService(repo Repository) *Service {
	return NewService(repo, NewCodec("test-secret", time.Hour), "product-secret")
}

func TestService_SignupAndLogin(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	req := SignupRequest{
		Email:    "alice@example.com",
		Password: "supersafe",
		Name:     "Alice Buyer",
		Phone:    "555-0100",
	}

	ctx := context.Background()
	signedUp, err := svc.Signup(ctx, req)
	if err != nil {
		t.Fatalf("signup: unexpected error: %v", err)
	}
	if signedUp.User.Role != RoleBuyer {
		t.Fatalf("signup: expected default role %s got %s", RoleBuyer, signedUp.User.Role)
	}
	if signedUp.Token == "" {
		t.Fatal("signup: expected token, got empty string")
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login: unexpected error: %v", err)
	}
	if resp.User.ID != signedUp.User.ID {
		t.Fatalf("login: expected user id %d got %d", signedUp.User.ID, resp.User.ID)
	}
	if resp.Token == "" {
		t.Fatal("login: expected token, got empty string")
	}
}

func TestService_SignupValidation(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "alice@example.com",
		Password: "short",
		Name:     "Alice",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if _, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "",
		Password: "strongpassword",
		Name:     "",
	}); err == nil {
		t.Fatal("expected validation error for missing fields")
	}

	if _, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "alice@example.com",
		Password: "strongpassword",
		Name:     "Alice",
		Role:     Role("landlord"),
	}); err == nil {
		t.Fatal("expected validation error for unknown role")
	}
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeRepository())

	req := SignupRequest{
		Email:    "alice@example.com",
		Password: "strongpassword",
		Name:     "Alice",
	}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	if _, err := svc.Signup(context.Background(), req); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestService_LoginInvalidCredentials(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "unknown@example.com",
		Password: "irrelevant",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "alice@example.com",
		Password: "strongpassword",
		Name:     "Alice",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestService_PrivilegedSignupNeedsProductKey(t *testing.T) {
	svc := newTestService(newFakeRepository())
	ctx := context.Background()

	req := SignupRequest{
		Email:    "rita@example.com",
		Password: "strongpassword",
		Name:     "Rita Realtor",
		Role:     RoleRealtor,
	}

	if _, err := svc.Signup(ctx, req); !errors.Is(err, ErrInvalidProductKey) {
		t.Fatalf("expected ErrInvalidProductKey without key, got %v", err)
	}

	req.ProductKey = "forged-key"
	if _, err := svc.Signup(ctx, req); !errors.Is(err, ErrInvalidProductKey) {
		t.Fatalf("expected ErrInvalidProductKey with forged key, got %v", err)
	}

	key, err := svc.GenerateProductKey(req.Email, RoleRealtor)
	if err != nil {
		t.Fatalf("generate product key: %v", err)
	}
	req.ProductKey = key

	result, err := svc.Signup(ctx, req)
	if err != nil {
		t.Fatalf("signup with valid key: %v", err)
	}
	if result.User.Role != RoleRealtor {
		t.Fatalf("expected role %s got %s", RoleRealtor, result.User.Role)
	}
}

func TestService_ProductKeyNotIssuedForBuyer(t *testing.T) {
	svc := newTestService(newFakeRepository())
	if _, err := svc.GenerateProductKey("a@example.com", RoleBuyer); err == nil {
		t.Fatal("expected error for buyer product key")
	}
}

// fakeRepository is an in-memory Repository for unit tests.
type fakeRepository struct {
	usersByEmail map[string]User
	usersByID    map[int64]User
	nextID       int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		usersByEmail: make(map[string]User),
		usersByID:    make(map[int64]User),
		nextID:       1,
	}
}

func (f *fakeRepository) seed(user User) User {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	f.usersByEmail[strings.ToLower(user.Email)] = user
	f.usersByID[user.ID] = user
	return user
}

func (f *fakeRepository) setRole(userID int64, role Role) {
	user := f.usersByID[userID]
	user.Role = role
	f.usersByID[userID] = user
	f.usersByEmail[strings.ToLower(user.Email)] = user
}

func (f *fakeRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	if _, exists := f.usersByEmail[strings.ToLower(params.Email)]; exists {
		return User{}, ErrDuplicateEmail
	}

	role := params.Role
	if role == "" {
		role = RoleBuyer
	}

	return f.seed(User{
		Email:        params.Email,
		Name:         params.Name,
		Phone:        params.Phone,
		PasswordHash: params.PasswordHash,
		Role:         role,
	}), nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	user, ok := f.usersByEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, userID int64) (User, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}
