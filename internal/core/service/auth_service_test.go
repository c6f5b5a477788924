package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository (shared by the service tests in this package)
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	result := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result[id] = cloneUser(u)
		}
	}
	return result, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// mustSeedUser inserts an account with a bcrypt-hashed password.
func mustSeedUser(t *testing.T, repo *stubUserRepo, name, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := repo.Create(context.Background(), &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// stubLimiter implements LoginLimiter in memory.
type stubLimiter struct {
	failures map[string]int
	max      int
	checkErr error // returned by TooMany when set
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), max: max}
}

func (l *stubLimiter) TooMany(_ context.Context, email string) (bool, error) {
	if l.checkErr != nil {
		return false, l.checkErr
	}
	return l.failures[email] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	delete(l.failures, email)
	return nil
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, discardLogger)

	token, user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("registration must force role user, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pass123"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bobby", "bob@example.com", "other"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Register(context.Background(), "", "a@example.com", "pass"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seeded := mustSeedUser(t, repo, "Carol", "carol@example.com", "s3cret", domain.RoleManager)
	svc := NewAuthService(repo, nil, "secret", time.Hour, discardLogger)

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("logged-in identity %q does not match registered account %q", user.ID, seeded.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != seeded.ID {
		t.Fatalf("expected sub %q, got %v", seeded.ID, claims["sub"])
	}
	if _, hasRole := claims["role"]; hasRole {
		t.Fatal("token must not embed the role; it is resolved from the store")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	mustSeedUser(t, repo, "Dave", "dave@example.com", "goodpass", domain.RoleUser)
	svc := NewAuthService(repo, nil, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	mustSeedUser(t, repo, "Eve", "eve@example.com", "rightpass", domain.RoleUser)
	limiter := newStubLimiter(3)
	svc := NewAuthService(repo, limiter, "secret", time.Hour, discardLogger)

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(context.Background(), "eve@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Budget exhausted: even the right password is rejected now.
	if _, _, err := svc.Login(context.Background(), "eve@example.com", "rightpass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterFailureFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	mustSeedUser(t, repo, "Gina", "gina@example.com", "rightpass", domain.RoleUser)
	limiter := newStubLimiter(3)
	limiter.checkErr = errors.New("redis: connection refused")

	var buf bytes.Buffer
	svc := NewAuthService(repo, limiter, "secret", time.Hour, zerolog.New(&buf))

	// A broken limiter must not block logins, only turn up in the logs.
	if _, _, err := svc.Login(context.Background(), "gina@example.com", "rightpass"); err != nil {
		t.Fatalf("login must succeed when the limiter is down, got %v", err)
	}
	if !strings.Contains(buf.String(), "login limiter check failed") {
		t.Fatalf("limiter failure not logged: %s", buf.String())
	}
}

func TestAuthService_Login_ResetsLimiterOnSuccess(t *testing.T) {
	repo := newStubUserRepo()
	mustSeedUser(t, repo, "Frank", "frank@example.com", "rightpass", domain.RoleUser)
	limiter := newStubLimiter(3)
	svc := NewAuthService(repo, limiter, "secret", time.Hour, discardLogger)

	_, _, _ = svc.Login(context.Background(), "frank@example.com", "wrong")
	if _, _, err := svc.Login(context.Background(), "frank@example.com", "rightpass"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if limiter.failures["frank@example.com"] != 0 {
		t.Fatal("successful login must reset the failure count")
	}
}
