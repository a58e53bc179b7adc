package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hasilakhwa/secure-locker-api/internal/common"
	"github.com/hasilakhwa/secure-locker-api/internal/cryptox"
	"github.com/hasilakhwa/secure-locker-api/internal/server/auth"
	"github.com/hasilakhwa/secure-locker-api/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-1"
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func newUserService(repo *fakeUsersRepo) *UserService {
	hasher := cryptox.NewPasswordHasher(bcrypt.MinCost, 2)
	tokens := auth.NewTokenIssuer([]byte("k"), time.Hour, nil)
	return NewUserService(repo, hasher, tokens)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := cryptox.NewPasswordHasher(bcrypt.MinCost, 1).Hash(password)
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newUserService(repo)

	user, err := s.Register(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	repo := &fakeUsersRepo{createErr: common.ErrorAlreadyExists}
	s := newUserService(repo)

	_, err := s.Register(context.Background(), "alice", "secret123")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := &fakeUsersRepo{
		getOut: &models.User{ID: "u-1", Username: "bob", PasswordHash: hashOf(t, "secret123")},
	}
	s := newUserService(repo)

	token, err := s.Login(context.Background(), "bob", "secret123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	// Unknown user and wrong password must be indistinguishable.
	tests := []struct {
		name string
		repo *fakeUsersRepo
	}{
		{"unknown user", &fakeUsersRepo{getErr: common.ErrorNotFound}},
		{"wrong password", &fakeUsersRepo{
			getOut: &models.User{ID: "u-1", Username: "bob", PasswordHash: hashOf(t, "other")},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newUserService(tc.repo)
			_, err := s.Login(context.Background(), "bob", "secret123")
			if !errors.Is(err, common.ErrorUnauthorized) {
				t.Fatalf("expected ErrorUnauthorized, got %v", err)
			}
		})
	}
}

func TestLogin_RepoError(t *testing.T) {
	repo := &fakeUsersRepo{getErr: errors.New("db down")}
	s := newUserService(repo)

	_, err := s.Login(context.Background(), "bob", "secret123")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("expected ErrorInternal, got %v", err)
	}
}

func TestResolveToken_Success(t *testing.T) {
	user := &models.User{ID: "u-1", Username: "carol", PasswordHash: hashOf(t, "pw")}
	repo := &fakeUsersRepo{getOut: user}
	s := newUserService(repo)

	tokens := auth.NewTokenIssuer([]byte("k"), time.Hour, nil)
	token, err := tokens.Issue("carol")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := s.ResolveToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ResolveToken error: %v", err)
	}
	if got.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestResolveToken_Failures(t *testing.T) {
	validToken := func(t *testing.T) string {
		t.Helper()
		tok, err := auth.NewTokenIssuer([]byte("k"), time.Hour, nil).Issue("gone")
		if err != nil {
			t.Fatalf("Issue error: %v", err)
		}
		return tok
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
		repo  *fakeUsersRepo
	}{
		{"garbage token", func(t *testing.T) string { return "garbage" }, &fakeUsersRepo{}},
		{"expired token", func(t *testing.T) string {
			tok, err := auth.NewTokenIssuer([]byte("k"), -time.Minute, nil).Issue("bob")
			if err != nil {
				t.Fatalf("Issue error: %v", err)
			}
			return tok
		}, &fakeUsersRepo{}},
		{"subject deleted", validToken, &fakeUsersRepo{getErr: common.ErrorNotFound}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newUserService(tc.repo)
			_, err := s.ResolveToken(context.Background(), tc.token(t))
			if !errors.Is(err, common.ErrorUnauthorized) {
				t.Fatalf("expected ErrorUnauthorized, got %v", err)
			}
		})
	}
}
