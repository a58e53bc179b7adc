// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and resolving bearer tokens
// back to users.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hasilakhwa/secure-locker-api/internal/common"
	"github.com/hasilakhwa/secure-locker-api/internal/cryptox"
	"github.com/hasilakhwa/secure-locker-api/internal/server/auth"
	"github.com/hasilakhwa/secure-locker-api/internal/server/models"
	"github.com/hasilakhwa/secure-locker-api/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a bearer token
// - ResolveToken: map a presented token to an existing user
type UserService struct {
	repo   users.Repository
	hasher *cryptox.PasswordHasher
	tokens *auth.TokenIssuer
}

func NewUserService(repo users.Repository, hasher *cryptox.PasswordHasher, tokens *auth.TokenIssuer) *UserService {
	return &UserService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register hashes the password and persists a new user. A taken username
// yields common.ErrorAlreadyExists; the storage-level unique constraint is
// the authority, so two concurrent registrations cannot both succeed.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user := &models.User{Username: username, PasswordHash: hash}
	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

// Login verifies the credentials and returns a signed bearer token. Unknown
// username and wrong password are deliberately indistinguishable: both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// ResolveToken validates a bearer token and loads the user it names. Invalid
// or expired tokens and subjects that no longer exist all collapse to
// common.ErrorUnauthorized so callers cannot probe for account existence.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	username, err := s.tokens.Validate(token)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}
