// Package users persists registered accounts.
package users

import (
	"context"

	"github.com/hasilakhwa/secure-locker-api/internal/server/models"
)

// Repository stores and looks up users. Create returns
// common.ErrorAlreadyExists when the username is taken; GetByUsername returns
// common.ErrorNotFound when no such user exists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
