// Package secrets persists encrypted vault entries.
//
// Every lookup, update, and delete filters by (id, user_id) jointly: a secret
// ID alone never authorizes access, and a secret owned by another user is
// indistinguishable from a nonexistent one (common.ErrorNotFound either way).
package secrets

import (
	"context"

	"github.com/hasilakhwa/secure-locker-api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, secret *models.Secret) (*models.Secret, error)
	GetAllByUser(ctx context.Context, userID string) ([]models.Secret, error)
	Update(ctx context.Context, id, userID, title, contentEncrypted string) (*models.Secret, error)
	Delete(ctx context.Context, id, userID string) error
}
