package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hasilakhwa/secure-locker-api/internal/common"
	"github.com/hasilakhwa/secure-locker-api/internal/cryptox"
	"github.com/hasilakhwa/secure-locker-api/internal/server/models"
	"github.com/hasilakhwa/secure-locker-api/internal/server/repositories/secrets"
)

// DecryptedSecret is the plaintext view of a secret handed back to the owner.
// It never outlives the request that produced it.
type DecryptedSecret struct {
	ID      string
	Title   string
	Content string
}

// SecretService orchestrates secret CRUD: content is encrypted before it
// reaches storage and decrypted only on the owner's read path. Ownership is
// enforced by the repository's (id, user_id) joint filters.
type SecretService struct {
	repo   secrets.Repository
	cipher *cryptox.Cipher
}

func NewSecretService(repo secrets.Repository, cipher *cryptox.Cipher) *SecretService {
	return &SecretService{repo: repo, cipher: cipher}
}

// Create encrypts content and persists a new secret for owner. The plaintext
// is echoed back only in this response.
func (s *SecretService) Create(ctx context.Context, owner *models.User, title, content string) (*DecryptedSecret, error) {
	ciphertext, err := s.cipher.Encrypt([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("error encrypting content: %v", err)
	}

	secret := &models.Secret{Title: title, ContentEncrypted: ciphertext, UserID: owner.ID}
	secret, err = s.repo.Create(ctx, secret)
	if err != nil {
		return nil, fmt.Errorf("error creating secret: %v", err)
	}

	return &DecryptedSecret{ID: secret.ID, Title: secret.Title, Content: content}, nil
}

// List returns all of owner's secrets with content decrypted. A record whose
// ciphertext fails authentication aborts the whole listing: silent partial
// data loss is worse than a failed request.
func (s *SecretService) List(ctx context.Context, owner *models.User) ([]DecryptedSecret, error) {
	stored, err := s.repo.GetAllByUser(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing secrets: %v", err)
	}

	result := make([]DecryptedSecret, 0, len(stored))
	for _, secret := range stored {
		plaintext, err := s.cipher.Decrypt(secret.ContentEncrypted)
		if err != nil {
			return nil, fmt.Errorf("secret %s: %w", secret.ID, common.ErrDecryptionFailed)
		}
		result = append(result, DecryptedSecret{
			ID:      secret.ID,
			Title:   secret.Title,
			Content: string(plaintext),
		})
	}

	return result, nil
}

// Update re-encrypts content and replaces title and content atomically.
// A secret that is missing or owned by someone else yields
// common.ErrorNotFound either way.
func (s *SecretService) Update(ctx context.Context, owner *models.User, id, title, content string) (*DecryptedSecret, error) {
	ciphertext, err := s.cipher.Encrypt([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("error encrypting content: %v", err)
	}

	secret, err := s.repo.Update(ctx, id, owner.ID, title, ciphertext)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating secret: %v", err)
	}

	return &DecryptedSecret{ID: secret.ID, Title: secret.Title, Content: content}, nil
}

// Delete removes the secret if owner holds it, else common.ErrorNotFound.
func (s *SecretService) Delete(ctx context.Context, owner *models.User, id string) error {
	if err := s.repo.Delete(ctx, id, owner.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting secret: %v", err)
	}
	return nil
}
