package secrets

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hasilakhwa/secure-locker-api/internal/common"
	"github.com/hasilakhwa/secure-locker-api/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests and for
// database-less development runs.
type InMemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*models.Secret
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[string]*models.Secret)}
}

func (r *InMemoryRepository) Create(ctx context.Context, secret *models.Secret) (*models.Secret, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *secret
	stored.ID = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetAllByUser(ctx context.Context, userID string) ([]models.Secret, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Secret
	for _, s := range r.byID {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id, userID, title, contentEncrypted string) (*models.Secret, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok || s.UserID != userID {
		return nil, common.ErrorNotFound
	}

	s.Title = title
	s.ContentEncrypted = contentEncrypted
	s.UpdatedAt = time.Now().UTC()

	out := *s
	return &out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok || s.UserID != userID {
		return common.ErrorNotFound
	}

	delete(r.byID, id)
	return nil
}
