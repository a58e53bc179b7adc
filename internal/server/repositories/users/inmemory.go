package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hasilakhwa/secure-locker-api/internal/common"
	"github.com/hasilakhwa/secure-locker-api/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests and for
// database-less development runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byName map[string]*models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byName: make(map[string]*models.User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[user.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	r.byName[stored.Username] = &stored

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byName[username]
	if !ok {
		return nil, common.ErrorNotFound
	}

	out := *user
	return &out, nil
}
