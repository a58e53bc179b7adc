package repomanager

import (
	"context"
	"database/sql"

	"github.com/hasilakhwa/secure-locker-api/internal/server/repositories/secrets"
	"github.com/hasilakhwa/secure-locker-api/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves the same repositories from process memory.
// Used in tests and when no DATABASE_URL is configured.
type InMemoryRepositoryManager struct {
	users   users.Repository
	secrets secrets.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Secrets() secrets.Repository {
	return m.secrets
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users:   users.NewInMemoryRepository(),
		secrets: secrets.NewInMemoryRepository(),
	}
}
