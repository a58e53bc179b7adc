// Package repomanager bundles the repositories behind a single
// storage-backend-agnostic interface.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/hasilakhwa/secure-locker-api/internal/server/repositories/secrets"
	"github.com/hasilakhwa/secure-locker-api/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Secrets() secrets.Repository
}
