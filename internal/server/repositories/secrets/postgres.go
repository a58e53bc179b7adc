package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hasilakhwa/secure-locker-api/internal/common"
	"github.com/hasilakhwa/secure-locker-api/internal/dbx"
	"github.com/hasilakhwa/secure-locker-api/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, secret *models.Secret) (*models.Secret, error) {

	query :=
		`INSERT INTO secrets (title, content_encrypted, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		secret.Title, secret.ContentEncrypted, secret.UserID).
		Scan(&secret.ID, &secret.CreatedAt, &secret.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return secret, nil
}

func (r *PostgresRepository) GetAllByUser(ctx context.Context, userID string) ([]models.Secret, error) {
	query :=
		`SELECT id, title, content_encrypted, user_id, created_at, updated_at FROM secrets
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var result []models.Secret
	for rows.Next() {
		var s models.Secret
		if err := rows.Scan(&s.ID, &s.Title, &s.ContentEncrypted, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}

// Update replaces title and content in one transaction and returns the
// updated record. Zero affected rows means missing or not owned.
func (r *PostgresRepository) Update(ctx context.Context, id, userID, title, contentEncrypted string) (*models.Secret, error) {

	secret := &models.Secret{}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE secrets SET title = $1, content_encrypted = $2, updated_at = now()
			 WHERE id = $3 AND user_id = $4`,
			title, contentEncrypted, id, userID)
		if err != nil {
			return fmt.Errorf("error performing sql request: %v", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error checking affected rows: %v", err)
		}
		if affected == 0 {
			return common.ErrorNotFound
		}

		row := tx.QueryRowContext(ctx,
			`SELECT id, title, content_encrypted, user_id, created_at, updated_at FROM secrets
			 WHERE id = $1 AND user_id = $2`,
			id, userID)
		return row.Scan(&secret.ID, &secret.Title, &secret.ContentEncrypted,
			&secret.UserID, &secret.CreatedAt, &secret.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	return secret, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM secrets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking affected rows: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
