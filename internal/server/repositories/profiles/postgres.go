// Package profiles provides storage for API credential profiles.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/dbx"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByOwner(ctx context.Context, owner string) (*models.Profile, error) {
	query := `SELECT owner, token, secret_hash, created_at FROM profiles WHERE owner = $1`

	p := &models.Profile{}
	if err := r.db.QueryRowContext(ctx, query, owner).Scan(&p.Owner, &p.Token, &p.SecretHash, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Save(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (owner, token, secret_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner)
		DO UPDATE SET
			token = EXCLUDED.token,
			secret_hash = EXCLUDED.secret_hash,
			created_at = EXCLUDED.created_at
	`
	if _, err := r.db.ExecContext(ctx, query, p.Owner, p.Token, p.SecretHash, p.CreatedAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
