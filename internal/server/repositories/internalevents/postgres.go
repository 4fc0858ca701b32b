// Package internalevents stores markers of things that happened inside the
// application.
package internalevents

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM internal_events WHERE name = $1)`
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Record(ctx context.Context, name string) error {
	query := `INSERT INTO internal_events (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
