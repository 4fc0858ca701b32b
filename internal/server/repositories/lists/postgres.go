// Package lists provides storage for service lists.
package lists

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

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.List, error) {
	query := `SELECT slug, name, description FROM lists WHERE slug = $1`

	l := &models.List{}
	if err := r.db.QueryRowContext(ctx, query, slug).Scan(&l.Slug, &l.Name, &l.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.List, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slug, name, description FROM lists ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to select lists: %w", err)
	}
	defer rows.Close()

	var result []*models.List
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.Slug, &l.Name, &l.Description); err != nil {
			return nil, err
		}
		result = append(result, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, l *models.List) error {
	query := `
		INSERT INTO lists (slug, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, l.Slug, l.Name, l.Description)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, l *models.List) error {
	query := `UPDATE lists SET name = $2, description = $3 WHERE slug = $1`
	res, err := r.db.ExecContext(ctx, query, l.Slug, l.Name, l.Description)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
