// Package services provides storage for monitored services.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/dbx"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

// PostgresRepository implements service storage over a dbx.DBTX. An empty
// ListSlug is stored as NULL.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectService = `SELECT slug, name, description, list_slug FROM services`

func scanService(row interface{ Scan(...any) error }) (*models.Service, error) {
	var (
		s        models.Service
		listSlug sql.NullString
	)
	if err := row.Scan(&s.Slug, &s.Name, &s.Description, &listSlug); err != nil {
		return nil, err
	}
	s.ListSlug = listSlug.String
	return &s, nil
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx, selectService+` WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Service, error) {
	return r.selectMany(ctx, selectService+` ORDER BY slug`)
}

func (r *PostgresRepository) ListByList(ctx context.Context, listSlug string) ([]*models.Service, error) {
	return r.selectMany(ctx, selectService+` WHERE list_slug = $1 ORDER BY slug`, listSlug)
}

func (r *PostgresRepository) selectMany(ctx context.Context, query string, args ...any) ([]*models.Service, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select services: %w", err)
	}
	defer rows.Close()

	var result []*models.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Service) error {
	query := `
		INSERT INTO services (slug, name, description, list_slug)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, s.Slug, s.Name, s.Description, nullable(s.ListSlug))
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

func (r *PostgresRepository) Update(ctx context.Context, s *models.Service) error {
	query := `UPDATE services SET name = $2, description = $3, list_slug = $4 WHERE slug = $1`
	res, err := r.db.ExecContext(ctx, query, s.Slug, s.Name, s.Description, nullable(s.ListSlug))
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
