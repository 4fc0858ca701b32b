// Package statuses provides storage for the status registry.
package statuses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/dbx"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

// PostgresRepository implements status storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectStatus = `SELECT slug, name, description, image, is_default, severity FROM statuses`

func scanStatus(row interface{ Scan(...any) error }) (*models.Status, error) {
	s := &models.Status{}
	if err := row.Scan(&s.Slug, &s.Name, &s.Description, &s.Image, &s.Default, &s.Severity); err != nil {
		return nil, err
	}
	return s, nil
}

// GetBySlug returns the status with the given slug or common.ErrorNotFound.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Status, error) {
	s, err := scanStatus(r.db.QueryRowContext(ctx, selectStatus+` WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// GetDefault returns the default status. If several rows are flagged, the
// one with the smallest slug wins.
func (r *PostgresRepository) GetDefault(ctx context.Context) (*models.Status, error) {
	s, err := scanStatus(r.db.QueryRowContext(ctx, selectStatus+` WHERE is_default ORDER BY slug LIMIT 1`))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// List returns all statuses ordered by slug.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Status, error) {
	rows, err := r.db.QueryContext(ctx, selectStatus+` ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to select statuses: %w", err)
	}
	defer rows.Close()

	var result []*models.Status
	for rows.Next() {
		s, err := scanStatus(rows)
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

// Create inserts the status unless its slug is taken or it would be a
// second default.
func (r *PostgresRepository) Create(ctx context.Context, s *models.Status) error {
	query := `
		INSERT INTO statuses (slug, name, description, image, is_default, severity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, s.Slug, s.Name, s.Description, s.Image, s.Default, s.Severity)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
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
