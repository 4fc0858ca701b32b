// Package images provides storage for the icon catalog.
package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/dbx"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

// PostgresRepository keeps the *sql.DB itself because CreateMany runs in a
// transaction.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Image, error) {
	query := `SELECT slug, icon_set, path FROM images WHERE slug = $1`

	i := &models.Image{}
	if err := r.db.QueryRowContext(ctx, query, slug).Scan(&i.Slug, &i.IconSet, &i.Path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return i, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Image, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slug, icon_set, path FROM images ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to select images: %w", err)
	}
	defer rows.Close()

	var result []*models.Image
	for rows.Next() {
		var i models.Image
		if err := rows.Scan(&i.Slug, &i.IconSet, &i.Path); err != nil {
			return nil, err
		}
		result = append(result, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateMany inserts all absent images in one transaction.
func (r *PostgresRepository) CreateMany(ctx context.Context, images []*models.Image) (int, error) {
	query := `
		INSERT INTO images (slug, icon_set, path)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO NOTHING
	`
	inserted := 0
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, i := range images {
			res, err := tx.ExecContext(ctx, query, i.Slug, i.IconSet, i.Path)
			if err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected error: %w", err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
