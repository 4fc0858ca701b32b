// Package events provides storage for the append-only event log.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/dbx"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

// PostgresRepository implements the event log over a dbx.DBTX. The seq
// column breaks ties between events sharing a start timestamp.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectEvent = `SELECT id, service_slug, status_slug, message, start, informational FROM events`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	e := &models.Event{}
	if err := row.Scan(&e.ID, &e.ServiceSlug, &e.StatusSlug, &e.Message, &e.Start, &e.Informational); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (id, service_slug, status_slug, message, start, informational)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.ServiceSlug, e.StatusSlug, e.Message, e.Start, e.Informational); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, serviceSlug, id string) (*models.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, selectEvent+` WHERE service_slug = $1 AND id::text = $2`, serviceSlug, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Latest(ctx context.Context, serviceSlug string) (*models.Event, error) {
	query := selectEvent + ` WHERE service_slug = $1 ORDER BY start DESC, seq DESC LIMIT 1`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, serviceSlug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) ListByService(ctx context.Context, serviceSlug string, limit int) ([]*models.Event, error) {
	query := selectEvent + ` WHERE service_slug = $1 ORDER BY start DESC, seq DESC LIMIT $2`
	return r.selectMany(ctx, query, serviceSlug, limit)
}

func (r *PostgresRepository) Between(ctx context.Context, serviceSlug string, from, to time.Time, excludeStatus string, limit int) ([]*models.Event, error) {
	query := selectEvent + ` WHERE service_slug = $1 AND start >= $2 AND start < $3 AND status_slug <> $4 ORDER BY start DESC, seq DESC LIMIT $5`
	result, err := r.selectMany(ctx, query, serviceSlug, from, to, excludeStatus, limit)
	if err != nil {
		return nil, err
	}
	slices.Reverse(result)
	return result, nil
}

func (r *PostgresRepository) selectMany(ctx context.Context, query string, args ...any) ([]*models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select events: %w", err)
	}
	defer rows.Close()

	var result []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
