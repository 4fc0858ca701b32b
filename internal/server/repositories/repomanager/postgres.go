// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/server/migrations"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/events"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/images"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/internalevents"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/lists"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/services"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/statuses"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// sharing one connection pool.
type PostgresRepositoryManager struct {
	db *sql.DB
}

func (m *PostgresRepositoryManager) Statuses() statuses.Repository {
	return statuses.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Lists() lists.Repository {
	return lists.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Services() services.Repository {
	return services.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Events() events.Repository {
	return events.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Images() images.Repository {
	return images.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Profiles() profiles.Repository {
	return profiles.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) InternalEvents() internalevents.Repository {
	return internalevents.NewPostgresRepository(m.db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the manager's database.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// OpenPostgres connects to dsn through the pgx driver and verifies the
// connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewPostgresRepositoryManager(db), nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager
// over an already opened database.
func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}
