package server

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/server/config"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/firestoredb"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/memory"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
)

var (
	openPostgres = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
		return repomanager.OpenPostgres(ctx, dsn)
	}
	openFirestore = func(ctx context.Context, project string) (repomanager.RepositoryManager, error) {
		return firestoredb.Open(ctx, project)
	}
)

// OpenStorage opens the repositories of the configured backend and applies
// pending migrations.
func OpenStorage(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	var (
		m   repomanager.RepositoryManager
		err error
	)

	switch c.Storage {
	case config.StoragePostgres:
		m, err = openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, err
		}
	case config.StorageFirestore:
		if c.FirestoreProject == "" {
			return nil, fmt.Errorf("firestore storage requires a project")
		}
		m, err = openFirestore(ctx, c.FirestoreProject)
		if err != nil {
			return nil, err
		}
	case config.StorageMemory:
		m = memory.NewManager()
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}
