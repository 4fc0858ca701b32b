package repomanager

import (
	"context"

	"github.com/dmitrijs2005/stashboard/internal/server/repositories/events"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/images"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/internalevents"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/lists"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/services"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/statuses"
)

// RepositoryManager vends the repositories of one storage backend.
type RepositoryManager interface {
	// RunMigrations brings the backend schema up to date. Schemaless
	// backends return nil.
	RunMigrations(ctx context.Context) error
	Statuses() statuses.Repository
	Lists() lists.Repository
	Services() services.Repository
	Events() events.Repository
	Images() images.Repository
	Profiles() profiles.Repository
	InternalEvents() internalevents.Repository
	Close() error
}
