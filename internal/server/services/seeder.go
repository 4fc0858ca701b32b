package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/logging"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
)

// Seeder loads the default statuses and images and records an internal
// event after each successful load.
type Seeder struct {
	repomanager repomanager.RepositoryManager
	statuses    *StatusService
	images      *ImageService
	logger      logging.Logger
}

func NewSeeder(m repomanager.RepositoryManager, statuses *StatusService, images *ImageService, logger logging.Logger) *Seeder {
	return &Seeder{
		repomanager: m,
		statuses:    statuses,
		images:      images,
		logger:      logger.With("module", "seeder"),
	}
}

// Seed is idempotent: loads insert only what is absent, whether or not the
// markers exist.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.load(ctx, models.InternalEventStatusesLoaded, s.statuses.LoadDefaults); err != nil {
		return fmt.Errorf("load statuses: %w", err)
	}
	if err := s.load(ctx, models.InternalEventImagesLoaded, s.images.LoadDefaults); err != nil {
		return fmt.Errorf("load images: %w", err)
	}
	return nil
}

func (s *Seeder) load(ctx context.Context, marker string, fn func(context.Context) (int, error)) error {
	events := s.repomanager.InternalEvents()

	seen, err := events.Exists(ctx, marker)
	if err != nil {
		return err
	}

	n, err := fn(ctx)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "defaults loaded", "marker", marker, "inserted", n, "previously_loaded", seen)

	return events.Record(ctx, marker)
}
