package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

// Repository stores the append-only event log. There is deliberately no
// update or delete.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, serviceSlug, id string) (*models.Event, error)
	// Latest returns the event with the greatest Start for the service; ties
	// go to the later insert. No events yields common.ErrorNotFound.
	Latest(ctx context.Context, serviceSlug string) (*models.Event, error)
	// ListByService returns up to limit events, newest first.
	ListByService(ctx context.Context, serviceSlug string, limit int) ([]*models.Event, error)
	// Between returns the newest limit events with from <= Start < to whose
	// status is not excludeStatus, ordered oldest first. An empty
	// excludeStatus keeps every status.
	Between(ctx context.Context, serviceSlug string, from, to time.Time, excludeStatus string, limit int) ([]*models.Event, error)
}
