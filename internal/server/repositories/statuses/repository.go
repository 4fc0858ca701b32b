package statuses

import (
	"context"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Status, error)
	// GetDefault returns the status flagged default, or common.ErrorNotFound.
	GetDefault(ctx context.Context) (*models.Status, error)
	List(ctx context.Context) ([]*models.Status, error)
	// Create inserts a status; an existing slug yields common.ErrorAlreadyExists
	// and leaves the stored row untouched.
	Create(ctx context.Context, status *models.Status) error
}
