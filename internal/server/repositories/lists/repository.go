package lists

import (
	"context"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*models.List, error)
	List(ctx context.Context) ([]*models.List, error)
	Create(ctx context.Context, list *models.List) error
	// Update rewrites name and description; a missing slug yields
	// common.ErrorNotFound.
	Update(ctx context.Context, list *models.List) error
}
