package images

import (
	"context"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Image, error)
	List(ctx context.Context) ([]*models.Image, error)
	// CreateMany inserts the images whose slugs are absent and reports how
	// many were inserted. Existing rows are never overwritten.
	CreateMany(ctx context.Context, images []*models.Image) (int, error)
}
