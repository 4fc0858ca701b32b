package profiles

import (
	"context"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type Repository interface {
	GetByOwner(ctx context.Context, owner string) (*models.Profile, error)
	// Save creates or replaces the owner's profile. A token already used by
	// another owner yields common.ErrorAlreadyExists.
	Save(ctx context.Context, profile *models.Profile) error
}
