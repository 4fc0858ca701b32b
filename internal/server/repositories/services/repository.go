package services

import (
	"context"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Service, error)
	List(ctx context.Context) ([]*models.Service, error)
	ListByList(ctx context.Context, listSlug string) ([]*models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
}
