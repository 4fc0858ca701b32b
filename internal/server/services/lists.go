package services

import (
	"context"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
)

type ListService struct {
	repomanager repomanager.RepositoryManager
}

func NewListService(m repomanager.RepositoryManager) *ListService {
	return &ListService{repomanager: m}
}

func (s *ListService) GetBySlug(ctx context.Context, slug string) (*models.List, error) {
	return s.repomanager.Lists().GetBySlug(ctx, slug)
}

func (s *ListService) List(ctx context.Context) ([]*models.List, error) {
	return s.repomanager.Lists().List(ctx)
}

func (s *ListService) Create(ctx context.Context, l *models.List) (*models.List, error) {
	l.Slug = slugOrName(l.Slug, l.Name)
	if err := required(
		field{"slug", l.Slug},
		field{"name", l.Name},
		field{"description", l.Description},
	); err != nil {
		return nil, err
	}
	if err := identifier(field{"slug", l.Slug}); err != nil {
		return nil, err
	}
	if err := s.repomanager.Lists().Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Update overwrites the non-empty fields of the list identified by slug.
func (s *ListService) Update(ctx context.Context, slug, name, description string) (*models.List, error) {
	repo := s.repomanager.Lists()
	l, err := repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if name != "" {
		l.Name = name
	}
	if description != "" {
		l.Description = description
	}
	if err := repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
