package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
)

//go:embed fixtures/images.json
var imagesFixture []byte

type fixtureImage struct {
	Name string `json:"name"`
	Set  string `json:"set"`
	URL  string `json:"url"`
}

// DefaultImages decodes the bundled icon catalog.
func DefaultImages() ([]*models.Image, error) {
	var raw []fixtureImage
	if err := json.Unmarshal(imagesFixture, &raw); err != nil {
		return nil, fmt.Errorf("decode images fixture: %w", err)
	}
	result := make([]*models.Image, 0, len(raw))
	for _, r := range raw {
		result = append(result, &models.Image{Slug: r.Name, IconSet: r.Set, Path: r.URL})
	}
	return result, nil
}

type ImageService struct {
	repomanager repomanager.RepositoryManager
}

func NewImageService(m repomanager.RepositoryManager) *ImageService {
	return &ImageService{repomanager: m}
}

func (s *ImageService) GetBySlug(ctx context.Context, slug string) (*models.Image, error) {
	return s.repomanager.Images().GetBySlug(ctx, slug)
}

func (s *ImageService) List(ctx context.Context) ([]*models.Image, error) {
	return s.repomanager.Images().List(ctx)
}

// LoadDefaults inserts the bundled images whose slugs are absent.
func (s *ImageService) LoadDefaults(ctx context.Context) (int, error) {
	imgs, err := DefaultImages()
	if err != nil {
		return 0, err
	}
	return s.repomanager.Images().CreateMany(ctx, imgs)
}
