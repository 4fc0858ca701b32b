package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
)

// DefaultStatuses are seeded by LoadDefaults. Exactly one is the default.
var DefaultStatuses = []models.Status{
	{
		Slug:        "down",
		Name:        "Down",
		Description: "The service is currently down",
		Image:       "icons/fugue/cross-circle.png",
		Severity:    models.DefaultSeverity,
	},
	{
		Slug:        "up",
		Name:        "Up",
		Description: "The service is up",
		Image:       "icons/fugue/tick-circle.png",
		Default:     true,
		Severity:    models.DefaultSeverity,
	},
	{
		Slug:        "warning",
		Name:        "Warning",
		Description: "The service is experiencing intermittent problems",
		Image:       "icons/fugue/exclamation.png",
		Severity:    models.DefaultSeverity,
	},
}

// StatusService manages the status registry.
type StatusService struct {
	repomanager repomanager.RepositoryManager
}

func NewStatusService(m repomanager.RepositoryManager) *StatusService {
	return &StatusService{repomanager: m}
}

func (s *StatusService) GetBySlug(ctx context.Context, slug string) (*models.Status, error) {
	return s.repomanager.Statuses().GetBySlug(ctx, slug)
}

// GetDefault returns the default status, or common.ErrNoDefaultStatus when
// none is flagged.
func (s *StatusService) GetDefault(ctx context.Context) (*models.Status, error) {
	st, err := s.repomanager.Statuses().GetDefault(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoDefaultStatus
		}
		return nil, err
	}
	return st, nil
}

func (s *StatusService) List(ctx context.Context) ([]*models.Status, error) {
	return s.repomanager.Statuses().List(ctx)
}

// Create validates and stores a new status. A zero severity is stored as
// models.DefaultSeverity. Only one status may be the default, so a second
// default is common.ErrorAlreadyExists.
func (s *StatusService) Create(ctx context.Context, st *models.Status) (*models.Status, error) {
	st.Slug = slugOrName(st.Slug, st.Name)
	if err := required(
		field{"slug", st.Slug},
		field{"name", st.Name},
		field{"description", st.Description},
		field{"image", st.Image},
	); err != nil {
		return nil, err
	}
	if err := identifier(field{"slug", st.Slug}); err != nil {
		return nil, err
	}
	if st.Severity == 0 {
		st.Severity = models.DefaultSeverity
	}
	if st.Default {
		taken, err := s.hasDefault(ctx)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: a default status is already set", common.ErrorAlreadyExists)
		}
	}
	if err := s.repomanager.Statuses().Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StatusService) hasDefault(ctx context.Context) (bool, error) {
	_, err := s.repomanager.Statuses().GetDefault(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound):
		return false, nil
	default:
		return false, err
	}
}

// LoadDefaults inserts the DefaultStatuses that are absent and reports how
// many were inserted. Existing statuses are never modified, and the seeded
// default flag is dropped when another status already holds it.
func (s *StatusService) LoadDefaults(ctx context.Context) (int, error) {
	repo := s.repomanager.Statuses()
	taken, err := s.hasDefault(ctx)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, def := range DefaultStatuses {
		st := def
		if st.Default && taken {
			st.Default = false
		}
		err := repo.Create(ctx, &st)
		if errors.Is(err, common.ErrorAlreadyExists) {
			continue
		}
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
