package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/history"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
	"golang.org/x/sync/errgroup"
)

// MaxHistoryDays bounds the window History accepts.
const MaxHistoryDays = 365

// EventResult is what CurrentEventAsync delivers. Event is nil when the
// service has no events.
type EventResult struct {
	Event *models.Event
	Err   error
}

// ServicePatch carries the fields of an update. Nil fields are left alone;
// an empty ListSlug removes the service from its list.
type ServicePatch struct {
	Name        *string
	Description *string
	ListSlug    *string
}

// CatalogService manages monitored services and derives their current state
// and history from the event log.
type CatalogService struct {
	repomanager repomanager.RepositoryManager
	statuses    *StatusService
	now         func() time.Time
}

func NewCatalogService(m repomanager.RepositoryManager, statuses *StatusService) *CatalogService {
	return &CatalogService{repomanager: m, statuses: statuses, now: time.Now}
}

func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	return s.repomanager.Services().GetBySlug(ctx, slug)
}

func (s *CatalogService) List(ctx context.Context) ([]*models.Service, error) {
	return s.repomanager.Services().List(ctx)
}

// ListByList returns the services of an existing list.
func (s *CatalogService) ListByList(ctx context.Context, listSlug string) ([]*models.Service, error) {
	if _, err := s.repomanager.Lists().GetBySlug(ctx, listSlug); err != nil {
		return nil, err
	}
	return s.repomanager.Services().ListByList(ctx, listSlug)
}

func (s *CatalogService) Create(ctx context.Context, svc *models.Service) (*models.Service, error) {
	svc.Slug = slugOrName(svc.Slug, svc.Name)
	if err := required(
		field{"slug", svc.Slug},
		field{"name", svc.Name},
		field{"description", svc.Description},
	); err != nil {
		return nil, err
	}
	if err := identifier(field{"slug", svc.Slug}); err != nil {
		return nil, err
	}
	if err := s.checkList(ctx, svc.ListSlug); err != nil {
		return nil, err
	}
	if err := s.repomanager.Services().Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, slug string, patch ServicePatch) (*models.Service, error) {
	repo := s.repomanager.Services()
	svc, err := repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		svc.Name = *patch.Name
	}
	if patch.Description != nil {
		svc.Description = *patch.Description
	}
	if patch.ListSlug != nil {
		if err := s.checkList(ctx, *patch.ListSlug); err != nil {
			return nil, err
		}
		svc.ListSlug = *patch.ListSlug
	}
	if err := required(field{"name", svc.Name}, field{"description", svc.Description}); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) checkList(ctx context.Context, listSlug string) error {
	if listSlug == "" {
		return nil
	}
	_, err := s.repomanager.Lists().GetBySlug(ctx, listSlug)
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("%w: unknown list %q", common.ErrorValidation, listSlug)
	}
	return err
}

// CurrentEvent returns the service's event with the latest start, or nil
// when it has none.
func (s *CatalogService) CurrentEvent(ctx context.Context, serviceSlug string) (*models.Event, error) {
	e, err := s.repomanager.Events().Latest(ctx, serviceSlug)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// CurrentEventAsync starts CurrentEvent in the background. The channel
// receives exactly one result and is then closed.
func (s *CatalogService) CurrentEventAsync(ctx context.Context, serviceSlug string) <-chan EventResult {
	ch := make(chan EventResult, 1)
	go func() {
		defer close(ch)
		e, err := s.CurrentEvent(ctx, serviceSlug)
		ch <- EventResult{Event: e, Err: err}
	}()
	return ch
}

// History summarises the days calendar days before today for the service.
func (s *CatalogService) History(ctx context.Context, serviceSlug string, days int) ([]models.HistoryDay, error) {
	return s.HistoryAt(ctx, serviceSlug, days, s.now())
}

// HistoryAt is History with an explicit reference time.
func (s *CatalogService) HistoryAt(ctx context.Context, serviceSlug string, days int, start time.Time) ([]models.HistoryDay, error) {
	if days < 0 || days > MaxHistoryDays {
		return nil, fmt.Errorf("%w: days must be between 0 and %d", common.ErrorValidation, MaxHistoryDays)
	}
	if _, err := s.GetBySlug(ctx, serviceSlug); err != nil {
		return nil, err
	}
	def, err := s.statuses.GetDefault(ctx)
	if err != nil {
		return nil, err
	}

	from, to := history.Window(days, start)
	events, err := s.repomanager.Events().Between(ctx, serviceSlug, from, to, def.Slug, history.MaxEvents)
	if err != nil {
		return nil, err
	}
	return history.Build(days, def, start, events), nil
}

// Rest projects svc, resolving its current event and list. The event read
// runs while the list is fetched.
func (s *CatalogService) Rest(ctx context.Context, baseURL string, svc *models.Service) (models.ServiceRest, error) {
	current := s.CurrentEventAsync(ctx, svc.Slug)

	var list *models.ListRest
	if svc.ListSlug != "" {
		l, err := s.repomanager.Lists().GetBySlug(ctx, svc.ListSlug)
		switch {
		case err == nil:
			lr := l.Rest(baseURL)
			list = &lr
		case !errors.Is(err, common.ErrorNotFound):
			return models.ServiceRest{}, err
		}
	}

	res := <-current
	if res.Err != nil {
		return models.ServiceRest{}, res.Err
	}

	var event *models.EventRest
	if res.Event != nil {
		st, err := s.statuses.GetBySlug(ctx, res.Event.StatusSlug)
		if err != nil {
			return models.ServiceRest{}, fmt.Errorf("status of event %s: %w", res.Event.ID, err)
		}
		er := res.Event.Rest(baseURL, st)
		event = &er
	}

	return svc.Rest(baseURL, event, list), nil
}

// RestAll projects every service concurrently, preserving order.
func (s *CatalogService) RestAll(ctx context.Context, baseURL string, svcs []*models.Service) ([]models.ServiceRest, error) {
	result := make([]models.ServiceRest, len(svcs))
	g, ctx := errgroup.WithContext(ctx)
	for i, svc := range svcs {
		i, svc := i, svc
		g.Go(func() error {
			r, err := s.Rest(ctx, baseURL, svc)
			if err != nil {
				return err
			}
			result[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
