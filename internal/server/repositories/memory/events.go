package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type eventRepo struct{ m *Manager }

func (r *eventRepo) Create(_ context.Context, e *models.Event) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, existing := range r.m.events {
		if existing.ID == e.ID {
			return common.ErrorAlreadyExists
		}
	}
	r.m.events = append(r.m.events, *e)
	return nil
}

func (r *eventRepo) GetByID(_ context.Context, serviceSlug, id string) (*models.Event, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, e := range r.m.events {
		if e.ServiceSlug == serviceSlug && e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *eventRepo) Latest(ctx context.Context, serviceSlug string) (*models.Event, error) {
	evs, err := r.ListByService(ctx, serviceSlug, 1)
	if err != nil {
		return nil, err
	}
	if len(evs) == 0 {
		return nil, common.ErrorNotFound
	}
	return evs[0], nil
}

// ListByService walks the log backwards so that a stable sort leaves later
// inserts first among equal start times.
func (r *eventRepo) ListByService(_ context.Context, serviceSlug string, limit int) ([]*models.Event, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var result []*models.Event
	for i := len(r.m.events) - 1; i >= 0; i-- {
		if e := r.m.events[i]; e.ServiceSlug == serviceSlug {
			result = append(result, &e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Start.After(result[j].Start) })
	return truncate(result, limit), nil
}

func (r *eventRepo) Between(_ context.Context, serviceSlug string, from, to time.Time, excludeStatus string, limit int) ([]*models.Event, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var result []*models.Event
	for i := len(r.m.events) - 1; i >= 0; i-- {
		e := r.m.events[i]
		if e.ServiceSlug != serviceSlug || e.Start.Before(from) || !e.Start.Before(to) {
			continue
		}
		if excludeStatus != "" && e.StatusSlug == excludeStatus {
			continue
		}
		result = append(result, &e)
	}
	// newest first, later insert first on equal starts
	sort.SliceStable(result, func(i, j int) bool { return result[i].Start.After(result[j].Start) })
	result = truncate(result, limit)
	slices.Reverse(result)
	return result, nil
}

func truncate(evs []*models.Event, limit int) []*models.Event {
	if limit > 0 && len(evs) > limit {
		return evs[:limit]
	}
	return evs
}
