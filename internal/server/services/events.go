package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/notify"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Bounds of EventService.List.
const (
	DefaultEventsLimit = 20
	MaxEventsLimit     = 100
)

// EventService records and reads the event log.
type EventService struct {
	repomanager repomanager.RepositoryManager
	notifier    notify.Notifier
	now         func() time.Time
	newID       func() string
}

func NewEventService(m repomanager.RepositoryManager, n notify.Notifier) *EventService {
	if n == nil {
		n = notify.NopNotifier{}
	}
	return &EventService{
		repomanager: m,
		notifier:    n,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// Create appends an event for an existing service and status. Start is
// stamped from the server clock.
func (s *EventService) Create(ctx context.Context, serviceSlug, statusSlug, message string, informational bool) (*models.Event, error) {
	if err := required(field{"status", statusSlug}, field{"message", message}); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Services().GetBySlug(ctx, serviceSlug); err != nil {
		return nil, err
	}
	st, err := s.repomanager.Statuses().GetBySlug(ctx, statusSlug)
	if err != nil {
		return nil, err
	}

	e := &models.Event{
		ID:            s.newID(),
		ServiceSlug:   serviceSlug,
		StatusSlug:    st.Slug,
		Message:       message,
		Start:         s.now().UTC(),
		Informational: informational,
	}
	if err := s.repomanager.Events().Create(ctx, e); err != nil {
		return nil, err
	}

	s.notifier.EventRecorded(ctx, e, st)
	return e, nil
}

func (s *EventService) GetBySID(ctx context.Context, serviceSlug, sid string) (*models.Event, error) {
	if _, err := s.repomanager.Services().GetBySlug(ctx, serviceSlug); err != nil {
		return nil, err
	}
	return s.repomanager.Events().GetByID(ctx, serviceSlug, sid)
}

// List returns the newest events of a service. limit is clamped to
// [1, MaxEventsLimit]; zero or less means DefaultEventsLimit.
func (s *EventService) List(ctx context.Context, serviceSlug string, limit int) ([]*models.Event, error) {
	if _, err := s.repomanager.Services().GetBySlug(ctx, serviceSlug); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = DefaultEventsLimit
	case limit > MaxEventsLimit:
		limit = MaxEventsLimit
	}
	return s.repomanager.Events().ListByService(ctx, serviceSlug, limit)
}

// Rest projects events, loading each distinct status once.
func (s *EventService) Rest(ctx context.Context, baseURL string, events ...*models.Event) ([]models.EventRest, error) {
	statuses := make(map[string]*models.Status)
	result := make([]models.EventRest, 0, len(events))
	for _, e := range events {
		st, ok := statuses[e.StatusSlug]
		if !ok {
			var err error
			st, err = s.repomanager.Statuses().GetBySlug(ctx, e.StatusSlug)
			if err != nil {
				return nil, err
			}
			statuses[e.StatusSlug] = st
		}
		result = append(result, e.Rest(baseURL, st))
	}
	return result, nil
}
