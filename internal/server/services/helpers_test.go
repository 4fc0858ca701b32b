package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/events"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/memory"
	"github.com/stretchr/testify/require"
)

// failingEvents wraps an events repository and fails the reads.
type failingEvents struct {
	events.Repository
	err error
}

func (f *failingEvents) Latest(context.Context, string) (*models.Event, error) {
	return nil, f.err
}

func (f *failingEvents) Between(context.Context, string, time.Time, time.Time, string, int) ([]*models.Event, error) {
	return nil, f.err
}

// withEvents swaps the events repository of a memory manager.
type withEvents struct {
	*memory.Manager
	events events.Repository
}

func (m *withEvents) Events() events.Repository { return m.events }

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	t := start.Add(-step)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func seededManager(t *testing.T) *memory.Manager {
	t.Helper()
	m := memory.NewManager()
	_, err := NewStatusService(m).LoadDefaults(context.Background())
	require.NoError(t, err)
	return m
}

func addService(t *testing.T, m *memory.Manager, slug, list string) {
	t.Helper()
	require.NoError(t, m.Services().Create(context.Background(), &models.Service{
		Slug: slug, Name: slug, Description: slug + " service", ListSlug: list,
	}))
}

func addEvent(t *testing.T, m *memory.Manager, id, service, status string, start time.Time) {
	t.Helper()
	require.NoError(t, m.Events().Create(context.Background(), &models.Event{
		ID: id, ServiceSlug: service, StatusSlug: status, Message: id, Start: start,
	}))
}
