package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/history"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://status.example.com/api/v1"

func newCatalog(m *memory.Manager) *CatalogService {
	return NewCatalogService(m, NewStatusService(m))
}

func TestCurrentEvent_IsLatestStart(t *testing.T) {
	ctx := context.Background()
	m := seededManager(t)
	addService(t, m, "api", "")
	t0 := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	addEvent(t, m, "late", "api", "up", t0.Add(time.Hour))
	addEvent(t, m, "early", "api", "down", t0)

	got, err := newCatalog(m).CurrentEvent(ctx, "api")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "late", got.ID)
}

func TestCurrentEvent_NoneIsNil(t *testing.T) {
	m := seededManager(t)
	addService(t, m, "api", "")

	got, err := newCatalog(m).CurrentEvent(context.Background(), "api")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCurrentEventAsync(t *testing.T) {
	m := seededManager(t)
	addService(t, m, "api", "")
	addEvent(t, m, "e1", "api", "down", time.Now())

	ch := newCatalog(m).CurrentEventAsync(context.Background(), "api")
	res, ok := <-ch
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, "e1", res.Event.ID)

	_, ok = <-ch
	assert.False(t, ok, "channel must be closed after one result")
}

func TestCurrentEventAsync_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	m := &withEvents{Manager: seededManager(t)}
	m.events = &failingEvents{Repository: m.Manager.Events(), err: boom}

	res := <-NewCatalogService(m, NewStatusService(m)).CurrentEventAsync(context.Background(), "api")
	assert.ErrorIs(t, res.Err, boom)
	assert.Nil(t, res.Event)
}

func TestRest_NullCurrentEventAndList(t *testing.T) {
	ctx := context.Background()
	m := seededManager(t)
	addService(t, m, "api", "")
	c := newCatalog(m)

	svc, _ := c.GetBySlug(ctx, "api")
	r, err := c.Rest(ctx, baseURL, svc)
	require.NoError(t, err)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "api",
		"id": "api",
		"description": "api service",
		"url": "https://status.example.com/api/v1/services/api",
		"current-event": null,
		"list": null
	}`, string(raw))
}

func TestRest_WithEventAndList(t *testing.T) {
	ctx := context.Background()
	m := seededManager(t)
	require.NoError(t, m.Lists().Create(ctx, &models.List{Slug: "core", Name: "Core", Description: "Core services"}))
	addService(t, m, "api", "core")
	addEvent(t, m, "sid-1", "api", "down", time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC))
	c := newCatalog(m)

	svc, _ := c.GetBySlug(ctx, "api")
	r, err := c.Rest(ctx, baseURL, svc)
	require.NoError(t, err)

	require.NotNil(t, r.List)
	assert.Equal(t, baseURL+"/service-lists/core", r.List.URL)
	require.NotNil(t, r.CurrentEvent)
	assert.Equal(t, "sid-1", r.CurrentEvent.SID)
	assert.Equal(t, "Sun, 10 Mar 2024 14:00:00 GMT", r.CurrentEvent.Timestamp)
	assert.Equal(t, "down", r.CurrentEvent.Status.ID)
	assert.Equal(t, "https://status.example.com/images/icons/fugue/cross-circle.png", r.CurrentEvent.Status.Image)
}

func TestRestAll_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	m := seededManager(t)
	for _, slug := range []string{"a", "b", "c", "d"} {
		addService(t, m, slug, "")
		addEvent(t, m, "e-"+slug, slug, "up", time.Now())
	}
	c := newCatalog(m)

	svcs, err := c.List(ctx)
	require.NoError(t, err)
	got, err := c.RestAll(ctx, baseURL, svcs)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, slug := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, slug, got[i].ID)
		assert.Equal(t, "e-"+slug, got[i].CurrentEvent.SID)
	}
}

func TestRestAll_FailsOnError(t *testing.T) {
	boom := errors.New("boom")
	base := seededManager(t)
	addService(t, base, "api", "")
	m := &withEvents{Manager: base, events: &failingEvents{Repository: base.Events(), err: boom}}
	c := NewCatalogService(m, NewStatusService(m))

	svcs, _ := c.List(context.Background())
	_, err := c.RestAll(context.Background(), baseURL, svcs)
	assert.ErrorIs(t, err, boom)
}

func TestHistory_SevenDistinctDescendingDays(t *testing.T) {
	m := seededManager(t)
	addService(t, m, "api", "")
	c := newCatalog(m)
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	days, err := c.HistoryAt(context.Background(), "api", 7, now)
	require.NoError(t, err)
	require.Len(t, days, 7)

	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	for i, d := range days {
		assert.Equal(t, today.AddDate(0, 0, -(i+1)), d.Day)
		assert.Equal(t, "Up", d.Name)
		assert.False(t, d.Informational)
	}
}

func TestHistory_APIScenario(t *testing.T) {
	m := seededManager(t)
	addService(t, m, "api", "")
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	addEvent(t, m, "d3", "api", "down", today.AddDate(0, 0, -3).Add(9*time.Hour))
	addEvent(t, m, "d5", "api", "up", today.AddDate(0, 0, -5).Add(9*time.Hour))

	days, err := newCatalog(m).HistoryAt(context.Background(), "api", 7, now)
	require.NoError(t, err)
	require.Len(t, days, 7)

	for _, d := range days {
		if d.Day.Equal(today.AddDate(0, 0, -3)) {
			assert.True(t, d.Informational)
			assert.Equal(t, history.InformationImage, d.Image)
			assert.Equal(t, history.InformationName, d.Name)
			continue
		}
		assert.False(t, d.Informational, d.Day)
		assert.Equal(t, "icons/fugue/tick-circle.png", d.Image)
		assert.Equal(t, "Up", d.Name)
	}
}

func TestHistory_BusyWindowKeepsRecentOutage(t *testing.T) {
	m := seededManager(t)
	addService(t, m, "api", "")
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	busy := today.AddDate(0, 0, -7)
	for i := 0; i < history.MaxEvents+20; i++ {
		addEvent(t, m, fmt.Sprintf("up-%d", i), "api", "up", busy.Add(time.Duration(i)*time.Minute))
	}
	addEvent(t, m, "outage", "api", "down", today.AddDate(0, 0, -1).Add(8*time.Hour))

	days, err := newCatalog(m).HistoryAt(context.Background(), "api", 7, now)
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, today.AddDate(0, 0, -1), days[0].Day)
	assert.True(t, days[0].Informational)
	assert.Equal(t, history.InformationName, days[0].Name)
	for _, d := range days[1:] {
		assert.False(t, d.Informational, d.Day)
	}
}

func TestHistory_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown service", func(t *testing.T) {
		_, err := newCatalog(seededManager(t)).History(ctx, "ghost", 5)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("no default status", func(t *testing.T) {
		m := memory.NewManager()
		addService(t, m, "api", "")
		_, err := newCatalog(m).History(ctx, "api", 5)
		assert.ErrorIs(t, err, common.ErrNoDefaultStatus)
	})

	t.Run("negative days", func(t *testing.T) {
		m := seededManager(t)
		addService(t, m, "api", "")
		_, err := newCatalog(m).History(ctx, "api", -1)
		assert.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("too many days", func(t *testing.T) {
		m := seededManager(t)
		addService(t, m, "api", "")
		c := newCatalog(m)

		_, err := c.History(ctx, "api", MaxHistoryDays+1)
		assert.ErrorIs(t, err, common.ErrorValidation)

		days, err := c.History(ctx, "api", MaxHistoryDays)
		require.NoError(t, err)
		assert.Len(t, days, MaxHistoryDays)
	})

	t.Run("storage failure", func(t *testing.T) {
		boom := errors.New("boom")
		base := seededManager(t)
		addService(t, base, "api", "")
		m := &withEvents{Manager: base, events: &failingEvents{Repository: base.Events(), err: boom}}
		_, err := NewCatalogService(m, NewStatusService(m)).History(ctx, "api", 5)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCatalog_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	m := seededManager(t)
	require.NoError(t, m.Lists().Create(ctx, &models.List{Slug: "core", Name: "Core", Description: "d"}))
	c := newCatalog(m)

	svc, err := c.Create(ctx, &models.Service{Name: "Public API", Description: "REST API"})
	require.NoError(t, err)
	assert.Equal(t, "public-api", svc.Slug)

	_, err = c.Create(ctx, &models.Service{Name: "Public API", Description: "again"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = c.Create(ctx, &models.Service{Name: "Orphan", Description: "d", ListSlug: "missing"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	core := "core"
	desc := "Versioned REST API"
	svc, err = c.Update(ctx, "public-api", ServicePatch{Description: &desc, ListSlug: &core})
	require.NoError(t, err)
	assert.Equal(t, "Public API", svc.Name)
	assert.Equal(t, "core", svc.ListSlug)

	inCore, err := c.ListByList(ctx, "core")
	require.NoError(t, err)
	require.Len(t, inCore, 1)

	none := ""
	svc, err = c.Update(ctx, "public-api", ServicePatch{ListSlug: &none})
	require.NoError(t, err)
	assert.Empty(t, svc.ListSlug)

	blank := " "
	_, err = c.Update(ctx, "public-api", ServicePatch{Name: &blank})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = c.Update(ctx, "ghost", ServicePatch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = c.ListByList(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
