package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/logging"
	"github.com/dmitrijs2005/stashboard/internal/server/config"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/memory"
	"github.com/dmitrijs2005/stashboard/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t       *testing.T
	router  http.Handler
	manager *memory.Manager
	bearer  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	m := memory.NewManager()
	cfg := &config.Config{SecretKey: "test-secret", AccessTokenValidityDuration: time.Hour}

	statuses := services.NewStatusService(m)
	images := services.NewImageService(m)
	require.NoError(t, services.NewSeeder(m, statuses, images, logging.NewNopLogger()).Seed(ctx))

	profiles := services.NewProfileService(m, cfg)
	p, err := profiles.Create(ctx, "ops", []byte("s3cret"))
	require.NoError(t, err)
	bearer, err := profiles.Authenticate(ctx, "ops", p.Token, []byte("s3cret"))
	require.NoError(t, err)

	h := NewHandler(Services{
		Statuses: statuses,
		Images:   images,
		Lists:    services.NewListService(m),
		Catalog:  services.NewCatalogService(m, statuses),
		Events:   services.NewEventService(m, nil),
		Profiles: profiles,
	}, 5, logging.NewNopLogger())

	return &testAPI{t: t, router: NewRouter(h), manager: m, bearer: bearer}
}

func (a *testAPI) do(method, path string, body any, auth bool) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "http://status.example.com"+path, &buf)
	if auth {
		req.Header.Set("Authorization", "Bearer "+a.bearer)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := newTestAPI(t).do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatuses(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/statuses", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Statuses []models.StatusRest `json:"statuses"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Statuses, 3)

	rec = api.do(http.MethodGet, "/api/v1/statuses/up", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"default": true,
		"name": "Up",
		"id": "up",
		"description": "The service is up",
		"url": "http://status.example.com/api/v1/statuses/up",
		"image": "http://status.example.com/images/icons/fugue/tick-circle.png",
		"level": "NORMAL"
	}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/statuses/nope", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var e errorResponse
	decodeBody(t, rec, &e)
	assert.True(t, e.Error)
	assert.Contains(t, e.Message, "not found")
}

func TestCreateStatus(t *testing.T) {
	api := newTestAPI(t)
	body := map[string]any{"name": "Degraded", "description": "Slow", "image": "icons/fugue/clock.png", "level": "WARNING"}

	rec := api.do(http.MethodPost, "/api/v1/statuses", body, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/statuses", body, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var st models.StatusRest
	decodeBody(t, rec, &st)
	assert.Equal(t, "degraded", st.ID)
	assert.Equal(t, "WARNING", st.Level)

	rec = api.do(http.MethodPost, "/api/v1/statuses", body, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/statuses", map[string]any{"name": "Green", "description": "Fine", "image": "icons/fugue/tick.png", "default": true}, true)
	assert.Equal(t, http.StatusConflict, rec.Code, "only one default status")

	body["level"] = "SEVERE"
	body["name"] = "Other"
	rec = api.do(http.MethodPost, "/api/v1/statuses", body, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImages(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/status-images", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Images []models.ImageRest `json:"images"`
	}
	decodeBody(t, rec, &list)
	assert.NotEmpty(t, list.Images)

	rec = api.do(http.MethodGet, "/api/v1/status-images/tick-circle", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"tick-circle","set":"fugue","url":"http://status.example.com/images/icons/fugue/tick-circle.png"}`, rec.Body.String())
}

func TestServiceLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/service-lists", map[string]string{"name": "Core", "description": "Core services"}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/services", map[string]string{"name": "API", "description": "Public API", "list": "core"}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var svc map[string]any
	decodeBody(t, rec, &svc)
	assert.Equal(t, "api", svc["id"])
	assert.Nil(t, svc["current-event"])
	assert.Equal(t, "core", svc["list"].(map[string]any)["id"])

	rec = api.do(http.MethodGet, "/api/v1/services/api/events/current", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/services/api/events", map[string]any{"status": "down", "message": "Outage"}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.EventRest
	decodeBody(t, rec, &created)
	assert.Equal(t, "down", created.Status.ID)
	assert.Equal(t, "http://status.example.com/api/v1/services/api/events/"+created.SID, created.URL)

	rec = api.do(http.MethodPost, "/api/v1/services/api/events", map[string]any{"status": "up", "message": "Recovered"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	var second models.EventRest
	decodeBody(t, rec, &second)

	rec = api.do(http.MethodGet, "/api/v1/services/api/events/current", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var current models.EventRest
	decodeBody(t, rec, &current)
	assert.Equal(t, second.SID, current.SID)

	rec = api.do(http.MethodGet, "/api/v1/services/api/events/"+created.SID, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/services/api/events?limit=1", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var evs struct {
		Events []models.EventRest `json:"events"`
	}
	decodeBody(t, rec, &evs)
	require.Len(t, evs.Events, 1)
	assert.Equal(t, second.SID, evs.Events[0].SID)

	rec = api.do(http.MethodGet, "/api/v1/services?list=core", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var all struct {
		Services []models.ServiceRest `json:"services"`
	}
	decodeBody(t, rec, &all)
	require.Len(t, all.Services, 1)
	require.NotNil(t, all.Services[0].CurrentEvent)
	assert.Equal(t, second.SID, all.Services[0].CurrentEvent.SID)

	rec = api.do(http.MethodPost, "/api/v1/services/api", map[string]string{"description": "Versioned API"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeBody(t, rec, &svc)
	assert.Equal(t, "Versioned API", svc["description"])
}

func TestHistory(t *testing.T) {
	api := newTestAPI(t)
	require.NoError(t, api.manager.Services().Create(context.Background(), &models.Service{Slug: "api", Name: "API", Description: "d"}))

	rec := api.do(http.MethodGet, "/api/v1/services/api/history", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Days []models.HistoryDay `json:"days"`
	}
	decodeBody(t, rec, &out)
	assert.Len(t, out.Days, 5)

	rec = api.do(http.MethodGet, "/api/v1/services/api/history?days=7", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &out)
	assert.Len(t, out.Days, 7)

	rec = api.do(http.MethodGet, "/api/v1/services/api/history?days=lots", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/services/api/history?days=2000000", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/services/ghost/history", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistory_NoDefaultStatusIs500(t *testing.T) {
	m := memory.NewManager()
	require.NoError(t, m.Services().Create(context.Background(), &models.Service{Slug: "api", Name: "API", Description: "d"}))
	statuses := services.NewStatusService(m)
	h := NewHandler(Services{
		Statuses: statuses,
		Catalog:  services.NewCatalogService(m, statuses),
	}, 5, logging.NewNopLogger())

	rec := httptest.NewRecorder()
	NewRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services/api/history", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "no default status")
}

func TestCreateToken(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(t)
	profiles := services.NewProfileService(api.manager, &config.Config{SecretKey: "test-secret", AccessTokenValidityDuration: time.Hour})
	p, err := profiles.Create(ctx, "dev", []byte("pw"))
	require.NoError(t, err)

	rec := api.do(http.MethodPost, "/api/v1/token", map[string]string{"owner": "dev", "token": p.Token, "secret": "pw"}, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tok tokenResponse
	decodeBody(t, rec, &tok)
	assert.Equal(t, "Bearer", tok.TokenType)

	api.bearer = tok.AccessToken
	rec = api.do(http.MethodPost, "/api/v1/service-lists", map[string]string{"name": "Edge", "description": "CDN"}, true)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/token", map[string]string{"owner": "dev", "token": p.Token, "secret": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_RejectsGarbage(t *testing.T) {
	api := newTestAPI(t)
	api.bearer = "garbage"

	rec := api.do(http.MethodPost, "/api/v1/services", map[string]string{"name": "x", "description": "y"}, true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodPost, "/api/v1/service-lists", map[string]string{"name": "x", "description": "y", "colour": "red"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation error")
}

func TestBaseURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://status.example.com/api/v1/statuses", nil)
	assert.Equal(t, "http://status.example.com/api/v1", baseURL(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://status.example.com/api/v1", baseURL(req))
}

func TestNotFoundRoute(t *testing.T) {
	rec := newTestAPI(t).do(http.MethodGet, "/api/v1/nothing-here", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"error":true`))
}
