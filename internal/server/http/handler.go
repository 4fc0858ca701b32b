package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/logging"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// Handler serves the API resources on top of the service layer.
type Handler struct {
	statuses    *services.StatusService
	images      *services.ImageService
	lists       *services.ListService
	catalog     *services.CatalogService
	events      *services.EventService
	profiles    *services.ProfileService
	historyDays int
	logger      logging.Logger
}

// Services groups the dependencies of a Handler.
type Services struct {
	Statuses *services.StatusService
	Images   *services.ImageService
	Lists    *services.ListService
	Catalog  *services.CatalogService
	Events   *services.EventService
	Profiles *services.ProfileService
}

func NewHandler(s Services, historyDays int, l logging.Logger) *Handler {
	return &Handler{
		statuses:    s.Statuses,
		images:      s.Images,
		lists:       s.Lists,
		catalog:     s.Catalog,
		events:      s.Events,
		profiles:    s.Profiles,
		historyDays: historyDays,
		logger:      l.With("module", "http"),
	}
}

// intQuery parses an optional non-negative integer query parameter.
func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", common.ErrorValidation, name)
	}
	return n, nil
}

// --- statuses ---

func (h *Handler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	sts, err := h.statuses.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	base := baseURL(r)
	out := make([]models.StatusRest, 0, len(sts))
	for _, s := range sts {
		out = append(out, s.Rest(base))
	}
	writeJSON(w, http.StatusOK, map[string]any{"statuses": out})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.statuses.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st.Rest(baseURL(r)))
}

type createStatusRequest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Level       string `json:"level"`
	Default     bool   `json:"default"`
}

func (h *Handler) CreateStatus(w http.ResponseWriter, r *http.Request) {
	var req createStatusRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	severity, ok := models.SeverityFromLevel(req.Level)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "unknown level "+strconv.Quote(req.Level))
		return
	}

	st, err := h.statuses.Create(r.Context(), &models.Status{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Default:     req.Default,
		Severity:    severity,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st.Rest(baseURL(r)))
}

// --- images ---

func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	imgs, err := h.images.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	base := baseURL(r)
	out := make([]models.ImageRest, 0, len(imgs))
	for _, i := range imgs {
		out = append(out, i.Rest(base))
	}
	writeJSON(w, http.StatusOK, map[string]any{"images": out})
}

func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	img, err := h.images.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, img.Rest(baseURL(r)))
}

// --- lists ---

func (h *Handler) ListLists(w http.ResponseWriter, r *http.Request) {
	ls, err := h.lists.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	base := baseURL(r)
	out := make([]models.ListRest, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Rest(base))
	}
	writeJSON(w, http.StatusOK, map[string]any{"lists": out})
}

func (h *Handler) GetList(w http.ResponseWriter, r *http.Request) {
	l, err := h.lists.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l.Rest(baseURL(r)))
}

type listRequest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	l, err := h.lists.Create(r.Context(), &models.List{Slug: req.Slug, Name: req.Name, Description: req.Description})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l.Rest(baseURL(r)))
}

func (h *Handler) UpdateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	l, err := h.lists.Update(r.Context(), chi.URLParam(r, "slug"), req.Name, req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l.Rest(baseURL(r)))
}
