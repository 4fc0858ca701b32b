package http

import (
	"net/http"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// ListServices answers every service, or those of ?list=slug.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	var (
		svcs []*models.Service
		err  error
	)
	if list := r.URL.Query().Get("list"); list != "" {
		svcs, err = h.catalog.ListByList(r.Context(), list)
	} else {
		svcs, err = h.catalog.List(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.catalog.RestAll(r.Context(), baseURL(r), svcs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": out})
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.catalog.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeService(w, r, http.StatusOK, svc)
}

func (h *Handler) writeService(w http.ResponseWriter, r *http.Request, code int, svc *models.Service) {
	out, err := h.catalog.Rest(r.Context(), baseURL(r), svc)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, code, out)
}

type createServiceRequest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	List        string `json:"list"`
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req createServiceRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	svc, err := h.catalog.Create(r.Context(), &models.Service{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		ListSlug:    req.List,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeService(w, r, http.StatusCreated, svc)
}

type updateServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	List        *string `json:"list"`
}

func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req updateServiceRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	svc, err := h.catalog.Update(r.Context(), chi.URLParam(r, "slug"), services.ServicePatch{
		Name:        req.Name,
		Description: req.Description,
		ListSlug:    req.List,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeService(w, r, http.StatusOK, svc)
}

// GetHistory answers the day summaries of ?days=N (default from config).
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", h.historyDays)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.catalog.History(r.Context(), chi.URLParam(r, "slug"), days)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": out})
}
