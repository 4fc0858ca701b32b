package http

import (
	"net/http"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	evs, err := h.events.List(r.Context(), chi.URLParam(r, "slug"), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.events.Rest(r.Context(), baseURL(r), evs...)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

type createEventRequest struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Informational bool   `json:"informational"`
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	e, err := h.events.Create(r.Context(), chi.URLParam(r, "slug"), req.Status, req.Message, req.Informational)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	owner, _ := OwnerFromContext(r.Context())
	h.logger.Info(r.Context(), "event recorded", "service", e.ServiceSlug, "status", e.StatusSlug, "sid", e.ID, "owner", owner)

	h.writeEvent(w, r, http.StatusCreated, e)
}

func (h *Handler) GetCurrentEvent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, err := h.catalog.GetBySlug(r.Context(), slug); err != nil {
		h.writeError(w, r, err)
		return
	}
	e, err := h.catalog.CurrentEvent(r.Context(), slug)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if e == nil {
		h.writeError(w, r, common.ErrorNotFound)
		return
	}
	h.writeEvent(w, r, http.StatusOK, e)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.events.GetBySID(r.Context(), chi.URLParam(r, "slug"), chi.URLParam(r, "sid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeEvent(w, r, http.StatusOK, e)
}

func (h *Handler) writeEvent(w http.ResponseWriter, r *http.Request, code int, e *models.Event) {
	out, err := h.events.Rest(r.Context(), baseURL(r), e)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, code, out[0])
}
