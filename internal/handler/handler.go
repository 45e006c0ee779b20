// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Shivanand-hulikatti/eventos/internal/metrics"
	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/Shivanand-hulikatti/eventos/internal/repository"
	"github.com/Shivanand-hulikatti/eventos/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	msgEventNotFound = "Evento não encontrado"
	msgRouteNotFound = "Página não encontrada. Verifique a URL e tente novamente."
)

// EventHandler holds all HTTP handlers for the events API.
type EventHandler struct {
	svc service.EventServicer
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc service.EventServicer) *EventHandler {
	return &EventHandler{svc: svc}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Message: msg})
}

// decodeJSON reads at most 1 MB. Unknown fields are ignored; schema errors are
// reported by the service layer.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeServiceError maps a service outcome to a status code and records it.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger := zerolog.Ctx(r.Context())

	var (
		verr *service.ValidationError
		ierr *service.InvalidIDError
	)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		metrics.RecordOperation(op, "not_found")
		writeError(w, http.StatusNotFound, msgEventNotFound)
	case errors.As(err, &verr):
		metrics.RecordOperation(op, "validation")
		logger.Warn().Err(err).Str("op", op).Msg("validation failed")
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &ierr):
		metrics.RecordOperation(op, "invalid_id")
		logger.Warn().Err(err).Str("op", op).Str("id", ierr.ID).Msg("invalid id")
		writeError(w, http.StatusBadRequest, ierr.Error())
	default:
		metrics.RecordOperation(op, "store_error")
		logger.Error().Err(err).Str("op", op).Msg("event operation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// CreateEvent handles POST /
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		metrics.RecordOperation("create", "validation")
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "create", err)
		return
	}

	metrics.RecordOperation("create", "ok")
	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /
// Returns a JSON array of all events ordered by title.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, r, "list", err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}

	metrics.RecordOperation("list", "ok")
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get", err)
		return
	}

	metrics.RecordOperation("get", "ok")
	writeJSON(w, http.StatusOK, event)
}

// UpdateEvent handles PUT /
// The id travels in the body together with the fields to change.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		metrics.RecordOperation("update", "validation")
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.UpdateEvent(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "update", err)
		return
	}

	metrics.RecordOperation("update", "ok")
	writeJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.svc.DeleteEvent(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "delete", err)
		return
	}

	metrics.RecordOperation("delete", "ok")
	writeJSON(w, http.StatusOK, event)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func (h *EventHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.svc.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound handles every unmatched route or method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}
