package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/dayanisma-dernegi/portal/internal/data"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// eventStore is the repository surface the event handlers consume.
type eventStore interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	List(ctx context.Context, opts model.EventListOptions) ([]*model.Event, error)
	Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// EventHandlers provides HTTP handlers for association events. The public
// listing only ever sees published events; admin CRUD sees everything.
type EventHandlers struct {
	Repo eventStore
}

const maxEventListLimit = 100

// ListPublic handles GET /api/events: published events only, optionally
// restricted to upcoming ones.
func (h *EventHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxEventListLimit)
	published := true
	opts := model.EventListOptions{
		Published: &published,
		Upcoming:  r.URL.Query().Get("upcoming") == "true",
		Limit:     limit,
		Offset:    offset,
	}

	events, err := h.Repo.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"limit":  limit,
		"offset": offset,
	})
}

// GetBySlug handles GET /api/events/{slug}: public point read of a published
// event by its URL slug.
func (h *EventHandlers) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	event, err := h.Repo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, data.ErrEventNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "event_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}
	if !event.Published {
		// Unpublished events do not exist as far as the public site knows.
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "event_not_found",
			Err:     errors.New("event not found"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

// Create handles admin event creation.
func (h *EventHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	event, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEventSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "slug_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, event)
}

// List handles admin listing with published/upcoming filters.
func (h *EventHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxEventListLimit)
	opts := model.EventListOptions{
		Published: parseBoolQuery(r, "published"),
		Upcoming:  r.URL.Query().Get("upcoming") == "true",
		Limit:     limit,
		Offset:    offset,
	}

	events, err := h.Repo.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles admin point reads.
func (h *EventHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("event id is required"),
		})
		return
	}

	event, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrEventNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "event_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

// Update handles admin event updates.
func (h *EventHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req model.UpdateEventRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	event, err := h.Repo.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEventNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "event_not_found", Err: err})
		case errors.Is(err, data.ErrEventSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "slug_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

// Delete handles admin deletes.
func (h *EventHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ok, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "event_not_found",
			Err:     errors.New("event not found"),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
