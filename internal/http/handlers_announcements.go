package httpx

import (
	"errors"
	"net/http"

	"github.com/dayanisma-dernegi/portal/internal/data"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// AnnouncementHandlers provides HTTP handlers for announcements.
type AnnouncementHandlers struct {
	Repo *data.AnnouncementRepo
}

const maxAnnouncementListLimit = 100

// ListPublic handles GET /api/announcements: published announcements only.
func (h *AnnouncementHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAnnouncementListLimit)
	published := true

	anns, err := h.Repo.List(r.Context(), model.AnnouncementListOptions{
		Published: &published,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"announcements": anns,
		"limit":         limit,
		"offset":        offset,
	})
}

// Create handles admin announcement creation.
func (h *AnnouncementHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAnnouncementRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ann, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, ann)
}

// List handles admin listing, drafts included.
func (h *AnnouncementHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAnnouncementListLimit)

	anns, err := h.Repo.List(r.Context(), model.AnnouncementListOptions{
		Published: parseBoolQuery(r, "published"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"announcements": anns,
		"limit":         limit,
		"offset":        offset,
	})
}

// GetByID handles admin point reads.
func (h *AnnouncementHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("announcement id is required"),
		})
		return
	}

	ann, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrAnnouncementNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "announcement_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, ann)
}

// Update handles admin announcement updates.
func (h *AnnouncementHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req model.UpdateAnnouncementRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ann, err := h.Repo.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAnnouncementNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "announcement_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, ann)
}

// Delete handles admin deletes.
func (h *AnnouncementHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ok, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "announcement_not_found",
			Err:     errors.New("announcement not found"),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
