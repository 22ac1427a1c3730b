package httpx

import (
	"errors"
	"net/http"

	"github.com/dayanisma-dernegi/portal/internal/data"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// ApplicationHandlers provides HTTP handlers for scholarship and membership
// applications. Create is public; the rest sit behind the admin API guard.
type ApplicationHandlers struct {
	Repo *data.ApplicationRepo
}

const maxApplicationListLimit = 100

// Create handles the public intake form submission.
func (h *ApplicationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateApplicationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, app)
}

// List handles admin listing with type/status filters and pagination.
func (h *ApplicationHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxApplicationListLimit)
	opts := model.ApplicationListOptions{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("type"); v != "" {
		t := model.ApplicationType(v)
		if !t.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("unknown application type filter"),
			})
			return
		}
		opts.Type = &t
	}
	if v := r.URL.Query().Get("status"); v != "" {
		s := model.ApplicationStatus(v)
		if !s.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("unknown application status filter"),
			})
			return
		}
		opts.Status = &s
	}

	apps, err := h.Repo.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"applications": apps,
		"limit":        limit,
		"offset":       offset,
	})
}

// GetByID handles admin point reads.
func (h *ApplicationHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("application id is required"),
		})
		return
	}

	app, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrApplicationNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "application_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, app)
}

// Update handles admin status transitions (pending → approved/rejected).
func (h *ApplicationHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req model.UpdateApplicationStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.Repo.UpdateStatus(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrApplicationNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "application_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, app)
}

// Delete handles admin deletes.
func (h *ApplicationHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ok, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "application_not_found",
			Err:     errors.New("application not found"),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
