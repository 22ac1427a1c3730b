package httpx

import (
	"errors"
	"net/http"

	"github.com/dayanisma-dernegi/portal/internal/data"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
	"github.com/dayanisma-dernegi/portal/internal/service"
)

// SettingHandlers provides HTTP handlers for the key→JSON settings store.
// Public reads go through the cached service path.
type SettingHandlers struct {
	Svc *service.SettingsService
}

// ListPublic handles GET /api/settings: public keys only, cache-backed.
func (h *SettingHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Svc.ListPublic(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// List handles the admin listing of every setting, private keys included.
func (h *SettingHandlers) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// Get handles admin point reads by key.
func (h *SettingHandlers) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	setting, err := h.Svc.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, data.ErrSettingNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "setting_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, setting)
}

// Upsert handles PUT /api/admin/settings/{key}: create or replace the
// document stored under the key.
func (h *SettingHandlers) Upsert(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("setting key is required"),
		})
		return
	}

	var req model.UpsertSettingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	setting, err := h.Svc.Upsert(r.Context(), key, &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "upsert_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, setting)
}

// Delete handles admin deletes by key.
func (h *SettingHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	ok, err := h.Svc.Delete(r.Context(), key)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "setting_not_found",
			Err:     errors.New("setting not found"),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
