package httpx

import (
	"errors"
	"net/http"

	"github.com/dayanisma-dernegi/portal/internal/data"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// DonationHandlers provides HTTP handlers for donation intents. Create is
// public; list/get/delete are admin-only.
type DonationHandlers struct {
	Repo *data.DonationRepo
}

const maxDonationListLimit = 100

// Create handles the public donation intent form.
func (h *DonationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDonationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	donation, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, donation)
}

// List handles admin listing with pagination.
func (h *DonationHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxDonationListLimit)

	donations, err := h.Repo.List(r.Context(), model.DonationListOptions{Limit: limit, Offset: offset})
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"donations": donations,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetByID handles admin point reads.
func (h *DonationHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("donation id is required"),
		})
		return
	}

	donation, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrDonationNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "donation_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, donation)
}

// Delete handles admin deletes of donation records.
func (h *DonationHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ok, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "donation_not_found",
			Err:     errors.New("donation not found"),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
