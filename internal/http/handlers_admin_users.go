package httpx

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/dayanisma-dernegi/portal/internal/data"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// AdminUserHandlers provides HTTP handlers for managing admin accounts.
// Every route is SUPER_ADMIN-only; the role check happens in the route guard.
type AdminUserHandlers struct {
	Repo *data.AdminUserRepo
}

const maxAdminUserListLimit = 100

// Create handles new admin account creation. The password is hashed here so
// plaintext never reaches the data layer.
func (h *AdminUserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAdminUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	user, err := h.Repo.Create(r.Context(), data.CreateAdminUserParams{
		Req:          &req,
		PasswordHash: string(hash),
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAdminEmailExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// List handles paginated listing of admin accounts.
func (h *AdminUserHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAdminUserListLimit)

	users, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles point reads of an admin account.
func (h *AdminUserHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("admin user id is required"),
		})
		return
	}

	user, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrAdminUserNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "admin_user_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Update handles name/role/is_active changes. A role change or deactivation
// takes effect for live sessions on their next whoami reconciliation.
func (h *AdminUserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req model.UpdateAdminUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Repo.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAdminUserNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "admin_user_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Delete handles admin account deletion.
func (h *AdminUserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ok, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "admin_user_not_found",
			Err:     errors.New("admin user not found"),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
