package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/service"
	"github.com/dhanuj00123/HeadlessCms/internal/platform/middleware/auth"
	dErrors "github.com/dhanuj00123/HeadlessCms/pkg/domainerrors"
)

// RegisterUsers mounts the protected user routes. The caller composes the
// authentication and role gates around these; the handlers assume a user is
// already on the context.
func (h *Handler) RegisterUsers(r chi.Router) {
	r.Get("/profile", h.handleGetProfile)
	r.Patch("/profile", h.handleUpdateProfile)
}

// RegisterAdmin mounts the admin-only user management routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/", h.handleListUsers)
	r.Patch("/{userId}/role", h.handleUpdateRole)
	r.Delete("/{userId}", h.handleDeleteUser)
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	current := auth.UserFromContext(r.Context())

	user, err := h.svc.Profile(r.Context(), current.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: user})
}

// profileUpdateFields is the PATCH allowlist. Any other key in the body is a
// validation error and nothing is written.
var profileUpdateFields = map[string]bool{"name": true, "avatar": true}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(r.Context(), "malformed profile update body", "error", err)
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	for field := range body {
		if !profileUpdateFields[field] {
			writeError(w, dErrors.New(dErrors.CodeValidation, "Invalid updates"))
			return
		}
	}

	var update service.ProfileUpdate
	if raw, ok := body["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			writeError(w, dErrors.New(dErrors.CodeValidation, "Invalid updates"))
			return
		}
		update.Name = &name
	}
	if raw, ok := body["avatar"]; ok {
		var avatar string
		if err := json.Unmarshal(raw, &avatar); err != nil {
			writeError(w, dErrors.New(dErrors.CodeValidation, "Invalid updates"))
			return
		}
		update.Avatar = &avatar
	}

	current := auth.UserFromContext(r.Context())
	user, err := h.svc.UpdateProfile(r.Context(), current.ID, update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: user})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: users})
}

type roleUpdateRequest struct {
	Role string `json:"role"`
}

func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req roleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "malformed role update body", "error", err)
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, err := h.svc.UpdateUserRole(r.Context(), chi.URLParam(r, "userId"), req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: user})
}

type deletedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.DeleteUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "User deleted successfully",
		Data:    deletedUser{ID: user.ID.String(), Email: user.Email},
	})
}
