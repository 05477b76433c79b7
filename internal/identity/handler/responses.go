package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	dErrors "github.com/dhanuj00123/HeadlessCms/pkg/domainerrors"
)

// Every response uses the same envelope: {success:true, ...} or
// {success:false, message}. Internal distinctions never reach the wire.

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// userPayload is the public shape of a user. The provider id stays private.
type userPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

func toUserPayload(u *models.User) userPayload {
	return userPayload{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role.String(),
		Avatar: u.Avatar,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	writeJSON(w, dErrors.HTTPStatus(code), errorResponse{Message: dErrors.MessageOf(err)})
}
