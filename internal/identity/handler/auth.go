// Package handler exposes the identity service over HTTP. Routes are
// registered on a chi router; authentication and authorization gates are
// composed in the router, not here.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/service"
)

// SessionCookie carries the handshake session id between login and logout.
const SessionCookie = "cms_session"

// Handler serves the auth and user routes.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterAuth mounts the public authentication routes.
func (h *Handler) RegisterAuth(r chi.Router) {
	r.Get("/google", h.handleLogin)
	r.Get("/google/callback", h.handleCallback)
	r.Get("/logout", h.handleLogout)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	start, err := h.svc.InitiateLogin(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    start.Session.ID.String(),
		Path:     "/",
		Expires:  start.Session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, start.AuthURL, http.StatusFound)
}

type callbackResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.HandleCallback(r.Context(), q.Get("state"), q.Get("code"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, callbackResponse{
		Success: true,
		Token:   res.Token,
		User:    toUserPayload(res.User),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if sessionID, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			if err := h.svc.Logout(r.Context(), sessionID); err != nil {
				writeError(w, err)
				return
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Logged out successfully"})
}
