// Package auth provides the authentication middleware. It runs before any
// role check or business handler: extract bearer token, verify it, then
// re-resolve the current user record so downstream code never acts on the
// role/email snapshot embedded in the token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	userstore "github.com/dhanuj00123/HeadlessCms/internal/identity/store/user"
	"github.com/dhanuj00123/HeadlessCms/internal/identity/token"
)

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

type contextKeyUser struct{}

// ContextKeyUser is exported for tests that need context.WithValue directly.
var ContextKeyUser = contextKeyUser{}

// UserFromContext retrieves the authenticated user attached by RequireAuth.
func UserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RequireAuth enforces `Authorization: Bearer <token>`. On a valid token it
// re-resolves the current user by the token subject and attaches it to the
// request context. One directory read per request buys up-to-date role and
// identity data; role changes bite immediately instead of at token expiry.
func RequireAuth(verifier TokenVerifier, users userstore.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			raw, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || raw == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token")
				writeJSONError(w, http.StatusUnauthorized, "Please provide a valid authentication token")
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token", "error", err)
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			subject, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed subject", "error", err)
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user, err := users.FindByID(ctx, subject)
			if err != nil {
				if errors.Is(err, userstore.ErrNotFound) {
					logger.WarnContext(ctx, "token subject no longer exists", "user_id", subject.String())
					writeJSONError(w, http.StatusNotFound, "User not found")
					return
				}
				logger.ErrorContext(ctx, "failed to resolve token subject", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx = context.WithValue(ctx, ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"success":false,"message":%q}`, message))
}
