// Package role provides the authorization middleware. It assumes the auth
// middleware has already attached a user to the context; a missing user here
// is a wiring bug surfaced as 401, never silently passed.
package role

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	"github.com/dhanuj00123/HeadlessCms/internal/platform/middleware/auth"
)

// Require allows the request through only if the authenticated user's role is
// a member of the given set. Membership is the whole check: there is no role
// hierarchy, so a route open to admins must name admin explicitly even where
// editor is also listed.
func Require(logger *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user := auth.UserFromContext(ctx)
			if user == nil {
				logger.ErrorContext(ctx, "role check reached without authenticated user")
				writeJSONError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			if !user.Role.IsValid() {
				logger.WarnContext(ctx, "user role missing or outside closed set",
					"user_id", user.ID.String(),
					"role", user.Role.String(),
				)
				writeJSONError(w, http.StatusUnauthorized, "User role not defined")
				return
			}

			if !allowed[user.Role] {
				logger.WarnContext(ctx, "insufficient role",
					"user_id", user.ID.String(),
					"role", user.Role.String(),
				)
				writeJSONError(w, http.StatusForbidden, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"success":false,"message":%q}`, message))
}
