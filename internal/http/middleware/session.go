package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/platform/auth"
	"github.com/veritaslogistics/veritas-api/internal/store"
	"github.com/veritaslogistics/veritas-api/pkg/logger"
)

type contextKey string

const userIDKey contextKey = "auth_user_id"

// UserID returns the authenticated user id placed in the context by
// SessionGuard, or "" on public routes.
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// SessionGuard protects every route whose path does not start with one of
// the configured public prefixes. A request passes when it carries a valid
// bearer token AND the store's active session belongs to the same user; the
// session record stays authoritative, the token just names the caller.
func SessionGuard(userStore *store.UserStore, secret string, publicPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range publicPaths {
				if r.URL.Path == prefix || strings.HasPrefix(r.URL.Path, prefix+"/") {
					next.ServeHTTP(w, r)
					return
				}
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.Unauthorized(w, "missing bearer token")
				return
			}
			claims, err := auth.Parse(token, secret)
			if err != nil {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			session, err := userStore.GetSession(r.Context())
			if err != nil {
				response.StorageUnavailable(w)
				return
			}
			if session == nil || session.UserID != claims.Sub {
				response.Unauthorized(w, "no active session")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, session.UserID)
			ctx = context.WithValue(ctx, logger.UserIDKey, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
