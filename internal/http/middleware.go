package http

import (
	"context"
	"crypto/subtle"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "user_id"
const userNameKey contextKey = "user_name"

// AuthMiddleware resolves the caller's identity from the X-User-ID header.
// Token issuance and validation live in an external auth collaborator; this
// trusts the identity that collaborator injected upstream.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}
		if userName := r.Header.Get("X-User-Name"); userName != "" {
			ctx = context.WithValue(ctx, userNameKey, userName)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdminKey guards admin routes with a shared key supplied in the
// X-Admin-Key header. An empty configured key disables admin access.
func RequireAdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-Admin-Key")
			if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				respondError(w, http.StatusForbidden, "admin access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}

func userNameFromContext(ctx context.Context) string {
	if userName, ok := ctx.Value(userNameKey).(string); ok {
		return userName
	}
	return "Anonymous"
}
