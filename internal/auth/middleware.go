package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/codecafelab/content-service/internal/httpx"
)

type contextKey string

const subjectKey contextKey = "auth_subject"

// Subject returns the authenticated email stored by Middleware, or ""
// when the request was not authenticated.
func Subject(ctx context.Context) string {
	if s, ok := ctx.Value(subjectKey).(string); ok {
		return s
	}
	return ""
}

// Middleware returns an httpx.Middleware that rejects requests without a
// valid bearer token.
func Middleware(a *Authenticator) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized",
					"missing authorization header", nil)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized",
					"authorization header must be a bearer token", nil)
				return
			}

			subject, err := a.Verify(token)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized",
					"invalid or expired token", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey, subject)))
		})
	}
}
