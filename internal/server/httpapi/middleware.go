package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/edusys/eduauth/internal/common"
	"github.com/edusys/eduauth/internal/server/auth"
)

type ctxKey int

const (
	claimsKey ctxKey = iota + 1
	requestIDKey
)

// WithClaims stores verified token claims in the request context.
func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromContext retrieves the claims placed by the bearer middleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// RequestIDFromContext returns the id assigned by the requestID middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID tags each request with a fresh id and logs its outcome envelope.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		s.logger.Debug(ctx, "request", "request_id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAPIKey rejects callers whose static service key is not on the
// configured allow-list. This is a separate trust layer from the user's
// bearer token.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.security.VerifyAPIKey(r.Header.Get(common.APIKeyHeaderName)); err != nil {
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireToken checks the Bearer token and adds its claims to the context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}
		claims, err := s.security.VerifyToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}
