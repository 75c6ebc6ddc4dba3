package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"neighborly/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SubjectContextKey ContextKey = "subject"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens *security.TokenIssuer
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenIssuer) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid Bearer token.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing bearer token", "", nil)
			return
		}

		subject, err := m.tokens.Validate(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", "Token validation failed", err)
			return
		}

		ctx := context.WithValue(r.Context(), SubjectContextKey, subject)
		next(w, r.WithContext(ctx))
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
