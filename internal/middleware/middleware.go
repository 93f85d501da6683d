package middleware

import (
	"anonforum/internal/models"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
)

type Middleware func(http.Handler) http.Handler

// Identity is the resolved caller of a request. The zero value is an
// anonymous visitor.
type Identity struct {
	UserID          string
	IsAuthenticated bool
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}

// TokenValidator is the slice of the auth service the middleware needs.
type TokenValidator interface {
	GetUserFromToken(tokenString string) (*models.User, error)
}

func writeError(w http.ResponseWriter, message string, statusCode int, extra map[string]string) {
	body := map[string]string{"error": message}
	for k, v := range extra {
		body[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// AuthMiddleware resolves a Bearer token into an Identity. Requests without
// an Authorization header pass through as anonymous; handlers decide
// whether that is enough.
func AuthMiddleware(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), Identity{})))
				return
			}

			// Checking the "Bearer <token>" format
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				writeError(w, "Format de token invalide", http.StatusUnauthorized, nil)
				return
			}

			user, err := validator.GetUserFromToken(parts[1])
			if err != nil {
				writeError(w, "Token invalide ou expiré", http.StatusUnauthorized, nil)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: user.UserID, IsAuthenticated: true})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CORSMiddleware allows the single front-end origin. An empty origin allows any.
func CORSMiddleware(allowedOrigin string) Middleware {
	origins := []string{allowedOrigin}
	if allowedOrigin == "" {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})
	return c.Handler
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs method, path, status and latency. Bodies and
// identities are never logged.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

// Chain wraps h so that the first middleware listed runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
