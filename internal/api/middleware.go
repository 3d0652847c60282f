package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/session"
)

type contextKey int

const correlationIDKey contextKey = iota

// Identity headers asserted by the upstream auth gateway.
const (
	HeaderActorID    = "X-Actor-Id"
	HeaderActorEmail = "X-Actor-Email"
)

// CorrelationID returns the correlation ID from the request context.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// RoleResolver resolves the role of an authenticated actor.
type RoleResolver interface {
	Resolve(ctx context.Context, actorID, email string) domain.Role
}

// Recovery returns middleware that recovers from panics and returns a 500
// error envelope.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"path", r.URL.Path,
					)
					WriteError(w, http.StatusInternalServerError,
						NewInternalError("Internal Server Error", CorrelationID(r.Context())))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID returns middleware that generates a UUID correlation ID, stores
// it in the request context, and adds it to the response headers.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			ctx := context.WithValue(r.Context(), correlationIDKey, id)
			w.Header().Set("X-Correlation-Id", id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Auth returns middleware that authenticates API requests. When apiKey is
// non-empty the Bearer token must match it. The actor identity comes from
// the gateway headers; its role is resolved once and stored as the request
// session. Paths outside /api/ pass through untouched.
func Auth(apiKey string, roles RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}
			corrID := CorrelationID(r.Context())

			if apiKey != "" {
				header := r.Header.Get("Authorization")
				token := strings.TrimPrefix(header, "Bearer ")
				if header == "" || token != apiKey {
					WriteError(w, http.StatusUnauthorized,
						NewUnauthorizedError("Invalid or missing API key", corrID))
					return
				}
			}

			actorID := strings.TrimSpace(r.Header.Get(HeaderActorID))
			email := strings.TrimSpace(r.Header.Get(HeaderActorEmail))
			if actorID == "" {
				WriteError(w, http.StatusUnauthorized,
					NewUnauthorizedError("Not signed in", corrID))
				return
			}

			s := session.Session{ActorID: actorID, Email: email, Role: domain.RoleSalesman}
			if roles != nil {
				s.Role = roles.Resolve(r.Context(), actorID, email)
			}
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// RequireSession returns the request session, writing a 401 when there is
// none.
func RequireSession(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized,
			NewUnauthorizedError("Not signed in", CorrelationID(r.Context())))
	}
	return s, ok
}

// RequireAdmin is RequireSession restricted to admins; other actors get 403.
func RequireAdmin(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	s, ok := RequireSession(w, r)
	if !ok {
		return s, false
	}
	if !s.IsAdmin() {
		WriteError(w, http.StatusForbidden,
			NewForbiddenError("Admin access required", CorrelationID(r.Context())))
		return s, false
	}
	return s, true
}

// JSONContentType returns middleware that defaults the Content-Type of API
// responses to application/json. Handlers serving files override it.
func JSONContentType() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	code int
}

// WriteHeader captures the status code and delegates to the wrapped writer.
func (sw *statusWriter) WriteHeader(code int) {
	sw.code = code
	sw.ResponseWriter.WriteHeader(code)
}

// Flush lets event streams flush through the wrapper.
func (sw *statusWriter) Flush() {
	if f, ok := sw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// Logging returns middleware that logs each request with slog.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sw, r)
			slog.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.code,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// Chain applies middleware in order so that the first middleware is the
// outermost handler.
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
