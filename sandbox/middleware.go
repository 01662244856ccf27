package sandbox

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/session"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// SessionKey is the context key for the authenticated session.
const SessionKey ContextKey = "session"

// AuthMiddleware resolves the access token to a session and adds it to the
// request context.
type AuthMiddleware struct {
	sessions *session.Manager
	tokens   *session.TokenCodec
	logger   logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware.
func NewAuthMiddleware(sessions *session.Manager, tokens *session.TokenCodec, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		tokens:   tokens,
		logger:   log,
	}
}

// AccessToken returns the token carried by r. The bearer header wins over
// the bare accesstoken header.
func AccessToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); token != "" {
			return token
		}
	}
	return strings.TrimSpace(r.Header.Get("accesstoken"))
}

// Handler wraps an HTTP handler with authentication.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token := AccessToken(r)
		if token == "" {
			m.logger.Warn(r.Context(), "missing access token", map[string]interface{}{
				"path": r.URL.Path,
			})
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		sessionID, err := m.tokens.Decode(token)
		if err != nil {
			m.logger.Warn(r.Context(), "invalid access token", map[string]interface{}{
				"path": r.URL.Path,
			})
			respondError(w, http.StatusUnauthorized, "invalid access token")
			return
		}

		sess, err := m.sessions.Get(sessionID)
		if err != nil {
			m.logger.Warn(r.Context(), "invalid or expired session", map[string]interface{}{
				"error": err.Error(),
				"path":  r.URL.Path,
			})
			respondError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSession extracts the session from the request context.
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	return sess, ok
}

// writeRoles may change data. Employees can only read.
var writeRoles = []auth.Role{auth.RoleAdmin, auth.RoleManager}

// RequireWriteRole checks that the session's role may change data.
// Returns false after writing a 401 or 403 response.
func RequireWriteRole(w http.ResponseWriter, r *http.Request) bool {
	sess, ok := GetSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	creds := auth.Static{AccessToken: sess.ID, UserRole: sess.Role}
	if err := auth.RequireRole(creds, writeRoles...); err != nil {
		respondError(w, http.StatusForbidden, "write access required")
		return false
	}
	return true
}

// WriteRoleMiddleware enforces RequireWriteRole for state-mutating methods.
// GET, HEAD and OPTIONS pass through.
func WriteRoleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
			if !RequireWriteRole(w, r) {
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Recovery turns a handler panic into a 500 envelope.
func Recovery(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error(r.Context(), "panic recovered", map[string]interface{}{
						"panic": fmt.Sprint(rec),
						"path":  r.URL.Path,
						"stack": string(debug.Stack()),
					})
					respondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
