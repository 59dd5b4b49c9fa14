package middleware

import (
	"context"
	"net/http"
	"strings"

	"smilematch-api/internal/domain/entity"
	"smilematch-api/internal/usecase"
	"smilematch-api/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SessionKey   contextKey = "session"
	RequestIDKey contextKey = "request_id"
)

// Authenticator resolves a bearer token to the caller's current session
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*usecase.Session, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
	log           *logrus.Logger
}

func NewAuthMiddleware(authenticator Authenticator, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		log:           log,
	}
}

// Authenticate rejects requests without a valid, unrevoked access token
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		m.serveWithSession(w, r, next, authHeader)
	})
}

// OptionalAuthenticate lets anonymous requests through. A header that is present must still be valid.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		m.serveWithSession(w, r, next, authHeader)
	})
}

func (m *AuthMiddleware) serveWithSession(w http.ResponseWriter, r *http.Request, next http.Handler, authHeader string) {
	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		response.Unauthorized(w, "Invalid authorization header format")
		return
	}

	session, err := m.authenticator.Authenticate(r.Context(), parts[1])
	if err != nil {
		m.log.WithField("request_id", RequestIDFromContext(r.Context())).Debugf("Authentication failed: %v", err)
		response.FromError(w, err)
		return
	}

	next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), *session)))
}

// WithSession stores the authenticated session in ctx
func WithSession(ctx context.Context, session usecase.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// SessionFromContext extracts the session set by AuthMiddleware
func SessionFromContext(ctx context.Context) (usecase.Session, bool) {
	session, ok := ctx.Value(SessionKey).(usecase.Session)
	return session, ok
}

// IdentityFromContext returns the caller identity, or the zero identity for anonymous requests
func IdentityFromContext(ctx context.Context) entity.Identity {
	session, _ := SessionFromContext(ctx)
	return session.Identity
}

// RequestIDFromContext extracts the request id set by RequestLogger
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}
