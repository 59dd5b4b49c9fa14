package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smilematch-api/internal/domain/entity"
	"smilematch-api/internal/usecase"
	"smilematch-api/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	sessions map[string]usecase.Session
}

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*usecase.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, usecase.ErrInvalidToken
	}
	return &session, nil
}

var (
	doctorSession  = usecase.Session{Identity: entity.Identity{UserID: uuid.New(), Role: entity.RoleDoctor}, TokenID: "doctor-token-id"}
	patientSession = usecase.Session{Identity: entity.Identity{UserID: uuid.New(), Role: entity.RolePatient}, TokenID: "patient-token-id"}
)

func newTestAuthMiddleware() *AuthMiddleware {
	log, _ := test.NewNullLogger()
	return NewAuthMiddleware(fakeAuthenticator{sessions: map[string]usecase.Session{
		"doctor-token":  doctorSession,
		"patient-token": patientSession,
	}}, log)
}

// identityEcho writes the resolved identity role, or "anonymous"
var identityEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity.IsZero() {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(identity.Role))
})

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticate(t *testing.T) {
	h := newTestAuthMiddleware().Authenticate(identityEcho)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer doctor-token", wantStatus: http.StatusOK, wantBody: "doctor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.header)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
				return
			}
			body := decodeError(t, rec)
			assert.False(t, body.Success)
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	h := newTestAuthMiddleware().OptionalAuthenticate(identityEcho)

	rec := serve(h, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())

	rec = serve(h, "Bearer patient-token")
	assert.Equal(t, "patient", rec.Body.String())

	rec = serve(h, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	auth := newTestAuthMiddleware()
	h := auth.Authenticate(RequireDoctor(identityEcho))

	assert.Equal(t, http.StatusOK, serve(h, "Bearer doctor-token").Code)
	assert.Equal(t, http.StatusForbidden, serve(h, "Bearer patient-token").Code)

	// without a session in context
	rec := serve(RequireAdmin(identityEcho), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionFromContext(t *testing.T) {
	ctx := WithSession(context.Background(), doctorSession)

	session, ok := SessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "doctor-token-id", session.TokenID)

	_, ok = SessionFromContext(context.Background())
	assert.False(t, ok)
}

func TestCORSMiddleware(t *testing.T) {
	h := NewCORSMiddleware("").Handle(identityEcho)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Body.String())

	rec = serve(NewCORSMiddleware("https://smilematch.example").Handle(identityEcho), "")
	assert.Equal(t, "https://smilematch.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()

	var seenID string
	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := serve(h, "")

	require.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rec.Header().Get(RequestIDHeader))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, http.StatusNotFound, entry.Data["status"])
	assert.Equal(t, seenID, entry.Data["request_id"])
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := RequestLogger(log)(identityEcho)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestRecovery(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := serve(h, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "boom", hook.LastEntry().Data["panic"])
}
