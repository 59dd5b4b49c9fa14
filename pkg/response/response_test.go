package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"smilematch-api/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   struct {
		Kind    string            `json:"kind"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFromError_KindToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{apperror.New(apperror.KindConflict, "Time slot is not available"), http.StatusConflict, "conflict"},
		{fmt.Errorf("wrapped: %w", apperror.New(apperror.KindForbidden, "nope")), http.StatusForbidden, "forbidden"},
		{apperror.New(apperror.KindUnavailable, "storage unavailable"), http.StatusServiceUnavailable, "unavailable"},
		{errors.New("pq: secret detail"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		FromError(rec, tc.err)

		assert.Equal(t, tc.status, rec.Code)
		body := decode(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, tc.kind, body.Error.Kind)
	}
}

func TestFromError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, errors.New("pq: relation users does not exist"))

	body := decode(t, rec)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestFromError_UsesAppErrorMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, fmt.Errorf("ctx: %w", apperror.New(apperror.KindNotFound, "Doctor not found")))

	assert.Equal(t, "Doctor not found", decode(t, rec).Message)
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"email": "email is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "invalid_input", body.Error.Kind)
	assert.Equal(t, "email is required", body.Error.Fields["email"])
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, http.StatusOK, "ok", []int{1}, &Meta{Total: 11, Page: 2, Limit: 10, TotalPages: 2})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"total_pages":2`)
}

func TestBinary(t *testing.T) {
	rec := httptest.NewRecorder()
	Binary(rec, "application/pdf", "report.pdf", []byte("%PDF-1.3"))

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report.pdf")
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}
