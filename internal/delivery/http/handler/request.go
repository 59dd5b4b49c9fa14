package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"smilematch-api/pkg/apperror"
	"smilematch-api/pkg/response"
	"smilematch-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies; smile photos arrive base64-encoded
const maxBodyBytes = 10 << 20

// decodeAndValidate reads a JSON body into dst and validates it.
// It writes the error response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, apperror.KindInvalidInput, "Request body too large")
			return false
		}
		response.BadRequest(w, "Invalid request body")
		return false
	}

	if err := v.Validate(dst); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

// pathUUID parses a UUID route variable, writing 400 when it is malformed
func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
