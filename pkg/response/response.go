package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"smilematch-api/pkg/apperror"
	"smilematch-api/pkg/pagination"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta = pagination.Meta

// ErrorBody is the error payload of a failed request
type ErrorBody struct {
	Kind    apperror.Kind     `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(w http.ResponseWriter, statusCode int, message string, data interface{}, meta *Meta) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Binary writes a raw payload such as a rendered PDF
func Binary(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func Error(w http.ResponseWriter, statusCode int, kind apperror.Kind, message string) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error:   ErrorBody{Kind: kind, Message: message},
	})
}

// FromError writes err with the status of its kind. Unclassified errors
// never leak their text to the client.
func FromError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	message := "Internal server error"
	if kind != apperror.KindInternal {
		message = messageOf(err)
	}
	Error(w, apperror.HTTPStatus(kind), kind, message)
}

func messageOf(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Error: ErrorBody{
			Kind:    apperror.KindInvalidInput,
			Message: "Validation failed",
			Fields:  fields,
		},
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, apperror.KindInvalidInput, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, apperror.KindUnauthorized, message)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, apperror.KindNotFound, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, apperror.KindInternal, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, apperror.KindForbidden, message)
}
