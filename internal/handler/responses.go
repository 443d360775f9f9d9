package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/logger"
	"github.com/hollowdeep/garrison/internal/storage"
)

// ErrorResponse represents an error response. Code is a stable machine-readable
// string; Error is the human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Stable error codes for the API.
const (
	CodeUnauthenticated  = "unauthenticated"
	CodePermissionDenied = "permission_denied"
	CodeInvalidArgument  = "invalid_argument"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeInternal         = "internal"
)

// User-facing error messages
const (
	ErrMsgInvalidRequest        = "Invalid request. Please check your inputs."
	ErrMsgInvalidRequestSummary = "Validation failed"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgConflict              = "Concurrent update detected. Please retry."
)

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode through a pooled buffer to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response with a stable code
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// mapServiceError converts service errors to HTTP status codes, stable codes
// and user-facing messages.
func mapServiceError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthenticated, "Caller identity required"
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, CodePermissionDenied, "Permission denied"
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, CodeInvalidArgument, err.Error()
	case errors.Is(err, domain.ErrUnitNotFound):
		return http.StatusNotFound, CodeNotFound, "Unit not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, CodeNotFound, "Item not found"
	case errors.Is(err, storage.ErrVersionConflict):
		return http.StatusConflict, CodeConflict, ErrMsgConflict
	case errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, CodeInternal, ErrMsgGenericServerError
	}
	return http.StatusInternalServerError, CodeInternal, ErrMsgGenericServerError
}

// respondServiceError logs and writes the mapped error response for a failed
// service call.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, code, message := mapServiceError(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, code, message)
}
