package api

import (
	"errors"
	"net/http"

	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/service/practice"
	"github.com/hakseup/topik-api/internal/store"
)

// MapErrorToStatusCode maps service and domain errors to HTTP status
// codes. Unknown errors are treated as internal server errors.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, practice.ErrItemNotFound),
		errors.Is(err, practice.ErrSessionNotFound),
		errors.Is(err, store.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuality):
		return http.StatusBadRequest
	case errors.Is(err, practice.ErrSessionComplete),
		errors.Is(err, practice.ErrModeMismatch):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for an error. The
// raw error text never reaches the client; only known sentinel errors get
// a specific message.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, practice.ErrItemNotFound):
		return "Vocabulary item not found"
	case errors.Is(err, practice.ErrSessionNotFound):
		return "No active session"
	case errors.Is(err, store.ErrRecordNotFound):
		return "Mastery record not found"
	case errors.Is(err, domain.ErrInvalidQuality):
		return "Invalid quality value"
	case errors.Is(err, practice.ErrSessionComplete):
		return "Session already complete"
	case errors.Is(err, practice.ErrModeMismatch):
		return "Operation not supported for this session mode"
	default:
		return "An unexpected error occurred"
	}
}
