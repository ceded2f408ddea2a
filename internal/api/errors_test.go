package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/service/practice"
	"github.com/hakseup/topik-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"item not found", practice.ErrItemNotFound, http.StatusNotFound},
		{"session not found", practice.ErrSessionNotFound, http.StatusNotFound},
		{"record not found", store.ErrRecordNotFound, http.StatusNotFound},
		{"invalid quality", domain.ErrInvalidQuality, http.StatusBadRequest},
		{"session complete", practice.ErrSessionComplete, http.StatusConflict},
		{"mode mismatch", practice.ErrModeMismatch, http.StatusConflict},
		{"wrapped sentinel", fmt.Errorf("context: %w", practice.ErrItemNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"store unavailable", store.ErrStoreUnavailable, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	// Sentinel errors get a specific message.
	assert.Equal(t, "Vocabulary item not found", GetSafeErrorMessage(practice.ErrItemNotFound))
	assert.Equal(t, "No active session", GetSafeErrorMessage(practice.ErrSessionNotFound))

	// Unknown errors never leak their text.
	message := GetSafeErrorMessage(errors.New("pq: relation does not exist"))
	assert.Equal(t, "An unexpected error occurred", message)
	assert.NotContains(t, message, "pq:")
}
