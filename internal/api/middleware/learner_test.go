package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hakseup/topik-api/internal/api/shared"
)

func TestLearnerMiddleware(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		header string
		want   string
	}{
		{"header present", "hana", "hana"},
		{"header missing", "", shared.DefaultLearner},
		{"header blank", "   ", shared.DefaultLearner},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got string
			handler := LearnerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = shared.GetLearner(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(LearnerHeader, tc.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTraceMiddlewareSetsTraceID(t *testing.T) {
	t.Parallel()

	var got string
	handler := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = shared.GetTraceID(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, got, 2*shared.TraceIDLength)
}
