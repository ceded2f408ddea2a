package middleware

import (
	"net/http"
	"strings"

	"github.com/hakseup/topik-api/internal/api/shared"
)

// LearnerHeader names the header that selects the learner namespace for
// a request. Requests without it fall back to shared.DefaultLearner.
const LearnerHeader = "X-Learner"

// LearnerMiddleware resolves the learner namespace from the request and
// stores it in the context. There is no authentication behind the header:
// learner namespaces separate practice histories on a shared install, not
// identities.
func LearnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		learner := strings.TrimSpace(r.Header.Get(LearnerHeader))
		if learner == "" {
			learner = shared.DefaultLearner
		}

		ctx := shared.SetLearner(r.Context(), learner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
