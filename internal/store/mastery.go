package store

import (
	"context"

	"github.com/hakseup/topik-api/internal/domain"
)

// MasteryStore defines the interface for mastery record persistence.
//
// Records are namespaced per learner: no operation ever reads or writes
// across learner boundaries, which is what lets two learners practice on
// the same install without sharing state. Access within one learner
// session is single-writer single-reader, so implementations need no
// locking discipline beyond what their backend already provides.
type MasteryStore interface {
	// Get retrieves the mastery record for one item.
	// Returns ErrRecordNotFound if the item has never been graded.
	Get(ctx context.Context, learner, key string) (*domain.MasteryRecord, error)

	// Put saves a mastery record, inserting or overwriting as needed.
	// The write must be durable before Put returns: a grading visible to
	// the due selector is a grading that survived a process restart.
	Put(ctx context.Context, learner, key string, record *domain.MasteryRecord) error

	// AllForLearner returns every record for one learner, keyed by item
	// key. A learner with no history gets an empty map, not an error.
	AllForLearner(ctx context.Context, learner string) (map[string]*domain.MasteryRecord, error)
}
