package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrRecordNotFound is returned when no mastery record exists for the
	// requested learner and item key. Callers treat this as "never graded":
	// it maps to the new status and the item is always due.
	ErrRecordNotFound = errors.New("mastery record not found")

	// ErrStoreUnavailable is returned when the persistence backend fails a
	// read or write. The wrapped error carries the driver detail. A grading
	// whose Put fails with this error has NOT been durably recorded; the
	// caller may keep using the in-memory record for the rest of the
	// session but must not assume durability.
	ErrStoreUnavailable = errors.New("mastery store unavailable")
)
