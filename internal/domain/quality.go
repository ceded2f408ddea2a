package domain

import "errors"

// Quality represents the learner's self- or auto-graded recall signal
// for a single grading. It is a closed three-way set: values outside it
// are a caller contract violation and must be rejected at the boundary
// before they reach the scheduler.
type Quality string

// Possible quality values
const (
	QualityKnow     Quality = "know"
	QualityUnsure   Quality = "unsure"
	QualityDontKnow Quality = "dont_know"
)

// ErrInvalidQuality is returned when a quality value outside the closed
// set is passed across an API or service boundary.
var ErrInvalidQuality = errors.New("invalid quality value")

// Valid reports whether q is one of the three allowed quality values.
func (q Quality) Valid() bool {
	switch q {
	case QualityKnow, QualityUnsure, QualityDontKnow:
		return true
	default:
		return false
	}
}

// ParseQuality converts a wire-level string into a Quality.
// Returns ErrInvalidQuality for anything outside the closed set.
func ParseQuality(s string) (Quality, error) {
	q := Quality(s)
	if !q.Valid() {
		return "", ErrInvalidQuality
	}
	return q, nil
}
