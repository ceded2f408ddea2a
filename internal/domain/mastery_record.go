package domain

import (
	"errors"
	"time"
)

// Status represents where an item sits in the learning lifecycle.
type Status string

// Possible status values. StatusNew is never persisted: the absence of a
// record is semantically equivalent to a new item that is always due.
const (
	StatusNew       Status = "new"
	StatusLearning  Status = "learning"
	StatusReviewing Status = "reviewing"
	StatusMastered  Status = "mastered"
)

// Common validation errors for MasteryRecord
var (
	ErrInvalidStatus      = errors.New("invalid mastery status")
	ErrInvalidInterval    = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor  = errors.New("ease factor must be at least 1.3")
	ErrMasteredTooSoon    = errors.New("mastered status requires an interval of at least 14 days")
	ErrMissingReviewDate  = errors.New("next review date cannot be zero")
)

// MinEaseFactor is the floor below which the ease factor never drops.
const MinEaseFactor = 1.3

// MasteredInterval is the minimum interval, in days, for an item to be
// considered mastered.
const MasteredInterval = 14

// MasteryRecord tracks a learner's spaced repetition state for a single
// vocabulary item. One record exists per distinct item key, created on the
// first grading and mutated on every grading after that; it is never
// deleted. Records are keyed per learner identity, so two learners never
// share a record.
//
// Dates are calendar dates: NextReview and LastSeen are stored truncated
// to midnight UTC with no meaningful time component.
type MasteryRecord struct {
	Status      Status    `json:"status"`
	Interval    int       `json:"interval"`
	EaseFactor  float64   `json:"easeFactor"`
	NextReview  time.Time `json:"nextReview"`
	ReviewCount int       `json:"reviewCount"`
	LastSeen    time.Time `json:"lastSeen,omitempty"`
}

// NewMasteryRecord creates the initial record state for an item that has
// never been graded: always due, default ease factor, zero interval.
func NewMasteryRecord(now time.Time) *MasteryRecord {
	return &MasteryRecord{
		Status:      StatusNew,
		Interval:    0,
		EaseFactor:  2.5,
		NextReview:  DateOnly(now),
		ReviewCount: 0,
		LastSeen:    time.Time{},
	}
}

// Validate checks if the MasteryRecord has valid data.
// Returns an error if any field fails validation.
func (r *MasteryRecord) Validate() error {
	switch r.Status {
	case StatusNew, StatusLearning, StatusReviewing, StatusMastered:
	default:
		return ErrInvalidStatus
	}

	if r.Interval < 0 {
		return ErrInvalidInterval
	}

	if r.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	if r.Status == StatusMastered && r.Interval < MasteredInterval {
		return ErrMasteredTooSoon
	}

	if r.NextReview.IsZero() {
		return ErrMissingReviewDate
	}

	return nil
}

// Clone returns an independent copy of the record. Scheduler updates
// follow an immutable pattern: they clone, then modify the clone.
func (r *MasteryRecord) Clone() *MasteryRecord {
	clone := *r
	return &clone
}

// DateOnly truncates t to its calendar date in UTC. All scheduling
// comparisons operate on these day-granularity values, which is what makes
// "never due again on the same day it was graded" hold.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
