package srs

import (
	"github.com/hakseup/topik-api/internal/domain"
)

// Params defines all configurable parameters for the scheduling algorithm.
// The defaults reproduce the behavior the practice surfaces were built
// against, so change them only for experimentation.
type Params struct {
	// MinEaseFactor is the floor for the ease factor. There is deliberately
	// no ceiling: repeated Know answers keep growing it.
	MinEaseFactor float64

	// Ease factor adjustments per quality
	KnowEaseBonus       float64
	UnsureEasePenalty   float64
	DontKnowEasePenalty float64

	// UnsureIntervalFactor shrinks the interval on an Unsure answer.
	UnsureIntervalFactor float64

	// Graduating intervals for the first two Know answers, in days.
	FirstKnowInterval  int
	SecondKnowInterval int

	// MasteredInterval is the interval, in days, at which a Know answer
	// promotes the item to mastered.
	MasteredInterval int
}

// DefaultParams returns the standard algorithm parameters.
func DefaultParams() *Params {
	return &Params{
		MinEaseFactor:        domain.MinEaseFactor,
		KnowEaseBonus:        0.1,
		UnsureEasePenalty:    0.15,
		DontKnowEasePenalty:  0.2,
		UnsureIntervalFactor: 0.6,
		FirstKnowInterval:    1,
		SecondKnowInterval:   3,
		MasteredInterval:     domain.MasteredInterval,
	}
}
