package srs

import (
	"math"
	"time"

	"github.com/hakseup/topik-api/internal/domain"
)

// clampEaseFactor applies the configured floor to an ease factor.
// There is no upper bound.
func clampEaseFactor(ef float64, params *Params) float64 {
	if ef < params.MinEaseFactor {
		return params.MinEaseFactor
	}
	return ef
}

// gradeRecord computes the next mastery record for one grading. It is a
// pure function of (record, quality, now): no randomness, no clock reads,
// no I/O. A nil record means the item has never been graded and is
// initialized to the always-due default state first.
//
// The interval branch for Know uses the ease factor as it was before this
// grading; the +0.1 bonus only affects future reviews. Unsure shrinks the
// interval but never below one day, and DontKnow resets it outright. In
// every case the next review lands at least one calendar day out, so an
// item is never due again on the day it was just graded.
func gradeRecord(
	record *domain.MasteryRecord,
	quality domain.Quality,
	now time.Time,
	params *Params,
) *domain.MasteryRecord {
	var next *domain.MasteryRecord
	if record == nil {
		next = domain.NewMasteryRecord(now)
	} else {
		next = record.Clone()
	}

	today := domain.DateOnly(now)
	next.LastSeen = today
	next.ReviewCount++

	switch quality {
	case domain.QualityKnow:
		switch next.Interval {
		case 0:
			next.Interval = params.FirstKnowInterval
		case 1:
			next.Interval = params.SecondKnowInterval
		default:
			next.Interval = int(math.Round(float64(next.Interval) * next.EaseFactor))
		}
		next.EaseFactor = clampEaseFactor(next.EaseFactor+params.KnowEaseBonus, params)
		if next.Interval >= params.MasteredInterval {
			next.Status = domain.StatusMastered
		} else {
			next.Status = domain.StatusReviewing
		}

	case domain.QualityUnsure:
		shrunk := int(math.Round(float64(next.Interval) * params.UnsureIntervalFactor))
		if shrunk < 1 {
			shrunk = 1
		}
		next.Interval = shrunk
		next.EaseFactor = clampEaseFactor(next.EaseFactor-params.UnsureEasePenalty, params)
		next.Status = domain.StatusLearning

	case domain.QualityDontKnow:
		next.Interval = 0
		next.EaseFactor = clampEaseFactor(next.EaseFactor-params.DontKnowEasePenalty, params)
		next.Status = domain.StatusLearning
	}

	days := next.Interval
	if days < 1 {
		days = 1
	}
	next.NextReview = today.AddDate(0, 0, days)

	return next
}
