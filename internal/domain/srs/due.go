package srs

import (
	"time"

	"github.com/samber/lo"

	"github.com/hakseup/topik-api/internal/domain"
)

// IsDue reports whether an item with the given record should be presented
// today. A nil record (never graded) is always due. The check is
// independent of status: even a mastered record becomes due again once its
// date passes.
func IsDue(record *domain.MasteryRecord, today time.Time) bool {
	if record == nil {
		return true
	}
	return !record.NextReview.After(domain.DateOnly(today))
}

// DueSet filters items down to those due today, preserving input order.
// Records are looked up by item key; items without a record are due.
func DueSet(
	items []domain.Item,
	records map[string]*domain.MasteryRecord,
	today time.Time,
) []domain.Item {
	day := domain.DateOnly(today)
	return lo.Filter(items, func(item domain.Item, _ int) bool {
		return IsDue(records[item.Key], day)
	})
}

// Tally holds aggregate mastery counts for a pool of items. The four
// status counts always sum to Total.
type Tally struct {
	Total     int `json:"total"`
	Mastered  int `json:"mastered"`
	Learning  int `json:"learning"`
	ReviewDue int `json:"reviewDue"`
	Unseen    int `json:"unseen"`
}

// Stats computes the mastery tally for a pool of items. A reviewing item
// that is not yet due counts as mastered: the progress displays treat
// "scheduled and not due" as known, and downstream surfaces rely on that,
// so it is intentional that the bucket does not mirror the stored status.
func Stats(
	items []domain.Item,
	records map[string]*domain.MasteryRecord,
	today time.Time,
) Tally {
	day := domain.DateOnly(today)
	tally := Tally{Total: len(items)}

	for _, item := range items {
		record, ok := records[item.Key]
		if !ok || record == nil {
			tally.Unseen++
			continue
		}

		switch record.Status {
		case domain.StatusMastered:
			tally.Mastered++
		case domain.StatusLearning:
			tally.Learning++
		case domain.StatusReviewing:
			if IsDue(record, day) {
				tally.ReviewDue++
			} else {
				tally.Mastered++
			}
		default:
			tally.Unseen++
		}
	}

	return tally
}
