package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hakseup/topik-api/internal/domain"
)

var dueToday = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func recordDue(offset int, status domain.Status, interval int) *domain.MasteryRecord {
	return &domain.MasteryRecord{
		Status:      status,
		Interval:    interval,
		EaseFactor:  2.5,
		NextReview:  domain.DateOnly(dueToday).AddDate(0, 0, offset),
		ReviewCount: 1,
		LastSeen:    domain.DateOnly(dueToday).AddDate(0, 0, -1),
	}
}

func TestIsDue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		record *domain.MasteryRecord
		want   bool
	}{
		{
			name:   "absent record is always due",
			record: nil,
			want:   true,
		},
		{
			name:   "due today",
			record: recordDue(0, domain.StatusReviewing, 3),
			want:   true,
		},
		{
			name:   "overdue",
			record: recordDue(-5, domain.StatusLearning, 1),
			want:   true,
		},
		{
			name:   "due tomorrow is not due",
			record: recordDue(1, domain.StatusReviewing, 3),
			want:   false,
		},
		{
			name:   "mastered record becomes due once its date passes",
			record: recordDue(-1, domain.StatusMastered, 20),
			want:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDue(tc.record, dueToday))
		})
	}
}

func poolOf(keys ...string) []domain.Item {
	items := make([]domain.Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, domain.Item{Key: k, Translation: "t:" + k, Level: 1})
	}
	return items
}

func TestDueSet(t *testing.T) {
	t.Parallel()

	pool := poolOf("가다", "오다", "먹다", "보다")
	records := map[string]*domain.MasteryRecord{
		"가다": recordDue(2, domain.StatusReviewing, 3),  // not due
		"오다": recordDue(0, domain.StatusReviewing, 3),  // due today
		"먹다": recordDue(-3, domain.StatusMastered, 20), // overdue
		// 보다 has no record: due
	}

	due := DueSet(pool, records, dueToday)

	// Subset of the pool, input order preserved.
	assert.Equal(t, []string{"오다", "먹다", "보다"},
		[]string{due[0].Key, due[1].Key, due[2].Key})
	assert.Len(t, due, 3)
}

func TestDueSetEmptyPool(t *testing.T) {
	t.Parallel()

	assert.Empty(t, DueSet(nil, nil, dueToday))
}

func TestStats(t *testing.T) {
	t.Parallel()

	pool := poolOf("하다", "가다", "오다", "먹다")
	records := map[string]*domain.MasteryRecord{
		"하다": recordDue(10, domain.StatusMastered, 20), // mastered, due later
		"가다": recordDue(0, domain.StatusLearning, 1),
		"오다": recordDue(0, domain.StatusReviewing, 3), // due today
		// 먹다 unseen
	}

	tally := Stats(pool, records, dueToday)

	assert.Equal(t, Tally{Total: 4, Mastered: 1, Learning: 1, ReviewDue: 1, Unseen: 1}, tally)
}

func TestStatsReviewingNotDueCountsAsMastered(t *testing.T) {
	t.Parallel()

	pool := poolOf("하다")
	records := map[string]*domain.MasteryRecord{
		"하다": recordDue(3, domain.StatusReviewing, 5),
	}

	tally := Stats(pool, records, dueToday)

	// Scheduled-but-not-due reviewing items are displayed as known.
	assert.Equal(t, 1, tally.Mastered)
	assert.Equal(t, 0, tally.ReviewDue)
}

func TestStatsCountsSumToTotal(t *testing.T) {
	t.Parallel()

	pool := poolOf("a", "b", "c", "d", "e", "f")
	records := map[string]*domain.MasteryRecord{
		"a": recordDue(-1, domain.StatusReviewing, 2),
		"b": recordDue(4, domain.StatusReviewing, 4),
		"c": recordDue(0, domain.StatusLearning, 1),
		"d": recordDue(30, domain.StatusMastered, 30),
	}

	tally := Stats(pool, records, dueToday)

	assert.Equal(t, len(pool), tally.Total)
	assert.Equal(t, tally.Total, tally.Mastered+tally.Learning+tally.ReviewDue+tally.Unseen)
}
