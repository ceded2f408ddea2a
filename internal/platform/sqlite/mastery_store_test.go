package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/store"
)

func newTestStore(t *testing.T) *MasteryStore {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewMasteryStore(db, nil)
}

func testRecord(interval int) *domain.MasteryRecord {
	today := domain.DateOnly(time.Now())
	return &domain.MasteryRecord{
		Status:      domain.StatusReviewing,
		Interval:    interval,
		EaseFactor:  2.6,
		NextReview:  today.AddDate(0, 0, interval),
		ReviewCount: 1,
		LastSeen:    today,
	}
}

func TestMasteryStoreGetMissing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "mina", "하다")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestMasteryStorePutGetRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	want := testRecord(3)
	require.NoError(t, s.Put(ctx, "mina", "하다", want))

	got, err := s.Get(ctx, "mina", "하다")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMasteryStorePutOverwrites(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "mina", "하다", testRecord(1)))

	updated := testRecord(3)
	updated.ReviewCount = 2
	require.NoError(t, s.Put(ctx, "mina", "하다", updated))

	got, err := s.Get(ctx, "mina", "하다")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Interval)
	assert.Equal(t, 2, got.ReviewCount)
}

func TestMasteryStorePutRejectsInvalidRecord(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	bad := testRecord(3)
	bad.EaseFactor = 0.5

	err := s.Put(context.Background(), "mina", "하다", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidEaseFactor)
}

func TestMasteryStoreLearnerNamespacing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	minas := testRecord(3)
	junhos := testRecord(7)
	require.NoError(t, s.Put(ctx, "mina", "하다", minas))
	require.NoError(t, s.Put(ctx, "junho", "하다", junhos))

	got, err := s.Get(ctx, "mina", "하다")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Interval)

	// Junho's view of the same item key is a different record entirely.
	got, err = s.Get(ctx, "junho", "하다")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Interval)

	_, err = s.Get(ctx, "stranger", "하다")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestMasteryStoreAllForLearner(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "mina", "하다", testRecord(1)))
	require.NoError(t, s.Put(ctx, "mina", "가다", testRecord(3)))
	require.NoError(t, s.Put(ctx, "junho", "오다", testRecord(5)))

	records, err := s.AllForLearner(ctx, "mina")
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Contains(t, records, "하다")
	assert.Contains(t, records, "가다")
	assert.NotContains(t, records, "오다")
}

func TestMasteryStoreAllForLearnerEmpty(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	records, err := s.AllForLearner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMasteryStoreZeroLastSeenRoundTrips(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	record := testRecord(1)
	record.LastSeen = time.Time{}
	require.NoError(t, s.Put(ctx, "mina", "보다", record))

	got, err := s.Get(ctx, "mina", "보다")
	require.NoError(t, err)
	assert.True(t, got.LastSeen.IsZero())
}
