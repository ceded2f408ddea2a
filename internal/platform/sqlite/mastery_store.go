package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/store"
)

// MasteryStore implements the store.MasteryStore interface using a SQLite
// database as the storage backend.
type MasteryStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewMasteryStore creates a new SQLite implementation of the MasteryStore
// interface. The database connection is initialized and managed by the
// caller. If logger is nil, the default logger is used.
func NewMasteryStore(db *sqlx.DB, logger *slog.Logger) *MasteryStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MasteryStore{
		db:     db,
		logger: logger.With(slog.String("component", "mastery_store")),
	}
}

// Ensure MasteryStore implements store.MasteryStore
var _ store.MasteryStore = (*MasteryStore)(nil)

// masteryRow is the database representation of a mastery record. Dates are
// stored as yyyy-mm-dd strings since the scheduler only ever deals in
// calendar dates.
type masteryRow struct {
	Learner     string         `db:"learner"`
	ItemKey     string         `db:"item_key"`
	Status      string         `db:"status"`
	Interval    int            `db:"interval"`
	EaseFactor  float64        `db:"ease_factor"`
	NextReview  string         `db:"next_review"`
	ReviewCount int            `db:"review_count"`
	LastSeen    sql.NullString `db:"last_seen"`
	UpdatedAt   string         `db:"updated_at"`
}

func (r *masteryRow) toDomain() (*domain.MasteryRecord, error) {
	nextReview, err := time.ParseInLocation(time.DateOnly, r.NextReview, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("malformed next_review date %q: %w", r.NextReview, err)
	}

	record := &domain.MasteryRecord{
		Status:      domain.Status(r.Status),
		Interval:    r.Interval,
		EaseFactor:  r.EaseFactor,
		NextReview:  nextReview,
		ReviewCount: r.ReviewCount,
	}

	if r.LastSeen.Valid {
		lastSeen, err := time.ParseInLocation(time.DateOnly, r.LastSeen.String, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("malformed last_seen date %q: %w", r.LastSeen.String, err)
		}
		record.LastSeen = lastSeen
	}

	return record, nil
}

func toRow(learner, key string, record *domain.MasteryRecord) masteryRow {
	row := masteryRow{
		Learner:     learner,
		ItemKey:     key,
		Status:      string(record.Status),
		Interval:    record.Interval,
		EaseFactor:  record.EaseFactor,
		NextReview:  record.NextReview.Format(time.DateOnly),
		ReviewCount: record.ReviewCount,
	}

	if !record.LastSeen.IsZero() {
		row.LastSeen = sql.NullString{String: record.LastSeen.Format(time.DateOnly), Valid: true}
	}

	return row
}

// Get implements store.MasteryStore.Get.
// Returns store.ErrRecordNotFound if the item has never been graded.
func (s *MasteryStore) Get(ctx context.Context, learner, key string) (*domain.MasteryRecord, error) {
	query := `
        SELECT learner, item_key, status, interval, ease_factor,
               next_review, review_count, last_seen, updated_at
        FROM mastery_records
        WHERE learner = ? AND item_key = ?
    `

	var row masteryRow
	err := s.db.GetContext(ctx, &row, query, learner, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get record: %v", store.ErrStoreUnavailable, err)
	}

	record, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrStoreUnavailable, err)
	}

	return record, nil
}

// Put implements store.MasteryStore.Put.
// It validates the record, then upserts it; the write is durable once Put
// returns nil.
func (s *MasteryStore) Put(ctx context.Context, learner, key string, record *domain.MasteryRecord) error {
	if record == nil {
		return fmt.Errorf("%w: nil record", store.ErrStoreUnavailable)
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid mastery record: %w", err)
	}

	query := `
        INSERT INTO mastery_records (
            learner, item_key, status, interval, ease_factor,
            next_review, review_count, last_seen, updated_at
        ) VALUES (
            :learner, :item_key, :status, :interval, :ease_factor,
            :next_review, :review_count, :last_seen, datetime('now')
        )
        ON CONFLICT (learner, item_key) DO UPDATE SET
            status = excluded.status,
            interval = excluded.interval,
            ease_factor = excluded.ease_factor,
            next_review = excluded.next_review,
            review_count = excluded.review_count,
            last_seen = excluded.last_seen,
            updated_at = excluded.updated_at
    `

	row := toRow(learner, key, record)
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		s.logger.Error("failed to persist mastery record",
			slog.String("learner", learner),
			slog.String("item_key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: put record: %v", store.ErrStoreUnavailable, err)
	}

	return nil
}

// AllForLearner implements store.MasteryStore.AllForLearner.
func (s *MasteryStore) AllForLearner(ctx context.Context, learner string) (map[string]*domain.MasteryRecord, error) {
	query := `
        SELECT learner, item_key, status, interval, ease_factor,
               next_review, review_count, last_seen, updated_at
        FROM mastery_records
        WHERE learner = ?
    `

	var rows []masteryRow
	if err := s.db.SelectContext(ctx, &rows, query, learner); err != nil {
		return nil, fmt.Errorf("%w: list records: %v", store.ErrStoreUnavailable, err)
	}

	records := make(map[string]*domain.MasteryRecord, len(rows))
	for i := range rows {
		record, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrStoreUnavailable, err)
		}
		records[rows[i].ItemKey] = record
	}

	return records, nil
}
