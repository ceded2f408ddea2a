package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/hakseup/topik-api/internal/content"
	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/domain/srs"
	"github.com/hakseup/topik-api/internal/platform/logger"
	"github.com/hakseup/topik-api/internal/session"
	"github.com/hakseup/topik-api/internal/store"
	"github.com/hakseup/topik-api/internal/telemetry"
)

// Verify interface compliance at compile time
var _ Service = (*practiceServiceImpl)(nil)

// practiceServiceImpl implements the Service interface.
type practiceServiceImpl struct {
	loader       content.Loader
	masteryStore store.MasteryStore
	srsService   srs.Service
	tracker      telemetry.Tracker
	logger       *slog.Logger

	// now and newRand are swappable for tests.
	now     func() time.Time
	newRand func() *rand.Rand

	mu       sync.Mutex
	sessions map[sessionKey]*activeSession
}

// sessionKey namespaces active sessions: one per learner and mode.
type sessionKey struct {
	learner string
	mode    session.Mode
}

// activeSession holds one live queue. Exactly one of flash and quiz is
// set, matching the session's mode.
type activeSession struct {
	level int
	flash *session.FlashcardQueue
	quiz  *session.QuizQueue
}

// NewService creates a practice Service implementation.
func NewService(
	loader content.Loader,
	masteryStore store.MasteryStore,
	srsService srs.Service,
	tracker telemetry.Tracker,
	logger *slog.Logger,
) Service {
	// Validate inputs
	if loader == nil {
		panic("loader cannot be nil")
	}
	if masteryStore == nil {
		panic("masteryStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &practiceServiceImpl{
		loader:       loader,
		masteryStore: masteryStore,
		srsService:   srsService,
		tracker:      tracker,
		logger:       logger.With(slog.String("component", "practice_service")),
		now:          time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		sessions: make(map[sessionKey]*activeSession),
	}
}

// Grade implements Service.Grade.
func (s *practiceServiceImpl) Grade(
	ctx context.Context,
	learner, itemKey string,
	quality domain.Quality,
	surface string,
) (*domain.MasteryRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, ok := s.resolveItem(itemKey)
	if !ok {
		log.Warn("grading unknown item",
			slog.String("learner", learner),
			slog.String("item_key", itemKey))
		return nil, ErrItemNotFound
	}

	record, err := s.masteryStore.Get(ctx, learner, itemKey)
	if err != nil {
		if !errors.Is(err, store.ErrRecordNotFound) {
			log.Error("failed to load mastery record",
				slog.String("error", err.Error()),
				slog.String("learner", learner),
				slog.String("item_key", itemKey))
			return nil, fmt.Errorf("failed to load mastery record: %w", err)
		}
		// Never graded before.
		record = nil
	}

	next, err := s.srsService.Grade(record, quality, s.now())
	if err != nil {
		log.Warn("invalid grading",
			slog.String("learner", learner),
			slog.String("item_key", itemKey),
			slog.String("quality", string(quality)))
		return nil, err
	}

	s.tracker.Record(telemetry.NewResponseEvent(learner, item, quality, surface))

	if err := s.masteryStore.Put(ctx, learner, itemKey, next); err != nil {
		// The session keeps going on the in-memory record; only
		// durability is lost.
		log.Error("failed to persist mastery record",
			slog.String("error", err.Error()),
			slog.String("learner", learner),
			slog.String("item_key", itemKey))
		return next, fmt.Errorf("%w: %v", ErrRecordNotPersisted, err)
	}

	log.Debug("graded item",
		slog.String("learner", learner),
		slog.String("item_key", itemKey),
		slog.String("quality", string(quality)),
		slog.String("status", string(next.Status)),
		slog.Int("interval", next.Interval))
	return next, nil
}

// DueItems implements Service.DueItems.
func (s *practiceServiceImpl) DueItems(
	ctx context.Context,
	learner string,
	level int,
) ([]domain.Item, error) {
	records, err := s.masteryStore.AllForLearner(ctx, learner)
	if err != nil {
		return nil, fmt.Errorf("failed to load mastery records: %w", err)
	}

	items := s.loader.Level(level)
	return srs.DueSet(items, records, s.now()), nil
}

// Stats implements Service.Stats.
func (s *practiceServiceImpl) Stats(
	ctx context.Context,
	learner string,
	level int,
) (srs.Tally, error) {
	records, err := s.masteryStore.AllForLearner(ctx, learner)
	if err != nil {
		return srs.Tally{}, fmt.Errorf("failed to load mastery records: %w", err)
	}

	items := s.loader.Level(level)
	return srs.Stats(items, records, s.now()), nil
}

// resolveItem finds an item by key across every loaded level.
func (s *practiceServiceImpl) resolveItem(key string) (domain.Item, bool) {
	for _, level := range s.loader.Levels() {
		item, ok := lo.Find(s.loader.Level(level), func(i domain.Item) bool {
			return i.Key == key
		})
		if ok {
			return item, true
		}
	}
	return domain.Item{}, false
}
