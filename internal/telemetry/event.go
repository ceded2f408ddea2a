package telemetry

import (
	"time"

	"github.com/google/uuid"

	"github.com/hakseup/topik-api/internal/domain"
)

// ResponseEvent captures a single graded response. Field names follow
// the collector's ingestion schema.
type ResponseEvent struct {
	// ID uniquely identifies this event so the collector can deduplicate
	// replays from at-least-once delivery.
	ID uuid.UUID `json:"id"`

	// Timestamp is when the response was graded, in UTC.
	Timestamp time.Time `json:"timestamp"`

	// Learner is the namespace the response belongs to.
	Learner string `json:"learner"`

	// ItemKey is the canonical form of the item that was graded.
	ItemKey string `json:"itemKey"`

	// Translation is the item's primary translation, denormalized so the
	// collector never needs the level files.
	Translation string `json:"translation"`

	// Quality is the self-assessment or correctness signal.
	Quality domain.Quality `json:"quality"`

	// Level is the vocabulary level the item belongs to.
	Level int `json:"level"`

	// Surface names the practice surface that produced the response:
	// flashcard, quiz, or sentence.
	Surface string `json:"surface"`
}

// NewResponseEvent builds a ResponseEvent for a graded item with a fresh
// ID and the current UTC time.
func NewResponseEvent(learner string, item domain.Item, quality domain.Quality, surface string) ResponseEvent {
	return ResponseEvent{
		ID:          uuid.New(),
		Timestamp:   time.Now().UTC(),
		Learner:     learner,
		ItemKey:     item.Key,
		Translation: item.Translation,
		Quality:     quality,
		Level:       item.Level,
		Surface:     surface,
	}
}
