package practice

import (
	"context"
	"errors"

	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/domain/srs"
	"github.com/hakseup/topik-api/internal/session"
)

// Common error types for the practice service
var (
	// ErrItemNotFound indicates that no loaded level contains the
	// requested item key.
	ErrItemNotFound = errors.New("vocabulary item not found")

	// ErrSessionNotFound indicates that the learner has no active session
	// for the requested mode.
	ErrSessionNotFound = errors.New("no active session")

	// ErrSessionComplete indicates that the session has already finished
	// and accepts no further answers.
	ErrSessionComplete = errors.New("session already complete")

	// ErrModeMismatch indicates that the operation does not apply to the
	// session's mode, such as flashcard navigation on a quiz session.
	ErrModeMismatch = errors.New("operation not supported for session mode")

	// ErrRecordNotPersisted indicates that a grading was computed but
	// could not be durably saved. The returned record is still valid for
	// the rest of the session.
	ErrRecordNotPersisted = errors.New("mastery record not persisted")
)

// SessionView is a snapshot of an active session for transport to a
// client. Current is nil once the session is complete.
type SessionView struct {
	Mode      session.Mode      `json:"mode"`
	Direction session.Direction `json:"direction,omitempty"`
	State     session.State     `json:"state"`
	Position  int               `json:"position"`
	Length    int               `json:"length"`
	Graded    int               `json:"graded,omitempty"`
	Correct   int               `json:"correct"`
	Total     int               `json:"total"`
	WrongPass bool              `json:"wrongPass,omitempty"`
	Current   *domain.Item      `json:"current,omitempty"`

	// Prompt is the question text for the current item: the side of the
	// card selected by the direction, or the blanked example sentence in
	// sentence mode.
	Prompt string `json:"prompt,omitempty"`
}

// AnswerResult reports the outcome of one submitted answer.
type AnswerResult struct {
	Correct bool `json:"correct"`

	// Expected lists the answers that would have been accepted.
	Expected []string `json:"expected"`

	// Record is the mastery record after grading.
	Record *domain.MasteryRecord `json:"record"`

	// Session is the session snapshot after advancing.
	Session *SessionView `json:"session"`
}

// Service is the application core behind the practice surfaces: it
// grades responses through the scheduler, persists mastery records,
// reports due sets and progress tallies, and manages one active session
// per learner and mode.
type Service interface {
	// Grade runs one grading for an item and persists the result. A
	// missing record is treated as never graded. When persistence fails
	// the computed record is still returned alongside an error wrapping
	// ErrRecordNotPersisted, so the caller can keep the session going.
	//
	// Returns ErrItemNotFound if no level contains the key and
	// domain.ErrInvalidQuality for an unknown quality value.
	Grade(
		ctx context.Context,
		learner, itemKey string,
		quality domain.Quality,
		surface string,
	) (*domain.MasteryRecord, error)

	// DueItems returns the items in a level due for review today, in
	// level-file order.
	DueItems(ctx context.Context, learner string, level int) ([]domain.Item, error)

	// Stats returns the mastery tally for a level.
	Stats(ctx context.Context, learner string, level int) (srs.Tally, error)

	// StartSession builds a fresh session for the learner over one
	// level's pool, replacing any active session of the same mode.
	StartSession(
		ctx context.Context,
		learner string,
		level int,
		policy session.Policy,
	) (*SessionView, error)

	// Session returns a snapshot of the learner's active session.
	// Returns ErrSessionNotFound if none exists.
	Session(ctx context.Context, learner string, mode session.Mode) (*SessionView, error)

	// Advance moves a flashcard session forward, or backward when back
	// is set. Navigation is circular.
	Advance(ctx context.Context, learner string, mode session.Mode, back bool) (*SessionView, error)

	// ShuffleSession re-permutes a flashcard session and resets its
	// position.
	ShuffleSession(ctx context.Context, learner string, mode session.Mode) (*SessionView, error)

	// GradeCurrent grades the current flashcard and advances. A dont_know
	// grading also requeues the card later in the same session.
	GradeCurrent(
		ctx context.Context,
		learner string,
		mode session.Mode,
		quality domain.Quality,
	) (*SessionView, error)

	// SubmitAnswer checks a typed answer against the current quiz or
	// sentence item, grades it, and advances the session.
	SubmitAnswer(
		ctx context.Context,
		learner string,
		mode session.Mode,
		answer string,
	) (*AnswerResult, error)

	// EndSession discards the learner's active session for the mode.
	// Ending a session that does not exist is a no-op.
	EndSession(ctx context.Context, learner string, mode session.Mode) error
}
