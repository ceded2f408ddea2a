package session

// Mode selects which practice surface a queue is built for.
type Mode string

// Possible session modes
const (
	ModeFlashcard Mode = "flashcard"
	ModeQuiz      Mode = "quiz"
	ModeSentence  Mode = "sentence"
)

// Direction selects which side of the card is shown as the prompt.
type Direction string

// Possible prompt directions
const (
	DirectionSourceFirst      Direction = "kr-en"
	DirectionTranslationFirst Direction = "en-kr"
)

// CategoryOther is the bucket for items without an explicit category,
// mirroring how the category tabs group them.
const CategoryOther = "Other"

// Policy describes how a session's working set is selected and ordered.
// Changing any field of an active session's policy discards the queue and
// rebuilds it from scratch; a policy is fixed for the queue's lifetime.
type Policy struct {
	Mode      Mode
	Direction Direction

	// Category filters the pool before ordering. Empty means all items;
	// CategoryOther matches items with no category label.
	Category string

	// Count is the number of items drawn for quiz and sentence sessions.
	// Ignored for flashcard sessions, which browse the whole selection.
	Count int

	// DueOnly restricts a flashcard session to the due set (review mode).
	DueOnly bool
}

// State tracks a session's lifecycle. A fresh queue starts Idle, moves to
// InProgress on the first interaction, and reaches Complete only when
// every item, including all wrong-answer passes, has been answered.
type State string

// Possible session states
const (
	StateIdle       State = "idle"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

