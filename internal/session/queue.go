package session

import (
	"math/rand"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/domain/srs"
)

// RequeueOffset is how many positions ahead a missed flashcard is
// reinserted, so it resurfaces within the same session without being the
// very next card.
const RequeueOffset = 6

// filterCategory narrows a pool to one category label, preserving order.
// An empty category selects everything; CategoryOther matches items with
// no label of their own.
func filterCategory(pool []domain.Item, category string) []domain.Item {
	if category == "" {
		return pool
	}
	return lo.Filter(pool, func(item domain.Item, _ int) bool {
		label := item.Category
		if label == "" {
			label = CategoryOther
		}
		return label == category
	})
}

// priority buckets an item for flashcard ordering. Lower sorts first:
// learning and due items lead, unseen items follow, scheduled reviewing
// items after that, mastered items last.
func priority(record *domain.MasteryRecord, today time.Time) int {
	if record == nil {
		return 1
	}
	if record.Status == domain.StatusLearning {
		return 0
	}
	if srs.IsDue(record, today) {
		return 0
	}
	if record.Status == domain.StatusMastered {
		return 3
	}
	return 2
}

// shuffle permutes items in place with a Fisher-Yates walk over the given
// source, so sessions are reproducible under a seeded source in tests.
func shuffle(items []domain.Item, rng *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// FlashcardQueue is the ephemeral working set for one flashcard session.
// The position moves circularly in both directions; missed cards are
// reinserted later in the same queue rather than deferred to the next
// scheduled review.
type FlashcardQueue struct {
	policy Policy
	items  []domain.Item
	pos    int
	graded int
	state  State
}

// NewFlashcardQueue builds a flashcard queue from the pool. The pool is
// narrowed by the policy's category (and to the due set when DueOnly is
// set), then stable-sorted by priority so ties keep their input order and
// identical inputs always produce the same queue.
func NewFlashcardQueue(
	pool []domain.Item,
	records map[string]*domain.MasteryRecord,
	today time.Time,
	policy Policy,
) *FlashcardQueue {
	policy.Mode = ModeFlashcard

	selection := filterCategory(pool, policy.Category)
	if policy.DueOnly {
		selection = srs.DueSet(selection, records, today)
	}

	day := domain.DateOnly(today)
	items := make([]domain.Item, len(selection))
	copy(items, selection)
	sort.SliceStable(items, func(i, j int) bool {
		return priority(records[items[i].Key], day) < priority(records[items[j].Key], day)
	})

	state := StateIdle
	if len(items) == 0 {
		state = StateComplete
	}

	return &FlashcardQueue{
		policy: policy,
		items:  items,
		state:  state,
	}
}

// Policy returns the selection policy the queue was built with.
func (q *FlashcardQueue) Policy() Policy { return q.policy }

// State returns the session state.
func (q *FlashcardQueue) State() State { return q.state }

// Len returns the current queue length. Requeued misses grow it.
func (q *FlashcardQueue) Len() int { return len(q.items) }

// Position returns the current zero-based position.
func (q *FlashcardQueue) Position() int { return q.pos }

// Graded returns how many gradings this session has recorded.
func (q *FlashcardQueue) Graded() int { return q.graded }

// Current returns the item at the current position.
// The second return is false when the queue is empty.
func (q *FlashcardQueue) Current() (domain.Item, bool) {
	if len(q.items) == 0 {
		return domain.Item{}, false
	}
	return q.items[q.pos], true
}

// Items returns a copy of the queue's current ordering.
func (q *FlashcardQueue) Items() []domain.Item {
	out := make([]domain.Item, len(q.items))
	copy(out, q.items)
	return out
}

// Next advances the position circularly.
func (q *FlashcardQueue) Next() {
	if len(q.items) == 0 {
		return
	}
	q.state = StateInProgress
	q.pos = (q.pos + 1) % len(q.items)
}

// Prev moves the position back circularly.
func (q *FlashcardQueue) Prev() {
	if len(q.items) == 0 {
		return
	}
	q.state = StateInProgress
	q.pos = (q.pos - 1 + len(q.items)) % len(q.items)
}

// Shuffle re-permutes the queue and resets the position to the front.
func (q *FlashcardQueue) Shuffle(rng *rand.Rand) {
	shuffle(q.items, rng)
	q.pos = 0
}

// MarkGraded records that the current card was graded. The caller runs
// the scheduler and persists the record; the queue only tracks session
// progress and ordering.
func (q *FlashcardQueue) MarkGraded() {
	if len(q.items) == 0 {
		return
	}
	q.state = StateInProgress
	q.graded++
}

// RequeueMiss reinserts a copy of the current card RequeueOffset positions
// ahead, clamped to the end of the queue. The inserted element is a value
// copy: session-local display state on it never aliases the canonical
// item. The queue grows by exactly one.
func (q *FlashcardQueue) RequeueMiss() {
	if len(q.items) == 0 {
		return
	}

	card := q.items[q.pos]
	at := q.pos + RequeueOffset
	if at > len(q.items) {
		at = len(q.items)
	}

	q.items = append(q.items, domain.Item{})
	copy(q.items[at+1:], q.items[at:])
	q.items[at] = card
}
