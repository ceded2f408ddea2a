package session

import (
	"math/rand"
	"time"

	"github.com/samber/lo"

	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/domain/srs"
)

// Default draw sizes when the policy does not specify one.
const (
	DefaultQuizCount     = 10
	DefaultSentenceCount = 20
)

// QuizQueue is the ephemeral working set for one graded quiz or sentence
// session. Unlike flashcard browsing the position only moves forward;
// wrong answers collect in a secondary queue that becomes the next pass
// when the primary is exhausted, and the session completes only once a
// full pass produces zero wrong answers.
type QuizQueue struct {
	policy        Policy
	items         []domain.Item
	pos           int
	correct       int
	total         int
	wrong         []domain.Item
	state         State
	wrongPass     bool
}

// NewQuizQueue draws a quiz working set from the pool: the due set first,
// uniformly shuffled, padded with a shuffled permutation of the non-due
// remainder when the due set is smaller than the requested count, then
// truncated to the count. The rand source is supplied by the caller so
// tests can pin the permutation.
func NewQuizQueue(
	pool []domain.Item,
	records map[string]*domain.MasteryRecord,
	today time.Time,
	policy Policy,
	rng *rand.Rand,
) *QuizQueue {
	if policy.Mode == "" {
		policy.Mode = ModeQuiz
	}

	count := policy.Count
	if count <= 0 {
		count = DefaultQuizCount
		if policy.Mode == ModeSentence {
			count = DefaultSentenceCount
		}
		policy.Count = count
	}

	selection := filterCategory(pool, policy.Category)

	due := srs.DueSet(selection, records, today)
	drawn := make([]domain.Item, len(due))
	copy(drawn, due)
	shuffle(drawn, rng)

	if len(drawn) < count {
		dueKeys := lo.SliceToMap(due, func(item domain.Item) (string, struct{}) {
			return item.Key, struct{}{}
		})
		remainder := lo.Filter(selection, func(item domain.Item, _ int) bool {
			_, isDue := dueKeys[item.Key]
			return !isDue
		})
		shuffle(remainder, rng)
		drawn = append(drawn, remainder...)
	}

	if len(drawn) > count {
		drawn = drawn[:count]
	}

	state := StateIdle
	if len(drawn) == 0 {
		state = StateComplete
	}

	return &QuizQueue{
		policy: policy,
		items:  drawn,
		state:  state,
	}
}

// Policy returns the selection policy the queue was built with.
func (q *QuizQueue) Policy() Policy { return q.policy }

// State returns the session state.
func (q *QuizQueue) State() State { return q.state }

// Len returns the length of the current pass.
func (q *QuizQueue) Len() int { return len(q.items) }

// Position returns the zero-based position within the current pass.
func (q *QuizQueue) Position() int { return q.pos }

// WrongPass reports whether the current pass is replaying earlier wrong
// answers.
func (q *QuizQueue) WrongPass() bool { return q.wrongPass }

// Score returns the running count of correct answers and total answers.
func (q *QuizQueue) Score() (correct, total int) {
	return q.correct, q.total
}

// Current returns the item awaiting an answer.
// The second return is false once the session is complete.
func (q *QuizQueue) Current() (domain.Item, bool) {
	if q.state == StateComplete || q.pos >= len(q.items) {
		return domain.Item{}, false
	}
	return q.items[q.pos], true
}

// Submit records the grading of the current item and advances. A wrong
// answer appends the item to the wrong-answer queue. When the pass is
// exhausted, a non-empty wrong-answer queue becomes the next pass;
// otherwise the session is complete. Because items only re-enter a pass
// by being answered wrong, the session terminates for any finite pool
// once answers stop being wrong.
func (q *QuizQueue) Submit(correct bool) {
	item, ok := q.Current()
	if !ok {
		return
	}

	q.state = StateInProgress
	q.total++
	if correct {
		q.correct++
	} else {
		q.wrong = append(q.wrong, item)
	}

	q.pos++
	if q.pos < len(q.items) {
		return
	}

	if len(q.wrong) > 0 {
		q.items = q.wrong
		q.wrong = nil
		q.pos = 0
		q.wrongPass = true
		return
	}

	q.state = StateComplete
}
