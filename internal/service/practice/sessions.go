package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/platform/logger"
	"github.com/hakseup/topik-api/internal/session"
)

// StartSession implements Service.StartSession.
func (s *practiceServiceImpl) StartSession(
	ctx context.Context,
	learner string,
	level int,
	policy session.Policy,
) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if policy.Mode == "" {
		policy.Mode = session.ModeFlashcard
	}

	records, err := s.masteryStore.AllForLearner(ctx, learner)
	if err != nil {
		log.Error("failed to load mastery records",
			slog.String("error", err.Error()),
			slog.String("learner", learner))
		return nil, fmt.Errorf("failed to load mastery records: %w", err)
	}

	pool := s.loader.Level(level)
	if policy.Mode == session.ModeSentence {
		// Sentence practice only works on items whose example actually
		// contains the key.
		pool = lo.Filter(pool, func(item domain.Item, _ int) bool {
			return session.EligibleForCloze(item)
		})
	}

	active := &activeSession{level: level}
	switch policy.Mode {
	case session.ModeFlashcard:
		active.flash = session.NewFlashcardQueue(pool, records, s.now(), policy)
	default:
		active.quiz = session.NewQuizQueue(pool, records, s.now(), policy, s.newRand())
	}

	key := sessionKey{learner: learner, mode: policy.Mode}
	s.mu.Lock()
	s.sessions[key] = active
	s.mu.Unlock()

	view := s.viewOf(active)
	log.Debug("session started",
		slog.String("learner", learner),
		slog.String("mode", string(policy.Mode)),
		slog.Int("level", level),
		slog.Int("length", view.Length))
	return view, nil
}

// Session implements Service.Session.
func (s *practiceServiceImpl) Session(
	ctx context.Context,
	learner string,
	mode session.Mode,
) (*SessionView, error) {
	active, err := s.lookup(learner, mode)
	if err != nil {
		return nil, err
	}
	return s.viewOf(active), nil
}

// Advance implements Service.Advance.
func (s *practiceServiceImpl) Advance(
	ctx context.Context,
	learner string,
	mode session.Mode,
	back bool,
) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.lookupLocked(learner, mode)
	if err != nil {
		return nil, err
	}
	if active.flash == nil {
		return nil, ErrModeMismatch
	}

	if back {
		active.flash.Prev()
	} else {
		active.flash.Next()
	}
	return s.viewOf(active), nil
}

// ShuffleSession implements Service.ShuffleSession.
func (s *practiceServiceImpl) ShuffleSession(
	ctx context.Context,
	learner string,
	mode session.Mode,
) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.lookupLocked(learner, mode)
	if err != nil {
		return nil, err
	}
	if active.flash == nil {
		return nil, ErrModeMismatch
	}

	active.flash.Shuffle(s.newRand())
	return s.viewOf(active), nil
}

// GradeCurrent implements Service.GradeCurrent.
func (s *practiceServiceImpl) GradeCurrent(
	ctx context.Context,
	learner string,
	mode session.Mode,
	quality domain.Quality,
) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.lookupLocked(learner, mode)
	if err != nil {
		return nil, err
	}
	if active.flash == nil {
		return nil, ErrModeMismatch
	}

	item, ok := active.flash.Current()
	if !ok {
		return nil, ErrSessionComplete
	}

	if _, err := s.Grade(ctx, learner, item.Key, quality, string(session.ModeFlashcard)); err != nil {
		if !errors.Is(err, ErrRecordNotPersisted) {
			return nil, err
		}
		// Keep the session moving; durability was already logged.
		log.Warn("continuing session on unpersisted grading",
			slog.String("learner", learner),
			slog.String("item_key", item.Key))
	}

	active.flash.MarkGraded()
	if quality == domain.QualityDontKnow {
		active.flash.RequeueMiss()
	}
	active.flash.Next()

	return s.viewOf(active), nil
}

// SubmitAnswer implements Service.SubmitAnswer.
func (s *practiceServiceImpl) SubmitAnswer(
	ctx context.Context,
	learner string,
	mode session.Mode,
	answer string,
) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.lookupLocked(learner, mode)
	if err != nil {
		return nil, err
	}
	if active.quiz == nil {
		return nil, ErrModeMismatch
	}

	item, ok := active.quiz.Current()
	if !ok {
		return nil, ErrSessionComplete
	}

	correct, expected := checkAnswer(active.quiz.Policy(), item, answer)

	quality := domain.QualityKnow
	if !correct {
		quality = domain.QualityDontKnow
	}

	record, err := s.Grade(ctx, learner, item.Key, quality, string(mode))
	if err != nil {
		if !errors.Is(err, ErrRecordNotPersisted) {
			return nil, err
		}
		log.Warn("continuing session on unpersisted grading",
			slog.String("learner", learner),
			slog.String("item_key", item.Key))
	}

	active.quiz.Submit(correct)

	return &AnswerResult{
		Correct:  correct,
		Expected: expected,
		Record:   record,
		Session:  s.viewOf(active),
	}, nil
}

// EndSession implements Service.EndSession.
func (s *practiceServiceImpl) EndSession(
	ctx context.Context,
	learner string,
	mode session.Mode,
) error {
	s.mu.Lock()
	delete(s.sessions, sessionKey{learner: learner, mode: mode})
	s.mu.Unlock()
	return nil
}

// lookup fetches an active session under the lock.
func (s *practiceServiceImpl) lookup(learner string, mode session.Mode) (*activeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(learner, mode)
}

// lookupLocked fetches an active session. Caller holds s.mu.
func (s *practiceServiceImpl) lookupLocked(learner string, mode session.Mode) (*activeSession, error) {
	active, ok := s.sessions[sessionKey{learner: learner, mode: mode}]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return active, nil
}

// checkAnswer matches a typed answer against the current item for the
// queue's mode and direction, returning the verdict and the accepted
// answers.
func checkAnswer(policy session.Policy, item domain.Item, answer string) (bool, []string) {
	switch {
	case policy.Mode == session.ModeSentence:
		expected := session.ExpectedAnswers(item.ExampleSource, item.Key)
		return session.MatchCloze(answer, item.ExampleSource, item.Key), expected
	case policy.Direction == session.DirectionTranslationFirst:
		return session.MatchSource(answer, item.Key), []string{item.Key}
	default:
		return session.MatchTranslation(answer, item.Translation), []string{item.Translation}
	}
}

// viewOf snapshots an active session.
func (s *practiceServiceImpl) viewOf(active *activeSession) *SessionView {
	if active.flash != nil {
		return flashcardView(active.flash)
	}
	return quizView(active.quiz)
}

func flashcardView(q *session.FlashcardQueue) *SessionView {
	policy := q.Policy()
	view := &SessionView{
		Mode:      policy.Mode,
		Direction: policy.Direction,
		State:     q.State(),
		Position:  q.Position(),
		Length:    q.Len(),
		Graded:    q.Graded(),
	}

	if item, ok := q.Current(); ok {
		view.Current = &item
		view.Prompt = promptFor(policy, item)
	}
	return view
}

func quizView(q *session.QuizQueue) *SessionView {
	policy := q.Policy()
	correct, total := q.Score()
	view := &SessionView{
		Mode:      policy.Mode,
		Direction: policy.Direction,
		State:     q.State(),
		Position:  q.Position(),
		Length:    q.Len(),
		Correct:   correct,
		Total:     total,
		WrongPass: q.WrongPass(),
	}

	if item, ok := q.Current(); ok {
		view.Current = &item
		view.Prompt = promptFor(policy, item)
	}
	return view
}

// promptFor renders the question side of the current item.
func promptFor(policy session.Policy, item domain.Item) string {
	if policy.Mode == session.ModeSentence {
		return session.BuildCloze(item.ExampleSource, item.Key)
	}
	if policy.Direction == session.DirectionTranslationFirst {
		return item.Translation
	}
	return item.Key
}
