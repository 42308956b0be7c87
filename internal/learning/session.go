package learning

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/celyn/geirfa/internal/models"
)

// State is the session lifecycle state.
type State int

const (
	StateLoading State = iota
	StatePresenting
	StateFlipped
	StateQuizActive
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePresenting:
		return "presenting"
	case StateFlipped:
		return "flipped"
	case StateQuizActive:
		return "quiz"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidAction is returned when an action is not legal in the
	// session's current state.
	ErrInvalidAction = errors.New("action not valid in current state")
	// ErrAlreadySubmitted rejects a second answer for the same quiz
	// question.
	ErrAlreadySubmitted = errors.New("answer already submitted for this question")
	// ErrNotSubmitted rejects moving past a quiz question that has not
	// been answered yet.
	ErrNotSubmitted = errors.New("current question has no submitted answer")
)

// Config assembles a Session. Store, UserID and Category are required;
// Settings falls back to DefaultSettings when QuizInterval is zero, Rand and
// Now default to a seeded generator and time.Now.
type Config struct {
	UserID    int64
	Category  string
	Store     Store
	Settings  Settings
	Callbacks Callbacks
	Rand      *rand.Rand
	Now       func() time.Time
}

// Session is the in-memory state machine for one study pass over a single
// category. It is not safe for concurrent use; all actions happen in
// response to discrete user events, and callers serialize them.
type Session struct {
	userID    int64
	category  string
	store     Store
	settings  Settings
	callbacks Callbacks
	sampler   *Sampler
	now       func() time.Time

	state          State
	cards          []*CardState
	queue          []*CardState
	cursor         int
	viewed         map[string]*CardState
	viewedOrder    []*CardState
	cardsSinceQuiz int
	totalPoints    int

	quiz      []*QuizQuestion
	quizIndex int
}

// NewSession creates a session in the Loading state. Call Start to fetch the
// category and begin presenting.
func NewSession(cfg Config) *Session {
	settings := cfg.Settings
	if settings.QuizInterval == 0 {
		settings = DefaultSettings()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		userID:    cfg.UserID,
		category:  cfg.Category,
		store:     cfg.Store,
		settings:  settings,
		callbacks: cfg.Callbacks,
		sampler:   NewSampler(settings, cfg.Rand),
		now:       now,
		state:     StateLoading,
	}
}

// Start loads every card in the category with its progress record (creating
// a zero-valued record for cards never reviewed), filters out mastered cards
// and builds the initial queue. A fetch failure aborts the whole load: no
// partial session is created and the error is returned to the caller.
func (s *Session) Start(ctx context.Context) error {
	cards, err := s.store.ListCards(ctx, s.userID, s.category)
	if err != nil {
		return fmt.Errorf("list cards for category %q: %w", s.category, err)
	}

	states := make([]*CardState, 0, len(cards))
	for _, card := range cards {
		progress, err := s.store.GetProgress(ctx, s.userID, card.ID)
		if err != nil {
			return fmt.Errorf("load progress for card %s: %w", card.ID, err)
		}
		cs := &CardState{Card: card}
		if progress != nil {
			cs.Progress = *progress
		} else {
			cs.Progress = models.NewProgress(s.userID, card.ID)
		}
		states = append(states, cs)
	}

	s.cards = states
	s.viewed = make(map[string]*CardState)
	s.viewedOrder = nil
	s.cardsSinceQuiz = 0
	s.quiz = nil
	s.quizIndex = 0
	s.refreshTotalPoints()

	s.queue = s.sampler.BuildQueue(s.unmastered())
	s.cursor = 0
	if len(s.queue) == 0 {
		s.complete()
		return nil
	}
	s.state = StatePresenting
	return nil
}

// Current returns the card at the cursor while it is being presented or
// flipped, nil otherwise.
func (s *Session) Current() *CardState {
	if s.state != StatePresenting && s.state != StateFlipped {
		return nil
	}
	return s.queue[s.cursor]
}

// Flip reveals the back of the current card.
func (s *Session) Flip() error {
	if s.state != StatePresenting {
		return fmt.Errorf("flip in state %s: %w", s.state, ErrInvalidAction)
	}
	s.state = StateFlipped
	return nil
}

// Advance records the current card as reviewed and moves on: the review
// metadata is written through to the store first, then the card joins the
// viewed set and the quiz countdown ticks. Every QuizInterval advances, once
// enough distinct cards have been seen, a quiz interrupts instead of the
// cursor moving. A failed write leaves the in-memory record at its pre-write
// value and the session in Flipped so the user can retry.
func (s *Session) Advance(ctx context.Context) error {
	if s.state != StateFlipped {
		return fmt.Errorf("advance in state %s: %w", s.state, ErrInvalidAction)
	}

	cs := s.queue[s.cursor]
	next := cs.Progress
	now := s.now()
	next.LastReviewed = now
	next.ReviewCount++
	next.UpdatedAt = now
	if err := s.store.SaveProgress(ctx, next); err != nil {
		return fmt.Errorf("save review for card %s: %w", cs.Card.ID, err)
	}
	cs.Progress = next

	if _, ok := s.viewed[cs.Card.ID]; !ok {
		s.viewed[cs.Card.ID] = cs
		s.viewedOrder = append(s.viewedOrder, cs)
	}
	s.cardsSinceQuiz++

	if s.cardsSinceQuiz >= s.settings.QuizInterval && len(s.viewed) >= s.settings.MinViewedForQuiz {
		quiz := s.sampler.BuildQuiz(s.viewedOrder, s.settings.QuizSize)
		if len(quiz) > 0 {
			s.quiz = quiz
			s.quizIndex = 0
			s.state = StateQuizActive
			return nil
		}
		// Everything viewed is mastered by now; nothing to quiz on.
		s.cardsSinceQuiz = 0
	}

	return s.stepCursor()
}

// stepCursor moves to the next presentable card, rebuilding the queue from
// the still-unmastered cards when the current pass is exhausted. An empty
// rebuild means the category is complete.
func (s *Session) stepCursor() error {
	s.cursor++
	for s.cursor < len(s.queue) && s.queue[s.cursor].Progress.Points >= s.settings.MaxPoints {
		// Mastered mid-pass; never present it again.
		s.cursor++
	}
	if s.cursor < len(s.queue) {
		s.state = StatePresenting
		return nil
	}

	remaining := s.unmastered()
	if len(remaining) == 0 {
		s.complete()
		return nil
	}
	s.queue = s.sampler.BuildQueue(remaining)
	s.cursor = 0
	s.state = StatePresenting
	return nil
}

// CurrentQuestion returns the active quiz question, nil outside QuizActive.
func (s *Session) CurrentQuestion() *QuizQuestion {
	if s.state != StateQuizActive {
		return nil
	}
	return s.quiz[s.quizIndex]
}

// QuizProgress reports the 1-based question number and quiz length.
func (s *Session) QuizProgress() (number, total int) {
	if s.state != StateQuizActive {
		return 0, 0
	}
	return s.quizIndex + 1, len(s.quiz)
}

// SubmitAnswer scores the active quiz question. The point delta is written
// through to the store before the in-memory record changes; on a write
// failure nothing is applied and the question stays open for a retry. A
// question accepts exactly one answer.
func (s *Session) SubmitAnswer(ctx context.Context, answer string) (ScoreResult, error) {
	if s.state != StateQuizActive {
		return ScoreResult{}, fmt.Errorf("answer in state %s: %w", s.state, ErrInvalidAction)
	}
	q := s.quiz[s.quizIndex]
	if q.Submitted {
		return ScoreResult{}, ErrAlreadySubmitted
	}

	next, res := s.settings.ScoreAnswer(q.Card.Progress, q.Card.Card.TargetText, answer, s.now())
	if err := s.store.SaveProgress(ctx, next); err != nil {
		return ScoreResult{}, fmt.Errorf("save score for card %s: %w", q.Card.Card.ID, err)
	}
	q.Card.Progress = next
	q.Answer = answer
	q.Submitted = true
	q.Correct = res.Correct

	s.refreshTotalPoints()
	if res.Mastered && s.callbacks.CardMastered != nil {
		s.callbacks.CardMastered(q.Card.Card.ID)
	}
	return res, nil
}

// NextQuestion moves past an answered question. After the last question the
// quiz countdown resets and the deferred card advance happens, which may
// itself complete the session.
func (s *Session) NextQuestion(ctx context.Context) error {
	if s.state != StateQuizActive {
		return fmt.Errorf("next question in state %s: %w", s.state, ErrInvalidAction)
	}
	if !s.quiz[s.quizIndex].Submitted {
		return ErrNotSubmitted
	}
	if s.quizIndex+1 < len(s.quiz) {
		s.quizIndex++
		return nil
	}

	s.quiz = nil
	s.quizIndex = 0
	s.cardsSinceQuiz = 0
	return s.stepCursor()
}

// Restart throws away the current pass (viewed set, quiz countdown, queue)
// and reloads the category. Progress records are untouched.
func (s *Session) Restart(ctx context.Context) error {
	if s.state != StatePresenting && s.state != StateFlipped {
		return fmt.Errorf("restart in state %s: %w", s.state, ErrInvalidAction)
	}
	s.state = StateLoading
	return s.Start(ctx)
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Category returns the category under study.
func (s *Session) Category() string { return s.category }

// UserID returns the owning user.
func (s *Session) UserID() int64 { return s.userID }

// TotalPoints is the cached sum of points across every card in the
// category, mastered ones included. It refreshes after each scoring event.
func (s *Session) TotalPoints() int { return s.totalPoints }

// ViewedCount reports how many distinct cards have been shown this session.
func (s *Session) ViewedCount() int { return len(s.viewed) }

// Stats aggregates the session's current in-memory progress records.
func (s *Session) Stats() models.CategoryStats {
	records := make([]models.Progress, 0, len(s.cards))
	for _, cs := range s.cards {
		records = append(records, cs.Progress)
	}
	return s.settings.Aggregate(s.category, records)
}

func (s *Session) unmastered() []*CardState {
	var out []*CardState
	for _, cs := range s.cards {
		if cs.Progress.Points < s.settings.MaxPoints {
			out = append(out, cs)
		}
	}
	return out
}

func (s *Session) refreshTotalPoints() {
	total := 0
	for _, cs := range s.cards {
		total += cs.Progress.Points
	}
	s.totalPoints = total
}

func (s *Session) complete() {
	s.state = StateComplete
	if s.callbacks.SessionComplete != nil {
		s.callbacks.SessionComplete(s.category)
	}
}
