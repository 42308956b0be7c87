package services

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/learning"
	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
)

// SessionCardView is the client-facing shape of a card inside a session.
// The target side stays hidden until the card is flipped or the quiz
// answer is in.
type SessionCardView struct {
	ID            string                   `json:"id"`
	SourceText    string                   `json:"sourceText"`
	TargetText    string                   `json:"targetText,omitempty"`
	Pronunciation string                   `json:"pronunciation,omitempty"`
	Examples      []models.ExampleSentence `json:"examples,omitempty"`
	Points        int                      `json:"points"`
	Learnt        bool                     `json:"learnt"`
}

// QuizView describes the active quiz question.
type QuizView struct {
	Number    int              `json:"number"`
	Total     int              `json:"total"`
	Card      *SessionCardView `json:"card"`
	Submitted bool             `json:"submitted"`
	Correct   bool             `json:"correct"`
	Answer    string           `json:"answer,omitempty"`
}

// SessionView is the full client-facing session state.
type SessionView struct {
	ID          string                `json:"id"`
	State       string                `json:"state"`
	Category    string                `json:"category"`
	TotalPoints int                   `json:"totalPoints"`
	ViewedCount int                   `json:"viewedCount"`
	Card        *SessionCardView      `json:"card,omitempty"`
	Quiz        *QuizView             `json:"quiz,omitempty"`
	Stats       *models.CategoryStats `json:"stats,omitempty"`
}

// SessionService manages live learning sessions
type SessionService interface {
	Create(ctx context.Context, userID int64, category string) (*SessionView, error)
	Get(ctx context.Context, userID int64, id string) (*SessionView, error)
	Flip(ctx context.Context, userID int64, id string) (*SessionView, error)
	Advance(ctx context.Context, userID int64, id string) (*SessionView, error)
	Answer(ctx context.Context, userID int64, id string, answer string) (*SessionView, error)
	Next(ctx context.Context, userID int64, id string) (*SessionView, error)
	Restart(ctx context.Context, userID int64, id string) (*SessionView, error)
	Close(ctx context.Context, userID int64, id string) error
}

type managedSession struct {
	mu   sync.Mutex
	id   string
	sess *learning.Session
}

type sessionService struct {
	mu       sync.Mutex
	sessions map[string]*managedSession
	cards    repository.CardRepository
	progress repository.ProgressRepository
	settings learning.Settings
}

// NewSessionService creates a new SessionService
func NewSessionService(cards repository.CardRepository, progress repository.ProgressRepository, settings learning.Settings) SessionService {
	return &sessionService{
		sessions: make(map[string]*managedSession),
		cards:    cards,
		progress: progress,
		settings: settings,
	}
}

// sessionStore adapts the repositories to the learning engine's store.
type sessionStore struct {
	cards    repository.CardRepository
	progress repository.ProgressRepository
}

func (st *sessionStore) ListCards(ctx context.Context, userID int64, category string) ([]models.Flashcard, error) {
	return st.cards.List(ctx, models.CardFilter{UserID: userID, Category: category})
}

func (st *sessionStore) GetProgress(ctx context.Context, userID int64, cardID string) (*models.Progress, error) {
	return st.progress.Get(ctx, userID, cardID)
}

func (st *sessionStore) SaveProgress(ctx context.Context, progress models.Progress) error {
	return st.progress.Upsert(ctx, progress)
}

func (s *sessionService) Create(ctx context.Context, userID int64, category string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	category = strings.TrimSpace(category)
	if category == "" {
		return nil, errors.NewValidationError("category", "must not be empty")
	}

	count, err := s.cards.Count(ctx, models.CardFilter{UserID: userID, Category: category})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if count == 0 {
		return nil, errors.NewNotFoundError("category", category)
	}

	id := uuid.NewString()
	sessLog := logger.Default().WithPrefix("session").WithField("session_id", id)
	sess := learning.NewSession(learning.Config{
		UserID:   userID,
		Category: category,
		Store:    &sessionStore{cards: s.cards, progress: s.progress},
		Settings: s.settings,
		Callbacks: learning.Callbacks{
			CardMastered: func(cardID string) {
				sessLog.Info("card mastered: card_id=%s", cardID)
			},
			SessionComplete: func(category string) {
				sessLog.Info("session complete: category=%s", category)
			},
		},
	})
	if err := sess.Start(ctx); err != nil {
		log.Error("failed to start session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	m := &managedSession{id: id, sess: sess}
	s.mu.Lock()
	s.sessions[id] = m
	s.mu.Unlock()

	log.Info("session created: id=%s, user_id=%d, category=%s", id, userID, category)
	return s.view(m), nil
}

func (s *sessionService) Get(ctx context.Context, userID int64, id string) (*SessionView, error) {
	m, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return s.view(m), nil
}

func (s *sessionService) Flip(ctx context.Context, userID int64, id string) (*SessionView, error) {
	m, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.sess.Flip(); err != nil {
		return nil, mapSessionError(err)
	}
	return s.view(m), nil
}

func (s *sessionService) Advance(ctx context.Context, userID int64, id string) (*SessionView, error) {
	m, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.sess.Advance(ctx); err != nil {
		return nil, mapSessionError(err)
	}
	return s.view(m), nil
}

func (s *sessionService) Answer(ctx context.Context, userID int64, id string, answer string) (*SessionView, error) {
	m, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.sess.SubmitAnswer(ctx, answer); err != nil {
		return nil, mapSessionError(err)
	}
	return s.view(m), nil
}

func (s *sessionService) Next(ctx context.Context, userID int64, id string) (*SessionView, error) {
	m, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.sess.NextQuestion(ctx); err != nil {
		return nil, mapSessionError(err)
	}
	return s.view(m), nil
}

func (s *sessionService) Restart(ctx context.Context, userID int64, id string) (*SessionView, error) {
	m, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.sess.Restart(ctx); err != nil {
		return nil, mapSessionError(err)
	}
	return s.view(m), nil
}

func (s *sessionService) Close(ctx context.Context, userID int64, id string) error {
	m, err := s.lookup(userID, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, m.id)
	s.mu.Unlock()
	logger.FromContext(ctx).Info("session closed: id=%s", id)
	return nil
}

func (s *sessionService) lookup(userID int64, id string) (*managedSession, error) {
	s.mu.Lock()
	m, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok || m.sess.UserID() != userID {
		return nil, errors.NewNotFoundError("session", id)
	}
	return m, nil
}

func mapSessionError(err error) error {
	switch {
	case stderrors.Is(err, learning.ErrInvalidAction),
		stderrors.Is(err, learning.ErrAlreadySubmitted),
		stderrors.Is(err, learning.ErrNotSubmitted):
		return errors.NewConflictError(err.Error())
	default:
		return errors.NewInternalError(err)
	}
}

// view snapshots the session for clients. Callers must hold m.mu.
func (s *sessionService) view(m *managedSession) *SessionView {
	sess := m.sess
	v := &SessionView{
		ID:          m.id,
		State:       sess.State().String(),
		Category:    sess.Category(),
		TotalPoints: sess.TotalPoints(),
		ViewedCount: sess.ViewedCount(),
	}

	switch sess.State() {
	case learning.StatePresenting, learning.StateFlipped:
		if cs := sess.Current(); cs != nil {
			v.Card = cardView(cs, sess.State() == learning.StateFlipped)
		}
	case learning.StateQuizActive:
		if q := sess.CurrentQuestion(); q != nil {
			number, total := sess.QuizProgress()
			v.Quiz = &QuizView{
				Number:    number,
				Total:     total,
				Card:      cardView(q.Card, q.Submitted),
				Submitted: q.Submitted,
				Correct:   q.Correct,
				Answer:    q.Answer,
			}
		}
	case learning.StateComplete:
		stats := sess.Stats()
		v.Stats = &stats
	}
	return v
}

func cardView(cs *learning.CardState, revealed bool) *SessionCardView {
	cv := &SessionCardView{
		ID:            cs.Card.ID,
		SourceText:    cs.Card.SourceText,
		Pronunciation: cs.Card.Pronunciation,
		Points:        cs.Progress.Points,
		Learnt:        cs.Progress.Learnt,
	}
	if revealed {
		cv.TargetText = cs.Card.TargetText
		cv.Examples = cs.Card.Examples
	}
	return cv
}
