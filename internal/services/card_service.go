package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
)

// CardService handles flashcard business logic
type CardService interface {
	Create(ctx context.Context, card models.Flashcard) (*models.Flashcard, error)
	Get(ctx context.Context, id string, userID int64) (*models.Flashcard, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Flashcard, int, error)
	Categories(ctx context.Context, userID int64) ([]string, error)
	Delete(ctx context.Context, id string, userID int64) error
}

type cardService struct {
	cards repository.CardRepository
}

// NewCardService creates a new CardService
func NewCardService(cards repository.CardRepository) CardService {
	return &cardService{cards: cards}
}

func (s *cardService) Create(ctx context.Context, card models.Flashcard) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	card.SourceText = strings.TrimSpace(card.SourceText)
	card.TargetText = strings.TrimSpace(card.TargetText)
	card.Category = strings.TrimSpace(card.Category)
	if card.SourceText == "" {
		return nil, errors.NewValidationError("sourceText", "must not be empty")
	}
	if card.TargetText == "" {
		return nil, errors.NewValidationError("targetText", "must not be empty")
	}
	if card.Category == "" {
		return nil, errors.NewValidationError("category", "must not be empty")
	}

	card.ID = uuid.NewString()
	log.Debug("creating card: id=%s, category=%s", card.ID, card.Category)

	if err := s.cards.Insert(ctx, card); err != nil {
		log.Error("failed to create card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &card, nil
}

func (s *cardService) Get(ctx context.Context, id string, userID int64) (*models.Flashcard, error) {
	card, err := s.cards.Get(ctx, id, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *cardService) List(ctx context.Context, filter models.CardFilter) ([]models.Flashcard, int, error) {
	cards, err := s.cards.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.cards.Count(ctx, models.CardFilter{UserID: filter.UserID, Category: filter.Category})
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return cards, total, nil
}

func (s *cardService) Categories(ctx context.Context, userID int64) ([]string, error) {
	categories, err := s.cards.Categories(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return categories, nil
}

func (s *cardService) Delete(ctx context.Context, id string, userID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%s, user_id=%d", id, userID)

	if err := s.cards.Delete(ctx, id, userID); err != nil {
		if isNoRows(err) {
			return errors.NewNotFoundError("card", id)
		}
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
