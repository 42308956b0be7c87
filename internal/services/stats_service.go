package services

import (
	"context"

	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/learning"
	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
)

// StatsService computes per-category learning statistics
type StatsService interface {
	CategoryStats(ctx context.Context, userID int64, category string) (*models.CategoryStats, error)
	AllCategoryStats(ctx context.Context, userID int64) ([]models.CategoryStats, error)
}

type statsService struct {
	cards    repository.CardRepository
	progress repository.ProgressRepository
	settings learning.Settings
}

// NewStatsService creates a new StatsService
func NewStatsService(cards repository.CardRepository, progress repository.ProgressRepository, settings learning.Settings) StatsService {
	return &statsService{cards: cards, progress: progress, settings: settings}
}

func (s *statsService) CategoryStats(ctx context.Context, userID int64, category string) (*models.CategoryStats, error) {
	records, total, err := s.categoryRecords(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, errors.NewNotFoundError("category", category)
	}
	stats := s.settings.Aggregate(category, records)
	return &stats, nil
}

func (s *statsService) AllCategoryStats(ctx context.Context, userID int64) ([]models.CategoryStats, error) {
	log := logger.FromContext(ctx)

	categories, err := s.cards.Categories(ctx, userID)
	if err != nil {
		log.Error("failed to list categories: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats := make([]models.CategoryStats, 0, len(categories))
	for _, category := range categories {
		records, _, err := s.categoryRecords(ctx, userID, category)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s.settings.Aggregate(category, records))
	}
	return stats, nil
}

// categoryRecords returns one progress record per card in the category.
// Cards never reviewed get a zero record so totals count them.
func (s *statsService) categoryRecords(ctx context.Context, userID int64, category string) ([]models.Progress, int, error) {
	cards, err := s.cards.List(ctx, models.CardFilter{UserID: userID, Category: category})
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	reviewed, err := s.progress.ListByCategory(ctx, userID, category)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}

	byCard := make(map[string]models.Progress, len(reviewed))
	for _, p := range reviewed {
		byCard[p.CardID] = p
	}

	records := make([]models.Progress, 0, len(cards))
	for _, card := range cards {
		if p, ok := byCard[card.ID]; ok {
			records = append(records, p)
		} else {
			records = append(records, models.NewProgress(userID, card.ID))
		}
	}
	return records, len(cards), nil
}
