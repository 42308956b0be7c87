package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/learning"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
	"github.com/celyn/geirfa/internal/repository/sqlite"
	"github.com/celyn/geirfa/internal/services"
	"github.com/celyn/geirfa/internal/testutil"
)

func newStatsFixture(t *testing.T) (services.StatsService, repository.ProgressRepository, int64) {
	t.Helper()
	ctx := context.Background()
	database := testutil.NewTestDB(t)

	userRepo := sqlite.NewUserRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB, 50)

	user, err := userRepo.Upsert(ctx, "rhiannon")
	require.NoError(t, err)

	for _, c := range []models.Flashcard{
		{ID: "c1", SourceText: "ci", TargetText: "dog", Category: "animals"},
		{ID: "c2", SourceText: "cath", TargetText: "cat", Category: "animals"},
		{ID: "c3", SourceText: "coch", TargetText: "red", Category: "colours"},
	} {
		c.UserID = user.ID
		require.NoError(t, cardRepo.Insert(ctx, c))
	}

	return services.NewStatsService(cardRepo, progressRepo, learning.DefaultSettings()), progressRepo, user.ID
}

func TestStatsService_CountsUnreviewedCards(t *testing.T) {
	ctx := context.Background()
	svc, progressRepo, userID := newStatsFixture(t)

	p := models.NewProgress(userID, "c1")
	p.Points = 50
	require.NoError(t, progressRepo.Upsert(ctx, p))

	stats, err := svc.CategoryStats(ctx, userID, "animals")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCards)
	assert.Equal(t, 1, stats.MasteredCards)
	assert.Equal(t, 50, stats.TotalPoints)
	assert.Equal(t, 25, stats.AveragePoints)
}

func TestStatsService_UnknownCategory(t *testing.T) {
	svc, _, userID := newStatsFixture(t)

	_, err := svc.CategoryStats(context.Background(), userID, "verbs")
	assertAppCode(t, err, errors.ErrCodeNotFound)
}

func TestStatsService_AllCategories(t *testing.T) {
	ctx := context.Background()
	svc, progressRepo, userID := newStatsFixture(t)

	p := models.NewProgress(userID, "c3")
	p.Points = 20
	require.NoError(t, progressRepo.Upsert(ctx, p))

	stats, err := svc.AllCategoryStats(ctx, userID)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "animals", stats[0].Category)
	assert.Equal(t, 2, stats[0].TotalCards)
	assert.Equal(t, "colours", stats[1].Category)
	assert.Equal(t, 20, stats[1].TotalPoints)
}
