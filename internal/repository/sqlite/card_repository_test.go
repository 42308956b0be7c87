package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/celyn/geirfa/internal/db"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
	"github.com/celyn/geirfa/internal/repository/sqlite"
	"github.com/celyn/geirfa/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db.DB)
}

func (s *CardRepositorySuite) setupUser(username string) int64 {
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `INSERT INTO users (username) VALUES (?)`, username)
	s.Require().NoError(err)

	var userID int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, username).Scan(&userID)
	s.Require().NoError(err)

	return userID
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	userID := s.setupUser("rhiannon")

	card := models.Flashcard{
		ID:            "card-1",
		UserID:        userID,
		SourceText:    "bore da",
		TargetText:    "good morning",
		Pronunciation: "BOH-reh dah",
		Category:      "greetings",
		Examples: []models.ExampleSentence{
			{Source: "Bore da, sut wyt ti?", Target: "Good morning, how are you?"},
		},
	}
	s.Require().NoError(s.repo.Insert(ctx, card))

	got, err := s.repo.Get(ctx, "card-1", userID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("bore da", got.SourceText)
	s.Assert().Equal("good morning", got.TargetText)
	s.Assert().Equal("greetings", got.Category)
	s.Require().Len(got.Examples, 1)
	s.Assert().Equal("Bore da, sut wyt ti?", got.Examples[0].Source)
}

func (s *CardRepositorySuite) TestGetMissingReturnsNil() {
	userID := s.setupUser("rhiannon")

	got, err := s.repo.Get(context.Background(), "no-such-card", userID)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *CardRepositorySuite) TestGetScopedToUser() {
	ctx := context.Background()
	owner := s.setupUser("rhiannon")
	other := s.setupUser("dafydd")

	s.Require().NoError(s.repo.Insert(ctx, models.Flashcard{
		ID: "card-1", UserID: owner, SourceText: "ci", TargetText: "dog", Category: "animals",
	}))

	got, err := s.repo.Get(ctx, "card-1", other)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *CardRepositorySuite) TestListFiltersByCategory() {
	ctx := context.Background()
	userID := s.setupUser("rhiannon")

	for _, c := range []models.Flashcard{
		{ID: "a", UserID: userID, SourceText: "ci", TargetText: "dog", Category: "animals"},
		{ID: "b", UserID: userID, SourceText: "cath", TargetText: "cat", Category: "animals"},
		{ID: "c", UserID: userID, SourceText: "coch", TargetText: "red", Category: "colours"},
	} {
		s.Require().NoError(s.repo.Insert(ctx, c))
	}

	cards, err := s.repo.List(ctx, models.CardFilter{UserID: userID, Category: "animals"})
	s.Require().NoError(err)
	s.Assert().Len(cards, 2)

	all, err := s.repo.List(ctx, models.CardFilter{UserID: userID})
	s.Require().NoError(err)
	s.Assert().Len(all, 3)

	count, err := s.repo.Count(ctx, models.CardFilter{UserID: userID, Category: "colours"})
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *CardRepositorySuite) TestListPagination() {
	ctx := context.Background()
	userID := s.setupUser("rhiannon")

	for _, id := range []string{"a", "b", "c", "d"} {
		s.Require().NoError(s.repo.Insert(ctx, models.Flashcard{
			ID: id, UserID: userID, SourceText: id, TargetText: id, Category: "misc",
		}))
	}

	page, err := s.repo.List(ctx, models.CardFilter{UserID: userID, Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Assert().Len(page, 2)
}

func (s *CardRepositorySuite) TestCategories() {
	ctx := context.Background()
	userID := s.setupUser("rhiannon")

	for _, c := range []models.Flashcard{
		{ID: "a", UserID: userID, SourceText: "ci", TargetText: "dog", Category: "animals"},
		{ID: "b", UserID: userID, SourceText: "coch", TargetText: "red", Category: "colours"},
		{ID: "c", UserID: userID, SourceText: "glas", TargetText: "blue", Category: "colours"},
	} {
		s.Require().NoError(s.repo.Insert(ctx, c))
	}

	categories, err := s.repo.Categories(ctx, userID)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"animals", "colours"}, categories)
}

func (s *CardRepositorySuite) TestDeleteRemovesProgress() {
	ctx := context.Background()
	userID := s.setupUser("rhiannon")

	s.Require().NoError(s.repo.Insert(ctx, models.Flashcard{
		ID: "card-1", UserID: userID, SourceText: "ci", TargetText: "dog", Category: "animals",
	}))
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO progress (user_id, card_id, points, review_count, correct_answers, incorrect_answers, learnt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, userID, "card-1", 20, 3, 2, 1, false)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, "card-1", userID))

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM progress WHERE card_id = ?`, "card-1").Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(0, count)

	err = s.repo.Delete(ctx, "card-1", userID)
	s.Assert().Error(err)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
