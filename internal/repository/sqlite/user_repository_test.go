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

type UserRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TestUpsertIsIdempotent() {
	ctx := context.Background()

	u1, err := s.repo.Upsert(ctx, "rhiannon")
	s.Require().NoError(err)
	s.Require().NotNil(u1)

	u2, err := s.repo.Upsert(ctx, "rhiannon")
	s.Require().NoError(err)
	s.Assert().Equal(u1.ID, u2.ID)

	users, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(users, 1)
}

func (s *UserRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *UserRepositorySuite) TestDeleteCascades() {
	ctx := context.Background()

	u, err := s.repo.Upsert(ctx, "rhiannon")
	s.Require().NoError(err)

	cards := sqlite.NewCardRepository(s.db.DB)
	s.Require().NoError(cards.Insert(ctx, models.Flashcard{
		ID: "card-1", UserID: u.ID, SourceText: "ci", TargetText: "dog", Category: "animals",
	}))
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO progress (user_id, card_id, points, review_count, correct_answers, incorrect_answers, learnt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, "card-1", 10, 1, 1, 0, false)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, u.ID))

	got, err := s.repo.Get(ctx, u.ID)
	s.Require().NoError(err)
	s.Assert().Nil(got)

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcards`).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(0, count)

	s.Assert().Error(s.repo.Delete(ctx, u.ID))
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
