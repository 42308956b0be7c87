package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/services"
	"github.com/celyn/geirfa/internal/testutil/mocks"
)

func TestCardService_CreateAssignsID(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(c models.Flashcard) bool {
		return c.ID != "" && c.SourceText == "ci"
	})).Return(nil)
	svc := services.NewCardService(repo)

	card, err := svc.Create(context.Background(), models.Flashcard{
		UserID:     1,
		SourceText: " ci ",
		TargetText: "dog",
		Category:   "animals",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "ci", card.SourceText)
	repo.AssertExpectations(t)
}

func TestCardService_CreateValidation(t *testing.T) {
	svc := services.NewCardService(new(mocks.MockCardRepository))

	cases := []models.Flashcard{
		{TargetText: "dog", Category: "animals"},
		{SourceText: "ci", Category: "animals"},
		{SourceText: "ci", TargetText: "dog"},
	}
	for _, c := range cases {
		_, err := svc.Create(context.Background(), c)
		assertAppCode(t, err, errors.ErrCodeValidation)
	}
}

func TestCardService_GetMissing(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	repo.On("Get", mock.Anything, "nope", int64(1)).Return(nil, nil)
	svc := services.NewCardService(repo)

	_, err := svc.Get(context.Background(), "nope", 1)
	assertAppCode(t, err, errors.ErrCodeNotFound)
}
