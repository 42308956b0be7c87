package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/learning"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/services"
	"github.com/celyn/geirfa/internal/testutil/mocks"
)

func TestUserService_GetOrCreateTrimsUsername(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	repo.On("Upsert", mock.Anything, "rhiannon").Return(&models.User{ID: 1, Username: "rhiannon"}, nil)
	svc := services.NewUserService(repo)

	user, err := svc.GetOrCreate(context.Background(), "  rhiannon  ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	repo.AssertExpectations(t)
}

func TestUserService_GetOrCreateEmptyUsername(t *testing.T) {
	svc := services.NewUserService(new(mocks.MockUserRepository))

	_, err := svc.GetOrCreate(context.Background(), "   ")
	assertAppCode(t, err, errors.ErrCodeValidation)
}

func TestUserService_GetMissing(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	repo.On("Get", mock.Anything, int64(9)).Return(nil, nil)
	svc := services.NewUserService(repo)

	_, err := svc.Get(context.Background(), 9)
	assertAppCode(t, err, errors.ErrCodeNotFound)
}

func TestStatsService_ProgressFailureSurfacesAsInternal(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	cards.On("List", mock.Anything, mock.Anything).Return([]models.Flashcard{{ID: "c1", Category: "animals"}}, nil)
	progress := new(mocks.MockProgressRepository)
	progress.On("ListByCategory", mock.Anything, int64(1), "animals").Return(nil, fmt.Errorf("disk gone"))

	svc := services.NewStatsService(cards, progress, learning.DefaultSettings())
	_, err := svc.CategoryStats(context.Background(), 1, "animals")
	assertAppCode(t, err, errors.ErrCodeInternal)
}
