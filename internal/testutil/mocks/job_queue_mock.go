package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/celyn/geirfa/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(userID int64, source string, cards []models.Flashcard) error {
	args := m.Called(userID, source, cards)
	return args.Error(0)
}
