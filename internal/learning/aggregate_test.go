package learning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/celyn/geirfa/internal/learning"
	"github.com/celyn/geirfa/internal/models"
)

func TestAggregate(t *testing.T) {
	s := learning.DefaultSettings()

	records := []models.Progress{
		{CardID: "a", Points: 50, Learnt: true},
		{CardID: "b", Points: 20},
		{CardID: "c", Points: 15},
	}

	stats := s.Aggregate("greetings", records)

	assert.Equal(t, "greetings", stats.Category)
	assert.Equal(t, 3, stats.TotalCards)
	assert.Equal(t, 1, stats.MasteredCards)
	assert.Equal(t, 85, stats.TotalPoints)
	assert.Equal(t, 28, stats.AveragePoints, "85/3 rounds to nearest integer")
}

func TestAggregate_Empty(t *testing.T) {
	stats := learning.DefaultSettings().Aggregate("empty", nil)

	assert.Equal(t, 0, stats.TotalCards)
	assert.Equal(t, 0, stats.MasteredCards)
	assert.Equal(t, 0, stats.TotalPoints)
	assert.Equal(t, 0, stats.AveragePoints, "average is 0 when there are no cards")
}

func TestAggregate_Idempotent(t *testing.T) {
	s := learning.DefaultSettings()
	records := []models.Progress{
		{CardID: "a", Points: 30},
		{CardID: "b", Points: 50, Learnt: true},
	}

	first := s.Aggregate("food", records)
	second := s.Aggregate("food", records)

	assert.Equal(t, first, second, "aggregation with no intervening writes must be stable")
}

func TestAggregate_RoundingHalfUp(t *testing.T) {
	s := learning.DefaultSettings()
	records := []models.Progress{
		{CardID: "a", Points: 10},
		{CardID: "b", Points: 15},
	}

	stats := s.Aggregate("numbers", records)
	assert.Equal(t, 13, stats.AveragePoints, "12.5 rounds away from zero")
}
