package learning_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celyn/geirfa/internal/learning"
	"github.com/celyn/geirfa/internal/models"
)

func cardState(id string, points int) *learning.CardState {
	return &learning.CardState{
		Card: models.Flashcard{
			ID:         id,
			SourceText: "ci",
			TargetText: "dog",
			Category:   "animals",
		},
		Progress: models.Progress{CardID: id, Points: points},
	}
}

func TestShowProbability(t *testing.T) {
	s := learning.DefaultSettings()

	tests := []struct {
		name     string
		points   int
		expected float64
	}{
		{name: "fresh card", points: 0, expected: 1.0},
		{name: "halfway", points: 25, expected: 0.5},
		{name: "floor applies", points: 49, expected: 0.1},
		{name: "mastered excluded", points: 50, expected: 0},
		{name: "over the cap still excluded", points: 60, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, s.ShowProbability(tt.points), 1e-9)
		})
	}
}

func TestQuizProbability(t *testing.T) {
	s := learning.DefaultSettings()

	assert.InDelta(t, 1.0, s.QuizProbability(0), 1e-9)
	assert.InDelta(t, 0.2, s.QuizProbability(45), 1e-9, "quiz floor is higher than show floor")
	assert.Equal(t, 0.0, s.QuizProbability(50))
}

func TestBuildQueue_Weights(t *testing.T) {
	sampler := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(1)))

	queue := sampler.BuildQueue([]*learning.CardState{
		cardState("fresh", 0),
		cardState("halfway", 25),
		cardState("nearly", 45),
	})

	counts := map[string]int{}
	for _, cs := range queue {
		counts[cs.Card.ID]++
	}
	// ceil(probability * 10): 1.0 -> 10, 0.5 -> 5, 0.1 -> 1
	assert.Equal(t, 10, counts["fresh"])
	assert.Equal(t, 5, counts["halfway"])
	assert.Equal(t, 1, counts["nearly"])
	assert.Len(t, queue, 16)
}

func TestBuildQueue_ExcludesMastered(t *testing.T) {
	sampler := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(1)))

	queue := sampler.BuildQueue([]*learning.CardState{
		cardState("active", 10),
		cardState("mastered", 50),
	})

	require.NotEmpty(t, queue)
	for _, cs := range queue {
		assert.NotEqual(t, "mastered", cs.Card.ID, "mastered cards must never be sampled")
	}
}

func TestBuildQueue_Empty(t *testing.T) {
	sampler := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(1)))

	assert.Empty(t, sampler.BuildQueue(nil))
	assert.Empty(t, sampler.BuildQueue([]*learning.CardState{cardState("done", 50)}),
		"all-mastered input means category complete, not an error")
}

func TestBuildQueue_WeightingMonotonicity(t *testing.T) {
	// Over many sampled queues a weaker card must appear at least as often
	// as a stronger one.
	sampler := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(42)))

	weak := 0
	strong := 0
	for i := 0; i < 500; i++ {
		queue := sampler.BuildQueue([]*learning.CardState{
			cardState("weak", 10),
			cardState("strong", 40),
		})
		for _, cs := range queue {
			if cs.Card.ID == "weak" {
				weak++
			} else {
				strong++
			}
		}
	}
	assert.GreaterOrEqual(t, weak, strong, "low-mastery cards must be over-represented")
}

func TestBuildQueue_ShuffleIsSeedDeterministic(t *testing.T) {
	cards := []*learning.CardState{
		cardState("a", 0),
		cardState("b", 20),
		cardState("c", 40),
	}

	first := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(7))).BuildQueue(cards)
	second := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(7))).BuildQueue(cards)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Card.ID, second[i].Card.ID)
	}
}
