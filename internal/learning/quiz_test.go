package learning_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celyn/geirfa/internal/learning"
)

func TestBuildQuiz_TwoDistinctQuestions(t *testing.T) {
	sampler := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(3)))

	viewed := []*learning.CardState{
		cardState("a", 0),
		cardState("b", 10),
		cardState("c", 40),
	}

	quiz := sampler.BuildQuiz(viewed, 2)

	require.Len(t, quiz, 2)
	assert.NotEqual(t, quiz[0].Card.Card.ID, quiz[1].Card.Card.ID, "questions must be distinct cards")
	for _, q := range quiz {
		assert.False(t, q.Submitted)
		assert.Empty(t, q.Answer)
	}
}

func TestBuildQuiz_ShortQuiz(t *testing.T) {
	sampler := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(3)))

	quiz := sampler.BuildQuiz([]*learning.CardState{cardState("only", 10)}, 2)
	require.Len(t, quiz, 1, "one eligible card yields a one-question quiz")
	assert.Equal(t, "only", quiz[0].Card.Card.ID)
}

func TestBuildQuiz_EmptyWhenNothingEligible(t *testing.T) {
	sampler := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(3)))

	assert.Empty(t, sampler.BuildQuiz(nil, 2))
	assert.Empty(t, sampler.BuildQuiz([]*learning.CardState{
		cardState("done", 50),
	}, 2), "mastered cards are never quizzed")
}

func TestBuildQuiz_ExcludesMasteredAmongEligible(t *testing.T) {
	sampler := learning.NewSampler(learning.DefaultSettings(), rand.New(rand.NewSource(9)))

	viewed := []*learning.CardState{
		cardState("mastered", 50),
		cardState("open", 20),
	}

	quiz := sampler.BuildQuiz(viewed, 2)
	require.Len(t, quiz, 1)
	assert.Equal(t, "open", quiz[0].Card.Card.ID)
}
