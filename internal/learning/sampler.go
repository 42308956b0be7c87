package learning

import (
	"math"
	"math/rand"
)

// Sampler builds weighted, shuffled card queues. Low-mastery cards are
// replicated in a flat candidate list proportionally to their show
// probability, then the list is shuffled with an unbiased permutation, so a
// weak card tends to be drawn early and more than once without any
// guaranteed repetition.
type Sampler struct {
	settings Settings
	rng      *rand.Rand
}

// NewSampler creates a Sampler. A nil rng falls back to a source seeded from
// the global generator, which is fine everywhere except deterministic tests.
func NewSampler(settings Settings, rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Sampler{settings: settings, rng: rng}
}

// weight converts a probability into an integer replication count in [1,10].
// A zero probability means the card is excluded entirely.
func weight(probability float64) int {
	if probability <= 0 {
		return 0
	}
	return int(math.Ceil(probability * 10))
}

// BuildQueue produces the weighted review queue for a session pass. Mastered
// cards never appear. An empty result means the category is complete, not an
// error.
func (s *Sampler) BuildQueue(cards []*CardState) []*CardState {
	return s.build(cards, s.settings.ShowProbability)
}

// buildQuizPool is BuildQueue with quiz weighting, used by the quiz
// generator.
func (s *Sampler) buildQuizPool(cards []*CardState) []*CardState {
	return s.build(cards, s.settings.QuizProbability)
}

func (s *Sampler) build(cards []*CardState, probability func(points int) float64) []*CardState {
	var pool []*CardState
	for _, cs := range cards {
		w := weight(probability(cs.Progress.Points))
		for i := 0; i < w; i++ {
			pool = append(pool, cs)
		}
	}
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}
