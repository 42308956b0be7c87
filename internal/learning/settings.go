package learning

// Settings holds the tunable constants of the learning engine. The defaults
// mirror the product behaviour: a 50-point mastery cap, 10 points per correct
// quiz answer, a quiz every 5 card advances once at least 2 distinct cards
// have been seen.
type Settings struct {
	MaxPoints          int     // mastery threshold; points are clamped here
	PointsPerCorrect   int     // flat award per correct quiz answer
	QuizInterval       int     // card advances between quizzes
	QuizSize           int     // distinct questions per quiz
	MinViewedForQuiz   int     // distinct viewed cards required before a quiz
	MinShowProbability float64 // floor for review sampling
	MinQuizProbability float64 // floor for quiz sampling
}

// DefaultSettings returns the standard engine configuration.
func DefaultSettings() Settings {
	return Settings{
		MaxPoints:          50,
		PointsPerCorrect:   10,
		QuizInterval:       5,
		QuizSize:           2,
		MinViewedForQuiz:   2,
		MinShowProbability: 0.1,
		MinQuizProbability: 0.2,
	}
}

// ShowProbability converts a card's points into the probability of it being
// shown during review. Mastered cards are excluded outright; below the cap
// the probability falls linearly with points, floored at MinShowProbability.
func (s Settings) ShowProbability(points int) float64 {
	if points >= s.MaxPoints {
		return 0
	}
	p := 1 - float64(points)/float64(s.MaxPoints)
	if p < s.MinShowProbability {
		return s.MinShowProbability
	}
	return p
}

// QuizProbability is ShowProbability with a higher floor, used when picking
// quiz candidates.
func (s Settings) QuizProbability(points int) float64 {
	if points >= s.MaxPoints {
		return 0
	}
	p := 1 - float64(points)/float64(s.MaxPoints)
	if p < s.MinQuizProbability {
		return s.MinQuizProbability
	}
	return p
}
