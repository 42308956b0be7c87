package learning

// QuizQuestion is one active-recall prompt built from a previously viewed
// card. The prompt shown to the user is the card's source text; the target
// text stays hidden until the answer is submitted.
type QuizQuestion struct {
	Card      *CardState
	Answer    string
	Submitted bool
	Correct   bool
}

// BuildQuiz selects up to size distinct questions from the viewed set,
// favouring low-mastery cards via the quiz weighting. Mastered cards are
// never eligible. Fewer than size, or even zero, questions is a legal
// outcome callers must handle.
func (s *Sampler) BuildQuiz(viewed []*CardState, size int) []*QuizQuestion {
	var eligible []*CardState
	for _, cs := range viewed {
		if cs.Progress.Points < s.settings.MaxPoints {
			eligible = append(eligible, cs)
		}
	}

	pool := s.buildQuizPool(eligible)

	var questions []*QuizQuestion
	chosen := make(map[string]bool, size)
	for _, cs := range pool {
		if len(questions) >= size {
			break
		}
		if chosen[cs.Card.ID] {
			continue
		}
		chosen[cs.Card.ID] = true
		questions = append(questions, &QuizQuestion{Card: cs})
	}
	return questions
}
