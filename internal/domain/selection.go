package domain

import "math/rand"

// Matches reports whether a question satisfies the category and difficulty
// filters of the settings. Amount is not considered here.
func (s Settings) Matches(q Question) bool {
	if s.Category != CategoryAny && s.Category != "" && q.Category != s.Category {
		return false
	}
	if s.Difficulty != DifficultyAny && s.Difficulty != "" && q.Difficulty != s.Difficulty {
		return false
	}
	return true
}

// SelectQuestions picks settings.Amount questions matching the filters from a
// bank, in random order, and fixes each question's option order with an
// unbiased shuffle. It returns ErrEmptyResult when the bank cannot satisfy
// the requested amount.
func SelectQuestions(bank []Question, settings Settings, rnd *rand.Rand) ([]Question, error) {
	matched := make([]Question, 0, len(bank))
	for _, q := range bank {
		if settings.Matches(q) {
			matched = append(matched, q)
		}
	}
	if len(matched) < settings.Amount {
		return nil, ErrEmptyResult
	}

	rnd.Shuffle(len(matched), func(i, j int) {
		matched[i], matched[j] = matched[j], matched[i]
	})

	picked := matched[:settings.Amount]
	for i := range picked {
		picked[i].Options = ShuffleOptions(picked[i].CorrectAnswer, picked[i].Distractors, rnd)
	}
	return picked, nil
}

// ShuffleOptions builds the presented option order for a question: the
// correct answer plus every distractor in a Fisher-Yates permutation.
func ShuffleOptions(correct string, distractors []string, rnd *rand.Rand) []string {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, correct)
	options = append(options, distractors...)
	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
