package domain

// Score counts the questions whose recorded answer equals the correct label.
// Unanswered questions and answers for unknown question ids count as misses.
func Score(questions []Question, answers Answers) int {
	score := 0
	for _, q := range questions {
		if a, ok := answers[q.ID]; ok && a == q.Correct {
			score++
		}
	}
	return score
}
