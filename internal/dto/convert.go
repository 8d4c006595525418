package dto

import "topic-quiz/internal/domain"

func NewQuizResponse(q *domain.Quiz) QuizResponse {
	questions := make([]QuestionResponse, 0, len(q.Questions))
	for _, question := range q.Questions {
		questions = append(questions, QuestionResponse{
			ID:   question.ID,
			Stem: question.Stem,
			Options: OptionsResponse{
				A: question.Options.A,
				B: question.Options.B,
				C: question.Options.C,
				D: question.Options.D,
			},
			Correct:     string(question.Correct),
			Explanation: question.Explanation,
		})
	}
	return QuizResponse{
		ID:        q.ID,
		Topic:     q.Topic,
		Context:   q.Context,
		Questions: questions,
		CreatedAt: q.CreatedAt,
	}
}

func NewAttemptResponse(a *domain.Attempt) AttemptResponse {
	answers := make(map[string]string, len(a.Answers))
	for id, label := range a.Answers {
		answers[id] = string(label)
	}
	return AttemptResponse{
		ID:        a.ID,
		QuizID:    a.QuizID,
		Answers:   answers,
		Score:     a.Score,
		CreatedAt: a.CreatedAt,
	}
}

func NewAttemptReviewResponse(r *domain.AttemptReview) AttemptReviewResponse {
	resp := AttemptReviewResponse{Attempt: NewAttemptResponse(r.Attempt)}
	if r.Quiz != nil {
		quiz := NewQuizResponse(r.Quiz)
		resp.Quiz = &quiz
		resp.ReviewAvailable = true
	}
	return resp
}

// ToDomainAnswers converts request answers. Labels are not validated here.
func ToDomainAnswers(answers map[string]string) domain.Answers {
	if answers == nil {
		return nil
	}
	out := make(domain.Answers, len(answers))
	for id, label := range answers {
		out[id] = domain.Label(label)
	}
	return out
}
