package validation

import (
	"fmt"
	"strings"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/util"
)

// ValidateQuizID checks that id is present and is a ULID.
func ValidateQuizID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("Quiz ID is required")
	}
	if !util.IsULID(id) {
		return domain.NewValidationError("Quiz ID is malformed")
	}
	return nil
}

// ValidateAttemptID checks that id is present and is a ULID.
func ValidateAttemptID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("Attempt ID is required")
	}
	if !util.IsULID(id) {
		return domain.NewValidationError("Attempt ID is malformed")
	}
	return nil
}

// ValidateAnswers requires an answers object whose values are option labels.
// Keys are not checked against the quiz; unknown keys simply never score.
func ValidateAnswers(answers domain.Answers) error {
	if answers == nil {
		return domain.NewValidationError("Answers are required")
	}
	for id, label := range answers {
		if !label.Valid() {
			return domain.NewValidationError(
				fmt.Sprintf("Answer for %q must be one of A, B, C, D", id))
		}
	}
	return nil
}

// ValidateSubmission validates a submit request in field order.
func ValidateSubmission(quizID string, answers domain.Answers) error {
	if err := ValidateQuizID(quizID); err != nil {
		return err
	}
	return ValidateAnswers(answers)
}
