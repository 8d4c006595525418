package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"topic-quiz/internal/domain"
)

// ValidateTopic trims the raw topic and checks its length. The returned topic
// is the form used by every later stage.
func ValidateTopic(raw string) (string, error) {
	topic := strings.TrimSpace(raw)
	if topic == "" {
		return "", domain.NewValidationError("Topic is required")
	}
	if utf8.RuneCountInString(topic) > domain.MaxTopicLength {
		return "", domain.NewValidationError(
			fmt.Sprintf("Topic must be %d characters or less", domain.MaxTopicLength))
	}
	return topic, nil
}
