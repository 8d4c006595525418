package llm

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"topic-quiz/internal/domain"
)

var statusCodePattern = regexp.MustCompile(`\b(402|429)\b`)

// classifyStatus maps an upstream HTTP status and message to a domain error.
// Quota and billing markers win over the status, since OpenAI reports an
// exhausted quota as a 429.
func classifyStatus(status int, message string, err error) error {
	msg := strings.ToLower(message)
	if isQuotaMessage(msg) {
		return domain.NewQuotaExceededError(err)
	}

	switch {
	case status == http.StatusTooManyRequests:
		return domain.NewRateLimitedError(err)
	case status == http.StatusPaymentRequired:
		return domain.NewQuotaExceededError(err)
	case strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "too many requests"),
		strings.Contains(msg, "resource_exhausted"):
		return domain.NewRateLimitedError(err)
	}
	return domain.NewGenerationFailedError(err)
}

func isQuotaMessage(msg string) bool {
	return strings.Contains(msg, "insufficient_quota") ||
		strings.Contains(msg, "exceeded your current quota") ||
		strings.Contains(msg, "billing") ||
		strings.Contains(msg, "credits")
}

// classifyError handles clients that only expose the status inside the
// error text.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewGenerationFailedError(err)
	}
	msg := err.Error()
	if m := statusCodePattern.FindString(msg); m != "" {
		code, _ := strconv.Atoi(m)
		return classifyStatus(code, msg, err)
	}
	return classifyStatus(0, msg, err)
}
