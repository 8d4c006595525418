package validation

import (
	"regexp"

	"topic-quiz/internal/domain"
)

// DefaultBlockedPatterns cover sexual content, violence and self-harm,
// extremist references and hate speech.
var DefaultBlockedPatterns = []string{
	`(?i)\b(porn|sex|nude|nsfw|xxx)\b`,
	`(?i)\b(kill|murder|suicide|self.?harm)\b`,
	`(?i)\b(hitler|nazi|holocaust.?denial)\b`,
	`(?i)\b(racist|racial.?slur|hate.?speech)\b`,
}

// SafetyFilter rejects topics matching any blocked pattern.
type SafetyFilter struct {
	patterns []*regexp.Regexp
}

// NewSafetyFilter compiles the given patterns, or DefaultBlockedPatterns when
// none are passed.
func NewSafetyFilter(patterns ...string) (*SafetyFilter, error) {
	if len(patterns) == 0 {
		patterns = DefaultBlockedPatterns
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return &SafetyFilter{patterns: compiled}, nil
}

// MustNewSafetyFilter is like NewSafetyFilter but panics on a bad pattern.
func MustNewSafetyFilter(patterns ...string) *SafetyFilter {
	f, err := NewSafetyFilter(patterns...)
	if err != nil {
		panic(err)
	}
	return f
}

// Check returns a POLICY_REJECTION error when the topic is blocked.
func (f *SafetyFilter) Check(topic string) error {
	for _, re := range f.patterns {
		if re.MatchString(topic) {
			return domain.NewPolicyRejectionError()
		}
	}
	return nil
}
