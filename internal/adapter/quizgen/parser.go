package quizgen

import (
	"encoding/json"
	"strings"

	"topic-quiz/internal/domain"
)

// FenceStripper removes presentation wrapping from raw model output.
type FenceStripper func(string) string

// StripCodeFences removes a leading ``` line (with or without a language tag)
// and a trailing ``` from s, then trims surrounding whitespace. Unfenced input
// is only trimmed.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimLeft(s[3:], "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ResponseParser turns raw completion text into a generic JSON value.
type ResponseParser struct {
	strip FenceStripper
}

// NewResponseParser uses StripCodeFences when strip is nil.
func NewResponseParser(strip FenceStripper) *ResponseParser {
	if strip == nil {
		strip = StripCodeFences
	}
	return &ResponseParser{strip: strip}
}

// Parse returns a MALFORMED_RESPONSE error when the stripped text is not a
// single JSON document.
func (p *ResponseParser) Parse(raw string) (any, error) {
	cleaned := p.strip(raw)
	if cleaned == "" {
		return nil, domain.NewMalformedResponseError(nil)
	}
	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil, domain.NewMalformedResponseError(err)
	}
	return v, nil
}
