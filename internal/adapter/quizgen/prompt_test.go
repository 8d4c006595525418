package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt(t *testing.T) {
	p := BuildUserPrompt("Photosynthesis", nil)
	assert.Contains(t, p, "Generate a quiz about: Photosynthesis\n\nReturn ONLY this exact JSON structure:")
	assert.Contains(t, p, `"topic": "Photosynthesis"`)
	assert.Contains(t, p, "Generate exactly 5 questions.")
	assert.NotContains(t, p, "Wikipedia context")

	blank := "   "
	assert.NotContains(t, BuildUserPrompt("Photosynthesis", &blank), "Wikipedia context")

	summary := "Photosynthesis converts light energy into chemical energy."
	p = BuildUserPrompt("Photosynthesis", &summary)
	assert.Contains(t, p, "Generate a quiz about: Photosynthesis\n\nWikipedia context for reference:\n"+summary+"\n\nReturn ONLY")
}

func TestSystemPrompt(t *testing.T) {
	s := SystemPrompt()
	assert.Contains(t, s, "exactly 5 multiple-choice questions")
	assert.Contains(t, s, "Return ONLY valid JSON")
	assert.Contains(t, s, "(q1, q2, q3, q4, q5)")
}
