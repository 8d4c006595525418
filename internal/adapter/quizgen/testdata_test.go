package quizgen

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func validQuizMap(n int) map[string]any {
	questions := make([]any, n)
	for i := 0; i < n; i++ {
		questions[i] = map[string]any{
			"id":   fmt.Sprintf("q%d", i+1),
			"stem": fmt.Sprintf("Question %d?", i+1),
			"options": map[string]any{
				"A": "Mercury", "B": "Venus", "C": "Earth", "D": "Mars",
			},
			"correct":     "A",
			"explanation": "Mercury is closest to the Sun.",
		}
	}
	return map[string]any{"topic": "Solar System", "questions": questions}
}

func validQuizJSON(t *testing.T) string {
	t.Helper()
	b, err := json.Marshal(validQuizMap(5))
	require.NoError(t, err)
	return string(b)
}

func questionAt(m map[string]any, i int) map[string]any {
	return m["questions"].([]any)[i].(map[string]any)
}
