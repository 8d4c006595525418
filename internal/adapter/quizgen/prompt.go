package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz generator. Generate exactly 5 multiple-choice questions about the given topic. Each question must have 4 options (A, B, C, D) with exactly one correct answer. Provide clear explanations for each answer.

IMPORTANT:
- Return ONLY valid JSON, no markdown or additional text
- Do not include any inappropriate, sexual, violent, or hateful content
- Questions should be educational and factually accurate
- Each question ID should be unique (q1, q2, q3, q4, q5)`

const userPromptTemplate = `Generate a quiz about: %s%s

Return ONLY this exact JSON structure:
{
  "topic": %q,
  "questions": [
    {
      "id": "q1",
      "stem": "Question text here?",
      "options": { "A": "Option A", "B": "Option B", "C": "Option C", "D": "Option D" },
      "correct": "A",
      "explanation": "Explanation of why this answer is correct and why others are wrong."
    }
  ]
}

Generate exactly 5 questions.`

// SystemPrompt returns the fixed instructions sent with every generation.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt embeds the topic, the optional reference context and a
// literal example of the expected JSON.
func BuildUserPrompt(topic string, refContext *string) string {
	var contextBlock string
	if refContext != nil && strings.TrimSpace(*refContext) != "" {
		contextBlock = "\n\nWikipedia context for reference:\n" + *refContext
	}
	return fmt.Sprintf(userPromptTemplate, topic, contextBlock, topic)
}
