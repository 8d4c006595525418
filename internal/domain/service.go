package domain

import "context"

// QuizRepository persists generated quizzes.
type QuizRepository interface {
	// CreateQuiz assigns ID and CreatedAt and stores the quiz atomically.
	CreateQuiz(ctx context.Context, quiz *Quiz) error

	// GetQuizByID returns nil, nil when no quiz has the id.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// ListQuizzes returns up to limit quizzes, newest first.
	ListQuizzes(ctx context.Context, limit int) ([]*Quiz, error)
}

// AttemptRepository persists scored attempts.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *Attempt) error

	// GetAttemptByID returns nil, nil when no attempt has the id.
	GetAttemptByID(ctx context.Context, id string) (*Attempt, error)

	// ListAttempts returns up to limit attempts, newest first.
	ListAttempts(ctx context.Context, limit int) ([]*Attempt, error)
}

// TextGenerator is the generative model port. Implementations return the raw
// completion text and translate upstream failures into RATE_LIMITED,
// QUOTA_EXCEEDED or GENERATION_FAILED domain errors.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ContextRetriever looks up a short reference summary for a topic. It never
// fails; a nil result means no context is available.
type ContextRetriever interface {
	Retrieve(ctx context.Context, topic string) *string
}

// QuestionGenerator turns a topic and optional context into a validated quiz.
type QuestionGenerator interface {
	GenerateQuiz(ctx context.Context, topic string, refContext *string) (*GeneratedQuiz, error)
}
