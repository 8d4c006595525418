package quizgen

import (
	"context"
	"errors"
	"strings"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/logger"

	"go.uber.org/zap"
)

// QuestionGenerator prompts a TextGenerator once and returns the parsed,
// schema-checked quiz.
type QuestionGenerator struct {
	llm       domain.TextGenerator
	parser    *ResponseParser
	validator *SchemaValidator
}

func NewQuestionGenerator(llm domain.TextGenerator, parser *ResponseParser, validator *SchemaValidator) *QuestionGenerator {
	if parser == nil {
		parser = NewResponseParser(nil)
	}
	if validator == nil {
		validator = MustNewSchemaValidator()
	}
	return &QuestionGenerator{llm: llm, parser: parser, validator: validator}
}

func (g *QuestionGenerator) GenerateQuiz(ctx context.Context, topic string, refContext *string) (*domain.GeneratedQuiz, error) {
	userPrompt := BuildUserPrompt(topic, refContext)

	text, err := g.llm.Generate(ctx, SystemPrompt(), userPrompt)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewGenerationFailedError(err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewGenerationFailedError(errors.New("no content in model response"))
	}

	parsed, err := g.parser.Parse(text)
	if err != nil {
		logger.Get().Warn("Model response was not valid JSON",
			zap.String("topic", topic),
			zap.Int("response_length", len(text)),
		)
		return nil, err
	}

	quiz, err := g.validator.Validate(parsed)
	if err != nil {
		logger.Get().Warn("Model response failed schema validation",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return nil, err
	}
	return quiz, nil
}

var _ domain.QuestionGenerator = (*QuestionGenerator)(nil)
