package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LangchainTextGenerator implements domain.TextGenerator over any
// langchaingo model (ollama, openai).
type LangchainTextGenerator struct {
	model       llms.Model
	name        string
	temperature float64
	timeout     time.Duration
}

func NewLangchainTextGenerator(model llms.Model, name string, temperature float64, timeout time.Duration) *LangchainTextGenerator {
	return &LangchainTextGenerator{
		model:       model,
		name:        name,
		temperature: temperature,
		timeout:     timeout,
	}
}

func (g *LangchainTextGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	l := logger.Get()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, msgs, llms.WithTemperature(g.temperature))
	if err != nil {
		mapped := classifyError(err)
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.String("model", g.name), zap.Error(err))
		} else {
			l.Error("Failed to get response from LLM",
				zap.String("model", g.name),
				zap.String("code", string(domain.CodeOf(mapped))),
				zap.Error(err),
			)
		}
		return "", mapped
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", domain.NewGenerationFailedError(errors.New("empty response from model"))
	}

	text := stripThinking(resp.Choices[0].Content)
	if text == "" {
		return "", domain.NewGenerationFailedError(errors.New("no content in model response"))
	}
	l.Debug("Raw LLM response received", zap.String("model", g.name), zap.Int("length", len(text)))
	return text, nil
}

// stripThinking drops a <think>...</think> block emitted by reasoning models.
func stripThinking(s string) string {
	s = strings.TrimSpace(s)
	if start := strings.Index(s, "<think>"); start != -1 {
		if end := strings.Index(s, "</think>"); end > start {
			s = s[:start] + s[end+len("</think>"):]
		}
	}
	return strings.TrimSpace(s)
}

var _ domain.TextGenerator = (*LangchainTextGenerator)(nil)
