package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiTextGenerator implements domain.TextGenerator with the Gemini API.
type GeminiTextGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

type GeminiOptions struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

func NewGeminiTextGenerator(ctx context.Context, opts GeminiOptions) (*GeminiTextGenerator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("gemini model name is required")
	}

	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiTextGenerator{
		client:      client,
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		timeout:     opts.Timeout,
	}, nil
}

func (g *GeminiTextGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}
	if g.temperature > 0 {
		temp := g.temperature
		config.Temperature = &temp
	}

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), config)
	if err != nil {
		mapped := mapGeminiError(err)
		logger.Get().Error("Gemini request failed",
			zap.String("model", g.model),
			zap.String("code", string(domain.CodeOf(mapped))),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", mapped
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", domain.NewGenerationFailedError(errors.New("no content in Gemini response"))
	}

	logger.Get().Debug("Gemini response received",
		zap.String("model", g.model),
		zap.Int("length", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		// Gemini 429s carry quota wording even for per-minute limits.
		if apiErr.Code == http.StatusTooManyRequests {
			return domain.NewRateLimitedError(err)
		}
		return classifyStatus(apiErr.Code, apiErr.Status+" "+apiErr.Message, err)
	}
	return classifyError(err)
}

var _ domain.TextGenerator = (*GeminiTextGenerator)(nil)
