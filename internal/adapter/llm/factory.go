package llm

import (
	"context"
	"fmt"
	"net/http"

	"topic-quiz/internal/config"
	"topic-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewTextGenerator builds the generator selected by cfg.Provider.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (domain.TextGenerator, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case "", "gemini":
		return NewGeminiTextGenerator(ctx, GeminiOptions{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			BaseURL:     cfg.Gemini.BaseURL,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
			HTTPClient:  httpClient,
		})
	case "ollama":
		model, err := ollama.New(
			ollama.WithServerURL(cfg.Ollama.ServerURL),
			ollama.WithModel(cfg.Ollama.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		return NewLangchainTextGenerator(model, cfg.Ollama.Model, cfg.Temperature, cfg.Timeout), nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai API key is required")
		}
		opts := []openai.Option{
			openai.WithToken(cfg.OpenAI.APIKey),
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		return NewLangchainTextGenerator(model, cfg.OpenAI.Model, cfg.Temperature, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
