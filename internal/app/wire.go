package app

import (
	"context"
	"fmt"
	"time"

	"topic-quiz/internal/adapter/llm"
	"topic-quiz/internal/adapter/quizgen"
	"topic-quiz/internal/adapter/wiki"
	"topic-quiz/internal/config"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/repository"
	"topic-quiz/internal/service"
	"topic-quiz/internal/validation"

	"go.uber.org/zap"
)

const (
	defaultQuizCacheTTL    = 24 * time.Hour
	defaultContextCacheTTL = 6 * time.Hour
)

// NewQuizService assembles the generate and submit pipelines shared by the
// API server and the batch generator. cache may be nil.
func NewQuizService(ctx context.Context, cfg *config.Config, db repository.DBTX, cache domain.Cache) (service.QuizService, error) {
	textGenerator, err := llm.NewTextGenerator(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}
	logger.Get().Info("Text generator initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.Duration("timeout", cfg.LLM.Timeout),
	)

	var quizRepo domain.QuizRepository = repository.NewQuizDatabaseAdapter(db)
	if cache != nil {
		quizRepo = repository.NewCachedQuizRepository(quizRepo,
			cache, cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Quiz, defaultQuizCacheTTL))
	}
	attemptRepo := repository.NewAttemptDatabaseAdapter(db)

	return service.NewQuizService(
		quizRepo,
		attemptRepo,
		validation.MustNewSafetyFilter(),
		newContextRetriever(cfg, cache),
		quizgen.NewQuestionGenerator(textGenerator, nil, nil),
	), nil
}

func newContextRetriever(cfg *config.Config, cache domain.Cache) domain.ContextRetriever {
	if !cfg.Context.Enabled {
		logger.Get().Info("Context lookup disabled")
		return wiki.NoopRetriever{}
	}
	return wiki.NewSummaryRetriever(wiki.Options{
		BaseURL:   cfg.Context.BaseURL,
		UserAgent: cfg.Context.UserAgent,
		Timeout:   cfg.Context.Timeout,
		Cache:     cache,
		CacheTTL:  cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Context, defaultContextCacheTTL),
	})
}
