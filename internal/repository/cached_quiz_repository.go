package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"topic-quiz/internal/cache"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/logger"

	"go.uber.org/zap"
)

// CachedQuizRepository is a read-through cache in front of a QuizRepository.
// Stored quizzes never change, so entries are only written, never invalidated.
// Cache errors are logged and bypassed.
type CachedQuizRepository struct {
	next  domain.QuizRepository
	cache domain.Cache
	ttl   time.Duration
}

var _ domain.QuizRepository = (*CachedQuizRepository)(nil)

func NewCachedQuizRepository(next domain.QuizRepository, c domain.Cache, ttl time.Duration) *CachedQuizRepository {
	return &CachedQuizRepository{next: next, cache: c, ttl: ttl}
}

func quizCacheKey(id string) string {
	return cache.GenerateCacheKey("quiz", "record", id)
}

func (r *CachedQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if err := r.next.CreateQuiz(ctx, quiz); err != nil {
		return err
	}
	r.store(ctx, quiz)
	return nil
}

func (r *CachedQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	key := quizCacheKey(id)
	cached, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var quiz domain.Quiz
		jsonErr := json.Unmarshal([]byte(cached), &quiz)
		if jsonErr == nil {
			return &quiz, nil
		}
		logger.Get().Warn("Discarding undecodable cached quiz", zap.String("key", key), zap.Error(jsonErr))
	case errors.Is(err, domain.ErrCacheMiss):
	default:
		logger.Get().Warn("Quiz cache read failed", zap.String("key", key), zap.Error(err))
	}

	quiz, err := r.next.GetQuizByID(ctx, id)
	if err != nil || quiz == nil {
		return quiz, err
	}
	r.store(ctx, quiz)
	return quiz, nil
}

func (r *CachedQuizRepository) ListQuizzes(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	return r.next.ListQuizzes(ctx, limit)
}

func (r *CachedQuizRepository) store(ctx context.Context, quiz *domain.Quiz) {
	data, err := json.Marshal(quiz)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz for cache", zap.String("quiz_id", quiz.ID), zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, quizCacheKey(quiz.ID), string(data), r.ttl); err != nil {
		logger.Get().Warn("Quiz cache write failed", zap.String("quiz_id", quiz.ID), zap.Error(err))
	}
}
