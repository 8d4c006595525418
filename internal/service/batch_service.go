package service

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one topic in a batch run. Exactly one of
// QuizID and Err is set.
type BatchResult struct {
	Topic  string
	QuizID string
	Err    error
}

// Code returns the error code of a failed result, or "" on success.
func (r BatchResult) Code() domain.ErrorCode {
	if r.Err == nil {
		return ""
	}
	return domain.CodeOf(r.Err)
}

// BatchService generates quizzes for many topics, each through the full
// generate pipeline.
type BatchService interface {
	GenerateQuizzes(ctx context.Context, topics []string) []BatchResult
}

type batchService struct {
	quizService QuizService
	concurrency int
	logger      *zap.Logger
}

func NewBatchService(quizService QuizService, concurrency int, logger *zap.Logger) BatchService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &batchService{
		quizService: quizService,
		concurrency: concurrency,
		logger:      logger,
	}
}

// GenerateQuizzes runs one pipeline per topic with at most concurrency in
// flight. A failing topic does not stop the others. Results keep input order.
func (s *batchService) GenerateQuizzes(ctx context.Context, topics []string) []BatchResult {
	s.logger.Info("Starting batch quiz generation",
		zap.Int("topics", len(topics)),
		zap.Int("concurrency", s.concurrency),
		zap.Time("start_time", time.Now()),
	)

	results := make([]BatchResult, len(topics))
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, topic := range topics {
		g.Go(func() error {
			results[i] = s.generateOne(ctx, topic)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info("Batch quiz generation finished",
		zap.Int("succeeded", len(results)-failed),
		zap.Int("failed", failed),
	)
	return results
}

func (s *batchService) generateOne(ctx context.Context, topic string) BatchResult {
	if err := ctx.Err(); err != nil {
		return BatchResult{Topic: topic, Err: domain.NewGenerationFailedError(err)}
	}
	resp, err := s.quizService.GenerateQuiz(ctx, &dto.GenerateQuizRequest{Topic: topic})
	if err != nil {
		s.logger.Warn("Batch topic failed",
			zap.String("topic", topic),
			zap.String("code", string(domain.CodeOf(err))),
			zap.Error(err),
		)
		return BatchResult{Topic: topic, Err: err}
	}
	s.logger.Info("Batch topic generated", zap.String("topic", topic), zap.String("quiz_id", resp.QuizID))
	return BatchResult{Topic: topic, QuizID: resp.QuizID}
}

// ReadTopics reads one topic per line, skipping blank lines and lines
// starting with "#".
func ReadTopics(r io.Reader) ([]string, error) {
	var topics []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		topics = append(topics, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return topics, nil
}
