package service

import (
	"context"
	"errors"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/validation"

	"go.uber.org/zap"
)

// QuizService runs the generate and submit pipelines and the read APIs
// used to present stored quizzes and attempts.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	SubmitAttempt(ctx context.Context, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	ListQuizzes(ctx context.Context, limit int) (*dto.QuizListResponse, error)
	GetAttempt(ctx context.Context, id string) (*dto.AttemptReviewResponse, error)
	ListAttempts(ctx context.Context, limit int) (*dto.AttemptHistoryResponse, error)
}

type quizService struct {
	quizzes   domain.QuizRepository
	attempts  domain.AttemptRepository
	safety    *validation.SafetyFilter
	retriever domain.ContextRetriever
	generator domain.QuestionGenerator
}

func NewQuizService(
	quizzes domain.QuizRepository,
	attempts domain.AttemptRepository,
	safety *validation.SafetyFilter,
	retriever domain.ContextRetriever,
	generator domain.QuestionGenerator,
) QuizService {
	return &quizService{
		quizzes:   quizzes,
		attempts:  attempts,
		safety:    safety,
		retriever: retriever,
		generator: generator,
	}
}

// GenerateQuiz validates and screens the topic before any outbound call,
// then fetches optional context, generates and stores the quiz. Either
// exactly one quiz is stored or none.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if req == nil {
		return nil, domain.NewValidationError("Topic is required")
	}
	topic, err := validation.ValidateTopic(req.Topic)
	if err != nil {
		return nil, err
	}
	if err := s.safety.Check(topic); err != nil {
		logger.Get().Info("Topic rejected by safety filter", zap.String("topic", topic))
		return nil, err
	}

	refContext := s.retriever.Retrieve(ctx, topic)
	logger.Get().Debug("Context lookup finished",
		zap.String("topic", topic),
		zap.Bool("has_context", refContext != nil),
	)

	generated, err := s.generator.GenerateQuiz(ctx, topic, refContext)
	if err != nil {
		logger.Get().Warn("Quiz generation failed",
			zap.String("topic", topic),
			zap.String("code", string(domain.CodeOf(err))),
			zap.Error(err),
		)
		return nil, err
	}

	quiz := &domain.Quiz{
		Topic:     topic,
		Context:   refContext,
		Questions: generated.Questions,
	}
	if err := s.quizzes.CreateQuiz(ctx, quiz); err != nil {
		logger.Get().Error("Failed to store generated quiz", zap.String("topic", topic), zap.Error(err))
		return nil, asPersistenceError("Failed to save quiz", err)
	}

	logger.Get().Info("Quiz generated",
		zap.String("quiz_id", quiz.ID),
		zap.String("topic", topic),
		zap.Bool("has_context", refContext != nil),
	)
	return &dto.GenerateQuizResponse{QuizID: quiz.ID}, nil
}

// SubmitAttempt scores the answers against the stored quiz and records the
// attempt. Nothing is stored when the quiz does not exist.
func (s *quizService) SubmitAttempt(ctx context.Context, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error) {
	if req == nil {
		return nil, domain.NewValidationError("Quiz ID is required")
	}
	answers := dto.ToDomainAnswers(req.Answers)
	if err := validation.ValidateSubmission(req.QuizID, answers); err != nil {
		return nil, err
	}

	quiz, err := s.quizzes.GetQuizByID(ctx, req.QuizID)
	if err != nil {
		return nil, asPersistenceError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(req.QuizID)
	}

	attempt := &domain.Attempt{
		QuizID:  quiz.ID,
		Answers: answers,
		Score:   domain.Score(quiz.Questions, answers),
	}
	if err := s.attempts.CreateAttempt(ctx, attempt); err != nil {
		logger.Get().Error("Failed to store attempt", zap.String("quiz_id", quiz.ID), zap.Error(err))
		return nil, asPersistenceError("Failed to save attempt", err)
	}

	logger.Get().Info("Attempt scored",
		zap.String("attempt_id", attempt.ID),
		zap.String("quiz_id", quiz.ID),
		zap.Int("score", attempt.Score),
	)
	return &dto.SubmitAttemptResponse{AttemptID: attempt.ID, Score: attempt.Score}, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	if err := validation.ValidateQuizID(id); err != nil {
		return nil, err
	}
	quiz, err := s.quizzes.GetQuizByID(ctx, id)
	if err != nil {
		return nil, asPersistenceError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) ListQuizzes(ctx context.Context, limit int) (*dto.QuizListResponse, error) {
	quizzes, err := s.quizzes.ListQuizzes(ctx, limit)
	if err != nil {
		return nil, asPersistenceError("Failed to list quizzes", err)
	}
	resp := &dto.QuizListResponse{Quizzes: make([]dto.QuizResponse, 0, len(quizzes))}
	for _, q := range quizzes {
		resp.Quizzes = append(resp.Quizzes, dto.NewQuizResponse(q))
	}
	return resp, nil
}

// GetAttempt returns the attempt with its quiz. A missing quiz is not an
// error; the review is simply unavailable.
func (s *quizService) GetAttempt(ctx context.Context, id string) (*dto.AttemptReviewResponse, error) {
	if err := validation.ValidateAttemptID(id); err != nil {
		return nil, err
	}
	attempt, err := s.attempts.GetAttemptByID(ctx, id)
	if err != nil {
		return nil, asPersistenceError("Failed to load attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("Attempt not found")
	}
	quiz, err := s.quizzes.GetQuizByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, asPersistenceError("Failed to load quiz", err)
	}
	resp := dto.NewAttemptReviewResponse(&domain.AttemptReview{Attempt: attempt, Quiz: quiz})
	return &resp, nil
}

// ListAttempts returns attempt history newest first, each joined with its
// quiz when the quiz still exists.
func (s *quizService) ListAttempts(ctx context.Context, limit int) (*dto.AttemptHistoryResponse, error) {
	attempts, err := s.attempts.ListAttempts(ctx, limit)
	if err != nil {
		return nil, asPersistenceError("Failed to list attempts", err)
	}

	quizzes := make(map[string]*domain.Quiz)
	resp := &dto.AttemptHistoryResponse{Attempts: make([]dto.AttemptReviewResponse, 0, len(attempts))}
	for _, attempt := range attempts {
		quiz, seen := quizzes[attempt.QuizID]
		if !seen {
			quiz, err = s.quizzes.GetQuizByID(ctx, attempt.QuizID)
			if err != nil {
				return nil, asPersistenceError("Failed to load quiz", err)
			}
			quizzes[attempt.QuizID] = quiz
		}
		resp.Attempts = append(resp.Attempts,
			dto.NewAttemptReviewResponse(&domain.AttemptReview{Attempt: attempt, Quiz: quiz}))
	}
	return resp, nil
}

// asPersistenceError keeps domain errors from the store and wraps anything
// else as PERSISTENCE_ERROR.
func asPersistenceError(message string, err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewPersistenceError(message, err)
}
