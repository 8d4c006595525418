package handler

import (
	"strconv"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz and attempt HTTP requests. Errors are returned to
// the fiber error handler, which renders them.
type QuizHandler struct {
	service service.QuizService
}

func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates and stores a five-question multiple choice quiz on the topic
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Topic"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAttempt godoc
// @Summary Submit answers
// @Description Scores the answers against the quiz and stores the attempt
// @Tags attempt
// @Accept json
// @Produce json
// @Param request body dto.SubmitAttemptRequest true "Answers"
// @Success 200 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/attempts [post]
func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	resp, err := h.service.SubmitAttempt(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	resp, err := h.service.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Returns stored quizzes, newest first
// @Tags quiz
// @Produce json
// @Param limit query int false "Maximum number of quizzes (1-100, default 50)"
// @Success 200 {object} dto.QuizListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	limit, err := parseLimit(c)
	if err != nil {
		return err
	}
	resp, err := h.service.ListQuizzes(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAttempt godoc
// @Summary Review an attempt
// @Description Returns the attempt with its quiz; quiz is null when it no longer exists
// @Tags attempt
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptReviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/attempts/{id} [get]
func (h *QuizHandler) GetAttempt(c *fiber.Ctx) error {
	resp, err := h.service.GetAttempt(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListAttempts godoc
// @Summary Attempt history
// @Description Returns attempts newest first, each with its quiz when available
// @Tags attempt
// @Produce json
// @Param limit query int false "Maximum number of attempts (1-100, default 50)"
// @Success 200 {object} dto.AttemptHistoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/attempts [get]
func (h *QuizHandler) ListAttempts(c *fiber.Ctx) error {
	limit, err := parseLimit(c)
	if err != nil {
		return err
	}
	resp, err := h.service.ListAttempts(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// parseLimit reads the optional limit query parameter. Absent means 0,
// which the stores replace with their default.
func parseLimit(c *fiber.Ctx) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, domain.NewValidationError("limit must be a positive integer")
	}
	return limit, nil
}
