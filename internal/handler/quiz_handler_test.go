package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/handler"
	"topic-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type MockQuizService struct {
	GenerateQuizFunc  func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	SubmitAttemptFunc func(ctx context.Context, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error)
	GetQuizFunc       func(ctx context.Context, id string) (*dto.QuizResponse, error)
	ListQuizzesFunc   func(ctx context.Context, limit int) (*dto.QuizListResponse, error)
	GetAttemptFunc    func(ctx context.Context, id string) (*dto.AttemptReviewResponse, error)
	ListAttemptsFunc  func(ctx context.Context, limit int) (*dto.AttemptHistoryResponse, error)
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, req)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}

func (m *MockQuizService) SubmitAttempt(ctx context.Context, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error) {
	if m.SubmitAttemptFunc != nil {
		return m.SubmitAttemptFunc(ctx, req)
	}
	panic("MockQuizService.SubmitAttemptFunc not implemented")
}

func (m *MockQuizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, id)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}

func (m *MockQuizService) ListQuizzes(ctx context.Context, limit int) (*dto.QuizListResponse, error) {
	if m.ListQuizzesFunc != nil {
		return m.ListQuizzesFunc(ctx, limit)
	}
	panic("MockQuizService.ListQuizzesFunc not implemented")
}

func (m *MockQuizService) GetAttempt(ctx context.Context, id string) (*dto.AttemptReviewResponse, error) {
	if m.GetAttemptFunc != nil {
		return m.GetAttemptFunc(ctx, id)
	}
	panic("MockQuizService.GetAttemptFunc not implemented")
}

func (m *MockQuizService) ListAttempts(ctx context.Context, limit int) (*dto.AttemptHistoryResponse, error) {
	if m.ListAttemptsFunc != nil {
		return m.ListAttemptsFunc(ctx, limit)
	}
	panic("MockQuizService.ListAttemptsFunc not implemented")
}

func setupApp(svc *MockQuizService, checks map[string]handler.HealthCheck) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.SetupRoutes(app, handler.NewQuizHandler(svc), handler.NewHealthHandler(checks))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewBuffer(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

func TestGenerateQuiz(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockQuizService{
			GenerateQuizFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
				assert.Equal(t, "Solar System", req.Topic)
				return &dto.GenerateQuizResponse{QuizID: "01HZY3M1W5T7J9KXQ2R4S6V8YA"}, nil
			},
		}
		status, body := doJSON(t, setupApp(svc, nil), http.MethodPost, "/api/quizzes", dto.GenerateQuizRequest{Topic: "Solar System"})

		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"quizId":"01HZY3M1W5T7J9KXQ2R4S6V8YA"}`, string(body))
	})

	t.Run("invalid json", func(t *testing.T) {
		status, body := doJSON(t, setupApp(&MockQuizService{}, nil), http.MethodPost, "/api/quizzes", "{topic:")

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, body).Code)
	})

	errorCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domain.NewValidationError("Topic is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"policy", domain.NewPolicyRejectionError(), http.StatusBadRequest, "POLICY_REJECTION"},
		{"rate limited", domain.NewRateLimitedError(errors.New("429")), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"quota", domain.NewQuotaExceededError(errors.New("402")), http.StatusPaymentRequired, "QUOTA_EXCEEDED"},
		{"schema", domain.NewSchemaViolationError("at '/questions': minItems"), http.StatusInternalServerError, "SCHEMA_VIOLATION"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &MockQuizService{
				GenerateQuizFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
					return nil, tc.err
				},
			}
			status, body := doJSON(t, setupApp(svc, nil), http.MethodPost, "/api/quizzes", dto.GenerateQuizRequest{Topic: "x"})

			assert.Equal(t, tc.wantStatus, status)
			got := decodeError(t, body)
			assert.Equal(t, tc.wantCode, got.Code)
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestSubmitAttempt(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockQuizService{
			SubmitAttemptFunc: func(ctx context.Context, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error) {
				assert.Equal(t, "quiz-1", req.QuizID)
				assert.Equal(t, map[string]string{"q1": "A", "q2": "B"}, req.Answers)
				return &dto.SubmitAttemptResponse{AttemptID: "attempt-1", Score: 4}, nil
			},
		}
		status, body := doJSON(t, setupApp(svc, nil), http.MethodPost, "/api/attempts",
			`{"quizId":"quiz-1","answers":{"q1":"A","q2":"B"}}`)

		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"attemptId":"attempt-1","score":4}`, string(body))
	})

	t.Run("quiz not found", func(t *testing.T) {
		svc := &MockQuizService{
			SubmitAttemptFunc: func(ctx context.Context, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error) {
				return nil, domain.NewQuizNotFoundError(req.QuizID)
			},
		}
		status, body := doJSON(t, setupApp(svc, nil), http.MethodPost, "/api/attempts", `{"quizId":"x","answers":{}}`)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, dto.ErrorResponse{Error: "Quiz not found", Code: "NOT_FOUND"}, decodeError(t, body))
	})

	t.Run("non-string answer", func(t *testing.T) {
		status, _ := doJSON(t, setupApp(&MockQuizService{}, nil), http.MethodPost, "/api/attempts", `{"quizId":"x","answers":{"q1":1}}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestGetQuizAndAttempt(t *testing.T) {
	svc := &MockQuizService{
		GetQuizFunc: func(ctx context.Context, id string) (*dto.QuizResponse, error) {
			if id != "quiz-1" {
				return nil, domain.NewQuizNotFoundError(id)
			}
			return &dto.QuizResponse{ID: id, Topic: "Go"}, nil
		},
		GetAttemptFunc: func(ctx context.Context, id string) (*dto.AttemptReviewResponse, error) {
			return &dto.AttemptReviewResponse{Attempt: dto.AttemptResponse{ID: id, QuizID: "gone", Score: 2}}, nil
		},
	}
	app := setupApp(svc, nil)

	status, body := doJSON(t, app, http.MethodGet, "/api/quizzes/quiz-1", nil)
	assert.Equal(t, http.StatusOK, status)
	var quiz dto.QuizResponse
	require.NoError(t, json.Unmarshal(body, &quiz))
	assert.Equal(t, "Go", quiz.Topic)

	status, _ = doJSON(t, app, http.MethodGet, "/api/quizzes/other", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/attempts/attempt-1", nil)
	assert.Equal(t, http.StatusOK, status)
	var review map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &review))
	assert.Nil(t, review["quiz"])
	assert.Equal(t, false, review["reviewAvailable"])
}

func TestListEndpoints_Limit(t *testing.T) {
	var gotQuizLimit, gotAttemptLimit int
	svc := &MockQuizService{
		ListQuizzesFunc: func(ctx context.Context, limit int) (*dto.QuizListResponse, error) {
			gotQuizLimit = limit
			return &dto.QuizListResponse{Quizzes: []dto.QuizResponse{}}, nil
		},
		ListAttemptsFunc: func(ctx context.Context, limit int) (*dto.AttemptHistoryResponse, error) {
			gotAttemptLimit = limit
			return &dto.AttemptHistoryResponse{Attempts: []dto.AttemptReviewResponse{}}, nil
		},
	}
	app := setupApp(svc, nil)

	status, body := doJSON(t, app, http.MethodGet, "/api/quizzes?limit=10", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"quizzes":[]}`, string(body))
	assert.Equal(t, 10, gotQuizLimit)

	status, _ = doJSON(t, app, http.MethodGet, "/api/attempts", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, gotAttemptLimit)

	for _, bad := range []string{"abc", "0", "-5"} {
		status, body = doJSON(t, app, http.MethodGet, "/api/quizzes?limit="+bad, nil)
		assert.Equal(t, http.StatusBadRequest, status, bad)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, body).Code)
	}
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		app := setupApp(&MockQuizService{}, map[string]handler.HealthCheck{
			"database": func(context.Context) error { return nil },
			"cache":    func(context.Context) error { return nil },
		})
		status, body := doJSON(t, app, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"status":"ok","services":{"database":"up","cache":"up"}}`, string(body))
	})

	t.Run("degraded", func(t *testing.T) {
		app := setupApp(&MockQuizService{}, map[string]handler.HealthCheck{
			"database": func(context.Context) error { return nil },
			"cache":    func(context.Context) error { return errors.New("connection refused") },
		})
		status, body := doJSON(t, app, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.JSONEq(t, `{"status":"degraded","services":{"database":"up","cache":"down"}}`, string(body))
	})
}
