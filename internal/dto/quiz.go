package dto

import "time"

// GenerateQuizRequest is the body of POST /api/quizzes
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	Topic string `json:"topic" example:"Solar System"`
}

// GenerateQuizResponse carries the id of the stored quiz
type GenerateQuizResponse struct {
	QuizID string `json:"quizId" example:"01HZY3M1W5T7J9KXQ2R4S6V8YA"`
}

// SubmitAttemptRequest is the body of POST /api/attempts
// @Description Request body for submitting answers. Keys are question ids, values are A, B, C or D.
type SubmitAttemptRequest struct {
	QuizID  string            `json:"quizId"`
	Answers map[string]string `json:"answers"`
}

type SubmitAttemptResponse struct {
	AttemptID string `json:"attemptId"`
	Score     int    `json:"score" example:"4"`
}

// OptionsResponse holds the four option texts keyed by label
type OptionsResponse struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

type QuestionResponse struct {
	ID          string          `json:"id"`
	Stem        string          `json:"stem"`
	Options     OptionsResponse `json:"options"`
	Correct     string          `json:"correct"`
	Explanation string          `json:"explanation"`
}

// QuizResponse represents a stored quiz
// @Description Quiz with its five questions
type QuizResponse struct {
	ID        string             `json:"id"`
	Topic     string             `json:"topic"`
	Context   *string            `json:"context"`
	Questions []QuestionResponse `json:"questions"`
	CreatedAt time.Time          `json:"createdAt"`
}

type QuizListResponse struct {
	Quizzes []QuizResponse `json:"quizzes"`
}

type AttemptResponse struct {
	ID        string            `json:"id"`
	QuizID    string            `json:"quizId"`
	Answers   map[string]string `json:"answers"`
	Score     int               `json:"score"`
	CreatedAt time.Time         `json:"createdAt"`
}

// AttemptReviewResponse pairs an attempt with its quiz. Quiz is null and
// ReviewAvailable false when the quiz no longer exists.
type AttemptReviewResponse struct {
	Attempt         AttemptResponse `json:"attempt"`
	Quiz            *QuizResponse   `json:"quiz"`
	ReviewAvailable bool            `json:"reviewAvailable"`
}

type AttemptHistoryResponse struct {
	Attempts []AttemptReviewResponse `json:"attempts"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
