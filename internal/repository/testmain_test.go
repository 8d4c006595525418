package repository

import (
	"os"
	"testing"

	"topic-quiz/internal/config"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error", Env: "test"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func sampleQuestions() []domain.Question {
	questions := make([]domain.Question, 0, domain.QuestionsPerQuiz)
	for i, correct := range []domain.Label{"A", "B", "C", "C", "D"} {
		id := string(rune('1' + i))
		questions = append(questions, domain.Question{
			ID:          "q" + id,
			Stem:        "Question " + id,
			Options:     domain.Options{A: "a", B: "b", C: "c", D: "d"},
			Correct:     correct,
			Explanation: "Because " + id,
		})
	}
	return questions
}
