package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/repository/models"
	"topic-quiz/internal/util"
)

const quizColumns = `id "id",
		topic "topic",
		context "context",
		questions "questions",
		created_at "created_at"`

// QuizDatabaseAdapter implements domain.QuizRepository on Oracle via sqlx.
type QuizDatabaseAdapter struct {
	db DBTX
}

var _ domain.QuizRepository = (*QuizDatabaseAdapter)(nil)

func NewQuizDatabaseAdapter(db DBTX) *QuizDatabaseAdapter {
	return &QuizDatabaseAdapter{db: db}
}

// CreateQuiz writes the quiz in a single INSERT, so a failure leaves no row.
func (a *QuizDatabaseAdapter) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return domain.NewInternalError("Cannot save nil quiz", nil)
	}
	modelQuiz := toModelQuiz(quiz)
	modelQuiz.ID = util.NewULID()
	modelQuiz.CreatedAt = time.Now().UTC()

	query := `INSERT INTO quizzes (id, topic, context, questions, created_at)
	VALUES (:1, :2, :3, :4, :5)`

	_, err := a.db.ExecContext(ctx, query,
		modelQuiz.ID,
		modelQuiz.Topic,
		modelQuiz.Context,
		modelQuiz.Questions,
		modelQuiz.CreatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("Failed to save quiz", err)
	}

	quiz.ID = modelQuiz.ID
	quiz.CreatedAt = modelQuiz.CreatedAt
	return nil
}

func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var modelQuiz models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	WHERE id = :1`

	if err := a.db.GetContext(ctx, &modelQuiz, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewPersistenceError("Failed to get quiz", err)
	}
	return toDomainQuiz(&modelQuiz), nil
}

func (a *QuizDatabaseAdapter) ListQuizzes(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	limit = util.ClampLimit(limit, DefaultListLimit, MaxListLimit)

	var rows []models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	ORDER BY created_at DESC, id DESC
	FETCH FIRST :1 ROWS ONLY`

	if err := a.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, domain.NewPersistenceError("Failed to list quizzes", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes, nil
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	return &models.Quiz{
		ID:        q.ID,
		Topic:     q.Topic,
		Context:   util.StringPtrToNullString(q.Context),
		Questions: models.QuestionList(q.Questions),
		CreatedAt: q.CreatedAt,
	}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:        m.ID,
		Topic:     m.Topic,
		Context:   util.NullStringToStringPtr(m.Context),
		Questions: []domain.Question(m.Questions),
		CreatedAt: m.CreatedAt,
	}
}
