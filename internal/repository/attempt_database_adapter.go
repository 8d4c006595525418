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

const attemptColumns = `id "id",
		quiz_id "quiz_id",
		answers "answers",
		score "score",
		created_at "created_at"`

// AttemptDatabaseAdapter implements domain.AttemptRepository. Attempts hold
// the quiz id only; there is no foreign key.
type AttemptDatabaseAdapter struct {
	db DBTX
}

var _ domain.AttemptRepository = (*AttemptDatabaseAdapter)(nil)

func NewAttemptDatabaseAdapter(db DBTX) *AttemptDatabaseAdapter {
	return &AttemptDatabaseAdapter{db: db}
}

func (a *AttemptDatabaseAdapter) CreateAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if attempt == nil {
		return domain.NewInternalError("Cannot save nil attempt", nil)
	}
	modelAttempt := toModelAttempt(attempt)
	modelAttempt.ID = util.NewULID()
	modelAttempt.CreatedAt = time.Now().UTC()

	query := `INSERT INTO attempts (id, quiz_id, answers, score, created_at)
	VALUES (:1, :2, :3, :4, :5)`

	_, err := a.db.ExecContext(ctx, query,
		modelAttempt.ID,
		modelAttempt.QuizID,
		modelAttempt.Answers,
		modelAttempt.Score,
		modelAttempt.CreatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("Failed to save attempt", err)
	}

	attempt.ID = modelAttempt.ID
	attempt.CreatedAt = modelAttempt.CreatedAt
	return nil
}

func (a *AttemptDatabaseAdapter) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	var modelAttempt models.Attempt
	query := `SELECT ` + attemptColumns + `
	FROM attempts
	WHERE id = :1`

	if err := a.db.GetContext(ctx, &modelAttempt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewPersistenceError("Failed to get attempt", err)
	}
	return toDomainAttempt(&modelAttempt), nil
}

func (a *AttemptDatabaseAdapter) ListAttempts(ctx context.Context, limit int) ([]*domain.Attempt, error) {
	limit = util.ClampLimit(limit, DefaultListLimit, MaxListLimit)

	var rows []models.Attempt
	query := `SELECT ` + attemptColumns + `
	FROM attempts
	ORDER BY created_at DESC, id DESC
	FETCH FIRST :1 ROWS ONLY`

	if err := a.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, domain.NewPersistenceError("Failed to list attempts", err)
	}

	attempts := make([]*domain.Attempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}

func toModelAttempt(a *domain.Attempt) *models.Attempt {
	return &models.Attempt{
		ID:        a.ID,
		QuizID:    a.QuizID,
		Answers:   models.AnswerMap(a.Answers),
		Score:     a.Score,
		CreatedAt: a.CreatedAt,
	}
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	return &domain.Attempt{
		ID:        m.ID,
		QuizID:    m.QuizID,
		Answers:   domain.Answers(m.Answers),
		Score:     m.Score,
		CreatedAt: m.CreatedAt,
	}
}
