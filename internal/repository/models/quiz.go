package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"topic-quiz/internal/domain"
)

// QuestionList stores a quiz's questions as a JSON array in a CLOB column.
type QuestionList []domain.Question

// Value implements the driver.Valuer interface
func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionList) Scan(value interface{}) error {
	data, err := jsonBytes("QuestionList", value)
	if err != nil {
		return err
	}
	if data == nil {
		*q = QuestionList{}
		return nil
	}
	return json.Unmarshal(data, q)
}

// AnswerMap stores submitted answers as a JSON object in a CLOB column.
type AnswerMap map[string]domain.Label

// Value implements the driver.Valuer interface
func (a AnswerMap) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (a *AnswerMap) Scan(value interface{}) error {
	data, err := jsonBytes("AnswerMap", value)
	if err != nil {
		return err
	}
	if data == nil {
		*a = AnswerMap{}
		return nil
	}
	return json.Unmarshal(data, a)
}

// jsonBytes normalizes a scanned CLOB value. NULL, empty and "null" yield nil.
func jsonBytes(typeName string, value interface{}) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return data, nil
}

type Quiz struct {
	ID        string         `db:"id"`
	Topic     string         `db:"topic"`
	Context   sql.NullString `db:"context"`
	Questions QuestionList   `db:"questions"`
	CreatedAt time.Time      `db:"created_at"`
}

type Attempt struct {
	ID        string    `db:"id"`
	QuizID    string    `db:"quiz_id"`
	Answers   AnswerMap `db:"answers"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}
