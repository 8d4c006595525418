package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"topic-quiz/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const quizSchemaURL = "schema://generated-quiz.json"

const quizSchema = `{
  "type": "object",
  "required": ["topic", "questions"],
  "properties": {
    "topic": {"type": "string"},
    "questions": {
      "type": "array",
      "minItems": 5,
      "maxItems": 5,
      "items": {
        "type": "object",
        "required": ["id", "stem", "options", "correct", "explanation"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "stem": {"type": "string", "minLength": 1},
          "options": {
            "type": "object",
            "required": ["A", "B", "C", "D"],
            "additionalProperties": false,
            "properties": {
              "A": {"type": "string", "minLength": 1},
              "B": {"type": "string", "minLength": 1},
              "C": {"type": "string", "minLength": 1},
              "D": {"type": "string", "minLength": 1}
            }
          },
          "correct": {"type": "string", "enum": ["A", "B", "C", "D"]},
          "explanation": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// SchemaValidator checks parsed model output against the quiz contract.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

func NewSchemaValidator() (*SchemaValidator, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(quizSchema))
	if err != nil {
		return nil, fmt.Errorf("parse quiz schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(quizSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add quiz schema: %w", err)
	}
	sch, err := c.Compile(quizSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile quiz schema: %w", err)
	}
	return &SchemaValidator{schema: sch}, nil
}

// MustNewSchemaValidator panics if the embedded schema does not compile.
func MustNewSchemaValidator() *SchemaValidator {
	v, err := NewSchemaValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate returns the typed quiz, or a SCHEMA_VIOLATION error naming the
// first offending location.
func (v *SchemaValidator) Validate(parsed any) (*domain.GeneratedQuiz, error) {
	if err := v.schema.Validate(parsed); err != nil {
		return nil, domain.NewSchemaViolationError(firstViolation(err))
	}

	raw, err := json.Marshal(parsed)
	if err != nil {
		return nil, domain.NewSchemaViolationError(err.Error())
	}
	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, domain.NewSchemaViolationError(err.Error())
	}

	seen := make(map[string]struct{}, len(quiz.Questions))
	for i, q := range quiz.Questions {
		if _, dup := seen[q.ID]; dup {
			return nil, domain.NewSchemaViolationError(
				fmt.Sprintf("at '/questions/%d/id': duplicate question id %q", i, q.ID))
		}
		seen[q.ID] = struct{}{}
	}
	return &quiz, nil
}

// firstViolation follows the first cause down to a leaf error.
func firstViolation(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve.Error()
}
