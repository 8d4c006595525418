package domain

import "time"

const (
	// QuestionsPerQuiz is the exact number of questions every quiz carries.
	QuestionsPerQuiz = 5
	// MaxTopicLength is counted in characters after trimming.
	MaxTopicLength = 100
)

// Label identifies one of the four answer options.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels lists the option labels in display order.
var Labels = []Label{LabelA, LabelB, LabelC, LabelD}

func (l Label) Valid() bool {
	switch l {
	case LabelA, LabelB, LabelC, LabelD:
		return true
	}
	return false
}

// Options maps each label to its option text.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

func (o Options) Get(l Label) string {
	switch l {
	case LabelA:
		return o.A
	case LabelB:
		return o.B
	case LabelC:
		return o.C
	case LabelD:
		return o.D
	}
	return ""
}

type Question struct {
	ID          string  `json:"id"`
	Stem        string  `json:"stem"`
	Options     Options `json:"options"`
	Correct     Label   `json:"correct"`
	Explanation string  `json:"explanation"`
}

// GeneratedQuiz is a model response that passed schema validation but has
// not been stored yet.
type GeneratedQuiz struct {
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
}

// Quiz is immutable once stored.
type Quiz struct {
	ID        string
	Topic     string
	Context   *string
	Questions []Question
	CreatedAt time.Time
}

// Answers maps question id to the chosen label.
type Answers map[string]Label

// Attempt references its quiz by id only; the quiz may no longer exist.
type Attempt struct {
	ID        string
	QuizID    string
	Answers   Answers
	Score     int
	CreatedAt time.Time
}

// AttemptReview pairs an attempt with its quiz. Quiz is nil when the quiz
// has been removed.
type AttemptReview struct {
	Attempt *Attempt
	Quiz    *Quiz
}
