package quiz

import (
	"context"
	"errors"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TrueFalse      QuestionType = "TRUE_FALSE"
)

var (
	ErrNotStarted      = errors.New("quiz session not started")
	ErrCompleted       = errors.New("quiz session already completed")
	ErrAlreadyRevealed = errors.New("answer already revealed for this question")
	ErrNotRevealed     = errors.New("no answer selected for this question")
	ErrUnknownOption   = errors.New("option does not belong to the current question")
)

// Errors reported by question sources and by hosts keeping sessions for
// several learners.
var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrSessionOwner    = errors.New("quiz session belongs to another user")
)

// Quiz holds the metadata fetched alongside the questions.
type Quiz struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	PassingScore int    `json:"passingScore"`
	TimeLimit    *int   `json:"timeLimit,omitempty"`
	MaxAttempts  *int   `json:"maxAttempts,omitempty"`
}

type Option struct {
	ID         uint   `json:"id"`
	Text       string `json:"optionText"`
	IsCorrect  bool   `json:"isCorrect"`
	OrderIndex int    `json:"orderIndex"`
}

type Question struct {
	ID          uint         `json:"id"`
	Text        string       `json:"questionText"`
	Type        QuestionType `json:"questionType"`
	Points      int          `json:"points"`
	Explanation string       `json:"explanation,omitempty"`
	Options     []Option     `json:"options"`
}

// CorrectOptionID returns the first option flagged as correct.
func (q Question) CorrectOptionID() (uint, bool) {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o.ID, true
		}
	}
	return 0, false
}

func (q Question) hasOption(id uint) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// QuestionSource fetches the ordered question set of a quiz.
type QuestionSource interface {
	QuizQuestions(ctx context.Context, quizID uint) (Quiz, []Question, error)
}
