package models

import (
	"errors"
	"strings"

	"resetclub/backend/quiz"
)

const DefaultPassingScore = 70

var (
	ErrSecondCorrect    = errors.New("question already has a correct option")
	ErrTrueFalseOptions = errors.New("a TRUE_FALSE question needs exactly two options")
)

type Quiz struct {
	Base
	ModuleID     uint       `gorm:"index;not null" json:"module_id" validate:"required"`
	Title        string     `gorm:"not null" json:"title" validate:"required,max=200"`
	PassingScore int        `gorm:"not null" json:"passing_score" validate:"gte=0,lte=100"`
	TimeLimit    *int       `json:"time_limit,omitempty" validate:"omitempty,gte=1"`
	MaxAttempts  *int       `json:"max_attempts,omitempty" validate:"omitempty,gte=1"`
	Questions    []Question `json:"questions,omitempty"`
}

type Question struct {
	Base
	QuizID       uint     `gorm:"index;not null" json:"quiz_id" validate:"required"`
	QuestionText string   `gorm:"not null" json:"question_text" validate:"required"`
	QuestionType string   `gorm:"not null" json:"question_type" validate:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE"`
	Points       int      `gorm:"default:1" json:"points" validate:"gte=1"`
	Explanation  string   `json:"explanation"`
	OrderIndex   int      `json:"order_index" validate:"gte=0"`
	Options      []Option `json:"options,omitempty"`
}

type Option struct {
	Base
	QuestionID uint   `gorm:"index;not null" json:"question_id" validate:"required"`
	OptionText string `gorm:"not null" json:"option_text" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

func NewQuiz(moduleID uint, title string, passingScore *int, timeLimit, maxAttempts *int) (*Quiz, error) {
	q := &Quiz{
		ModuleID:     moduleID,
		Title:        strings.TrimSpace(title),
		PassingScore: DefaultPassingScore,
		TimeLimit:    timeLimit,
		MaxAttempts:  maxAttempts,
	}
	if passingScore != nil {
		q.PassingScore = *passingScore
	}
	if err := Validate(q); err != nil {
		return nil, err
	}
	return q, nil
}

func NewQuestion(quizID uint, text, questionType string, points int, explanation string, orderIndex int) (*Question, error) {
	if points == 0 {
		points = 1
	}
	q := &Question{
		QuizID:       quizID,
		QuestionText: strings.TrimSpace(text),
		QuestionType: strings.ToUpper(questionType),
		Points:       points,
		Explanation:  explanation,
		OrderIndex:   orderIndex,
	}
	if err := Validate(q); err != nil {
		return nil, err
	}
	return q, nil
}

func NewOption(questionID uint, text string, isCorrect bool, orderIndex int) (*Option, error) {
	o := &Option{
		QuestionID: questionID,
		OptionText: strings.TrimSpace(text),
		IsCorrect:  isCorrect,
		OrderIndex: orderIndex,
	}
	if err := Validate(o); err != nil {
		return nil, err
	}
	return o, nil
}

// TrueFalseOptions builds the "Vrai"/"Faux" pair for a TRUE_FALSE question.
func TrueFalseOptions(questionID uint, answer bool) []Option {
	return []Option{
		{QuestionID: questionID, OptionText: "Vrai", IsCorrect: answer, OrderIndex: 0},
		{QuestionID: questionID, OptionText: "Faux", IsCorrect: !answer, OrderIndex: 1},
	}
}

func (q Quiz) SessionQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:           q.ID,
		Title:        q.Title,
		PassingScore: q.PassingScore,
		TimeLimit:    q.TimeLimit,
		MaxAttempts:  q.MaxAttempts,
	}
}

// SessionQuestion keeps the option order as stored; callers preload options
// sorted by order_index.
func (q Question) SessionQuestion() quiz.Question {
	out := quiz.Question{
		ID:          q.ID,
		Text:        q.QuestionText,
		Type:        quiz.QuestionType(q.QuestionType),
		Points:      q.Points,
		Explanation: q.Explanation,
		Options:     make([]quiz.Option, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		out.Options = append(out.Options, quiz.Option{
			ID:         o.ID,
			Text:       o.OptionText,
			IsCorrect:  o.IsCorrect,
			OrderIndex: o.OrderIndex,
		})
	}
	return out
}
