package controllers

import (
	"context"
	"errors"
	"fmt"

	"resetclub/backend/models"
	"resetclub/backend/quiz"

	"gorm.io/gorm"
)

// DBQuestionSource reads quiz question sets straight from the database.
type DBQuestionSource struct {
	DB *gorm.DB
}

func (s DBQuestionSource) QuizQuestions(ctx context.Context, quizID uint) (quiz.Quiz, []quiz.Question, error) {
	var record models.Quiz
	err := s.DB.WithContext(ctx).
		Preload("Questions", byOrderIndex).
		Preload("Questions.Options", byOrderIndex).
		First(&record, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return quiz.Quiz{}, nil, quiz.ErrQuizNotFound
	}
	if err != nil {
		return quiz.Quiz{}, nil, fmt.Errorf("query quiz %d: %w", quizID, err)
	}

	questions := make([]quiz.Question, 0, len(record.Questions))
	for _, q := range record.Questions {
		questions = append(questions, q.SessionQuestion())
	}
	return record.SessionQuiz(), questions, nil
}
