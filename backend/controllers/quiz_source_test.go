package controllers

import (
	"context"
	"testing"

	"resetclub/backend/models"
	"resetclub/backend/quiz"
	"resetclub/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, utils.Migrate(db))
	return db
}

func TestDBQuestionSourceOrdersQuestionsAndOptions(t *testing.T) {
	db := testDB(t)

	score := 80
	record, err := models.NewQuiz(1, "Bilan", &score, nil, nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(record).Error)

	// inserted out of order on purpose
	second, err := models.NewQuestion(record.ID, "Deuxième", "TRUE_FALSE", 1, "", 1)
	require.NoError(t, err)
	first, err := models.NewQuestion(record.ID, "Première", "MULTIPLE_CHOICE", 3, "Parce que.", 0)
	require.NoError(t, err)
	require.NoError(t, db.Create(second).Error)
	require.NoError(t, db.Create(first).Error)

	tf := models.TrueFalseOptions(second.ID, false)
	require.NoError(t, db.Create(&tf).Error)
	for _, o := range []struct {
		text    string
		correct bool
		order   int
	}{{"C", false, 2}, {"A", true, 0}, {"B", false, 1}} {
		opt, err := models.NewOption(first.ID, o.text, o.correct, o.order)
		require.NoError(t, err)
		require.NoError(t, db.Create(opt).Error)
	}

	meta, questions, err := DBQuestionSource{DB: db}.QuizQuestions(context.Background(), record.ID)
	require.NoError(t, err)

	assert.Equal(t, quiz.Quiz{ID: record.ID, Title: "Bilan", PassingScore: 80}, meta)
	require.Len(t, questions, 2)
	assert.Equal(t, "Première", questions[0].Text)
	assert.Equal(t, quiz.MultipleChoice, questions[0].Type)
	assert.Equal(t, 3, questions[0].Points)
	assert.Equal(t, "Parce que.", questions[0].Explanation)

	var texts []string
	for _, o := range questions[0].Options {
		texts = append(texts, o.Text)
	}
	assert.Equal(t, []string{"A", "B", "C"}, texts)

	correct, ok := questions[1].CorrectOptionID()
	require.True(t, ok)
	assert.Equal(t, tf[1].ID, correct)
}

func TestDBQuestionSourceMissingQuiz(t *testing.T) {
	_, _, err := DBQuestionSource{DB: testDB(t)}.QuizQuestions(context.Background(), 42)
	assert.ErrorIs(t, err, quiz.ErrQuizNotFound)
}

func TestDBQuestionSourceQuizWithoutQuestions(t *testing.T) {
	db := testDB(t)
	record, err := models.NewQuiz(1, "Vide", nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(record).Error)

	s, err := quiz.Load(context.Background(), DBQuestionSource{DB: db}, record.ID)
	require.NoError(t, err)
	assert.True(t, s.State().Completed)
	assert.Equal(t, 0, s.Score().Percentage)
}
