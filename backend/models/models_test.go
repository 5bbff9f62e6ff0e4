package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormation(t *testing.T) {
	f, err := NewFormation("  Énergie & Hydratation ", "", "", true)
	require.NoError(t, err)
	assert.Equal(t, "Énergie & Hydratation", f.Title)
	assert.Equal(t, "energie-hydratation", f.Slug)
	assert.Equal(t, "fr", f.Locale)

	_, err = NewFormation("", "", "fr", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "is required", verrs["title"])

	_, err = NewFormation("Yoga", "", "de", false)
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs["locale"], "must be one of")
}

func TestNewLessonRejectsBadURL(t *testing.T) {
	_, err := NewLesson(1, "Respiration", "", "not a url", 10, 0)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "must be a valid URL", verrs["video_url"])

	l, err := NewLesson(1, "Respiration", "", "https://videos.resetclub.fr/breath.mp4", 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, l.OrderIndex)
}

func TestNewQuizDefaults(t *testing.T) {
	q, err := NewQuiz(4, "Bilan module 1", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPassingScore, q.PassingScore)

	tooHigh := 120
	_, err = NewQuiz(4, "Bilan", &tooHigh, nil, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewQuiz(0, "Bilan", nil, nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewQuestion(t *testing.T) {
	q, err := NewQuestion(2, "Le sucre est un carburant lent.", "true_false", 0, "", 0)
	require.NoError(t, err)
	assert.Equal(t, "TRUE_FALSE", q.QuestionType)
	assert.Equal(t, 1, q.Points)

	_, err = NewQuestion(2, "Question ?", "ESSAY", 1, "", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTrueFalseOptions(t *testing.T) {
	opts := TrueFalseOptions(9, false)
	require.Len(t, opts, 2)
	assert.Equal(t, "Vrai", opts[0].OptionText)
	assert.False(t, opts[0].IsCorrect)
	assert.True(t, opts[1].IsCorrect)
}

func TestSessionQuestionKeepsOrder(t *testing.T) {
	q := Question{
		Base:         Base{ID: 3},
		QuestionText: "Combien de séances par semaine ?",
		QuestionType: "MULTIPLE_CHOICE",
		Points:       2,
		Options: []Option{
			{Base: Base{ID: 31}, OptionText: "3", IsCorrect: true, OrderIndex: 0},
			{Base: Base{ID: 32}, OptionText: "7", OrderIndex: 1},
		},
	}
	sq := q.SessionQuestion()
	assert.Equal(t, uint(3), sq.ID)
	require.Len(t, sq.Options, 2)
	assert.Equal(t, uint(31), sq.Options[0].ID)
	id, ok := sq.CorrectOptionID()
	assert.True(t, ok)
	assert.Equal(t, uint(31), id)
}

func TestLeadAdvanceTo(t *testing.T) {
	l, err := NewLead("Camille", " Camille@Example.com ", "", "", "instagram")
	require.NoError(t, err)
	assert.Equal(t, "camille@example.com", l.Email)
	assert.Equal(t, "optin", l.Step)
	assert.Len(t, l.Token, 36)

	other, err := NewLead("Camille", "camille@example.com", "", "fr", "")
	require.NoError(t, err)
	assert.NotEqual(t, l.Token, other.Token)

	require.NoError(t, l.AdvanceTo("upsell-1"))
	require.NoError(t, l.AdvanceTo("upsell-1"))
	assert.ErrorIs(t, l.AdvanceTo("masterclass"), ErrStepBackwards)
	assert.ErrorIs(t, l.AdvanceTo("refund"), ErrUnknownStep)
	assert.Equal(t, "upsell-1", l.Step)

	_, err = NewLead("Camille", "nope", "", "fr", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "reset-club-30-jours", Slugify("RESET Club : 30 jours !"))
	assert.Equal(t, "", Slugify("???"))
}
