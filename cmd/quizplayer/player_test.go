package main

import (
	"bytes"
	"strings"
	"testing"

	"resetclub/backend/quiz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hydration() *quiz.Session {
	return quiz.NewSession(
		quiz.Quiz{ID: 1, Title: "Hydratation", PassingScore: 70},
		[]quiz.Question{
			{ID: 1, Text: "Combien de litres par jour ?", Type: quiz.MultipleChoice, Points: 1, Options: []quiz.Option{
				{ID: 11, Text: "0,5 L"},
				{ID: 12, Text: "1,5 L", IsCorrect: true},
			}},
			{ID: 2, Text: "Le café hydrate.", Type: quiz.TrueFalse, Points: 1, Explanation: "Il reste diurétique.", Options: []quiz.Option{
				{ID: 21, Text: "Vrai"},
				{ID: 22, Text: "Faux", IsCorrect: true},
			}},
		},
	)
}

func TestPlayAllCorrect(t *testing.T) {
	s := hydration()
	var out bytes.Buffer

	err := play(strings.NewReader("2\n\n2\n\nn\n"), &out, s)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Question 1/2")
	assert.Contains(t, text, "Bonne réponse !")
	assert.Contains(t, text, "Il reste diurétique.")
	assert.Contains(t, text, "2/2 bonnes réponses (100%)")
	assert.Contains(t, text, msgPassed)
	assert.True(t, s.State().Completed)
}

func TestPlayFailedThenRestart(t *testing.T) {
	s := hydration()
	var out bytes.Buffer

	err := play(strings.NewReader("1\n\n1\n\no\n2\n"), &out, s)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "La bonne réponse était : 1,5 L")
	assert.Contains(t, text, "0/2 bonnes réponses (0%)")
	assert.Contains(t, text, msgFailed)

	// the restart answered the first question again before input ran out
	st := s.State()
	assert.False(t, st.Completed)
	assert.Equal(t, 0, st.CurrentQuestionIndex)
	assert.Equal(t, map[uint]uint{1: 12}, st.Answers)
}

func TestPlayRejectsOutOfRangeChoice(t *testing.T) {
	s := hydration()
	var out bytes.Buffer

	require.NoError(t, play(strings.NewReader("7\nabc\n"), &out, s))

	assert.Equal(t, 2, strings.Count(out.String(), "Choix invalide"))
	assert.Empty(t, s.State().Answers)
}

func TestPlayEmptyQuiz(t *testing.T) {
	s := quiz.NewSession(quiz.Quiz{ID: 9, Title: "Vide", PassingScore: 70}, nil)
	var out bytes.Buffer

	require.NoError(t, play(strings.NewReader("n\n"), &out, s))
	assert.Contains(t, out.String(), "0/0 bonnes réponses (0%)")
}
