package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	quiz      Quiz
	questions []Question
	err       error
	calls     int
}

func (s *stubSource) QuizQuestions(_ context.Context, _ uint) (Quiz, []Question, error) {
	s.calls++
	return s.quiz, s.questions, s.err
}

func twoQuestions() []Question {
	return []Question{
		{ID: 1, Text: "Combien de litres d'eau par jour ?", Type: MultipleChoice, Points: 1, Options: []Option{
			{ID: 11, Text: "2", IsCorrect: true, OrderIndex: 0},
			{ID: 12, Text: "0,5", OrderIndex: 1},
		}},
		{ID: 2, Text: "Meilleur moment pour s'étirer ?", Type: MultipleChoice, Points: 2, Options: []Option{
			{ID: 21, Text: "Après l'effort", IsCorrect: true, OrderIndex: 0},
			{ID: 22, Text: "Jamais", OrderIndex: 1},
		}},
	}
}

func TestScenarioHalfCorrect(t *testing.T) {
	s := NewSession(Quiz{ID: 7, PassingScore: 70}, twoQuestions())

	require.NoError(t, s.Select(11))
	require.NoError(t, s.Advance())
	require.NoError(t, s.Select(22))
	require.NoError(t, s.Advance())

	st := s.State()
	assert.True(t, st.Completed)
	assert.Equal(t, Completed, st.Phase)
	assert.Equal(t, 1, st.CurrentQuestionIndex)

	sc := s.Score()
	assert.Equal(t, Score{Correct: 1, Total: 2, Percentage: 50, Points: 1, MaxPoints: 3}, sc)
	assert.False(t, sc.Passed(70))
}

func TestScenarioTrueFalse(t *testing.T) {
	s := NewSession(Quiz{ID: 3, PassingScore: 50}, []Question{
		{ID: 5, Text: "Le sommeil aide la récupération.", Type: TrueFalse, Points: 1, Options: []Option{
			{ID: 51, Text: "Vrai", IsCorrect: true},
			{ID: 52, Text: "Faux", OrderIndex: 1},
		}},
	})

	require.NoError(t, s.Select(51))
	assert.True(t, s.State().Revealed)

	require.NoError(t, s.Advance())
	assert.True(t, s.State().Completed)
	assert.Equal(t, 100, s.Score().Percentage)
	assert.True(t, s.Score().Passed(50))
}

func TestScenarioZeroQuestions(t *testing.T) {
	src := &stubSource{quiz: Quiz{ID: 9}}
	s, err := Load(context.Background(), src, 9)
	require.NoError(t, err)

	assert.True(t, s.State().Completed)
	assert.Equal(t, Score{}, s.Score())
	assert.ErrorIs(t, s.Advance(), ErrCompleted)

	require.NoError(t, s.Restart())
	assert.Equal(t, 0, s.Score().Percentage)
}

func TestScenarioDoubleClick(t *testing.T) {
	s := NewSession(Quiz{}, twoQuestions())

	require.NoError(t, s.Select(12))
	before := s.State()

	assert.ErrorIs(t, s.Select(12), ErrAlreadyRevealed)
	assert.ErrorIs(t, s.Select(11), ErrAlreadyRevealed)

	after := s.State()
	assert.Equal(t, before, after)
	assert.Len(t, after.Answers, 1)
	assert.Equal(t, uint(12), after.Answers[1])
}

func TestAdvanceRequiresReveal(t *testing.T) {
	s := NewSession(Quiz{}, twoQuestions())
	before := s.State()

	assert.ErrorIs(t, s.Advance(), ErrNotRevealed)
	assert.Equal(t, before, s.State())
}

func TestSelectRejectsForeignOption(t *testing.T) {
	s := NewSession(Quiz{}, twoQuestions())

	assert.ErrorIs(t, s.Select(21), ErrUnknownOption)
	assert.False(t, s.State().Revealed)
	assert.Empty(t, s.State().Answers)
}

func TestIndexIsMonotonicAndBounded(t *testing.T) {
	questions := twoQuestions()
	s := NewSession(Quiz{}, questions)

	last := s.State().CurrentQuestionIndex
	for i := 0; i < 10; i++ {
		st := s.State()
		if !st.Completed && !st.Revealed {
			q := questions[st.CurrentQuestionIndex]
			require.NoError(t, s.Select(q.Options[0].ID))
		}
		_ = s.Advance()

		idx := s.State().CurrentQuestionIndex
		assert.GreaterOrEqual(t, idx, last)
		assert.LessOrEqual(t, idx, len(questions)-1)
		last = idx
	}
	assert.True(t, s.State().Completed)
	assert.Len(t, s.State().Answers, len(questions))
}

func TestRevealedIffSelected(t *testing.T) {
	s := NewSession(Quiz{}, twoQuestions())
	check := func() {
		st := s.State()
		assert.Equal(t, st.Revealed, st.HasSelection)
	}

	check()
	require.NoError(t, s.Select(11))
	check()
	require.NoError(t, s.Advance())
	check()
	require.NoError(t, s.Select(21))
	check()
}

func TestScoreExtremes(t *testing.T) {
	questions := twoQuestions()

	all := ComputeScore(questions, map[uint]uint{1: 11, 2: 21})
	assert.Equal(t, 100, all.Percentage)

	none := ComputeScore(questions, map[uint]uint{1: 12, 2: 22})
	assert.Equal(t, 0, none.Percentage)

	empty := ComputeScore(nil, nil)
	assert.Equal(t, 0, empty.Percentage)
}

func TestScoreRoundsPercentage(t *testing.T) {
	questions := []Question{
		{ID: 1, Options: []Option{{ID: 1, IsCorrect: true}}},
		{ID: 2, Options: []Option{{ID: 2, IsCorrect: true}}},
		{ID: 3, Options: []Option{{ID: 3, IsCorrect: true}, {ID: 4}}},
	}
	sc := ComputeScore(questions, map[uint]uint{1: 1, 2: 2, 3: 4})
	assert.Equal(t, 67, sc.Percentage)
}

func TestRestartReusesQuestions(t *testing.T) {
	src := &stubSource{questions: twoQuestions()}
	s, err := Load(context.Background(), src, 1)
	require.NoError(t, err)

	require.NoError(t, s.Select(11))
	require.NoError(t, s.Advance())
	require.NoError(t, s.Restart())

	st := s.State()
	assert.Equal(t, InProgress, st.Phase)
	assert.Equal(t, 0, st.CurrentQuestionIndex)
	assert.False(t, st.Revealed)
	assert.False(t, st.HasSelection)
	assert.Empty(t, st.Answers)
	assert.Equal(t, Score{Total: 2, MaxPoints: 3}, s.Score())
	assert.Equal(t, 1, src.calls)
}

func TestQuestionsReturnsACopy(t *testing.T) {
	s := NewSession(Quiz{ID: 7, PassingScore: 70}, twoQuestions())
	require.NoError(t, s.Select(12))

	qs := s.Questions()
	qs[0].Options[0].IsCorrect = false
	qs[0].Options[1].IsCorrect = true
	qs[1].Points = 100

	assert.Equal(t, Score{Correct: 0, Total: 2, Percentage: 0, Points: 0, MaxPoints: 3}, s.Score())
	assert.True(t, s.Questions()[0].Options[0].IsCorrect)
}

func TestLoadFailureStartsNothing(t *testing.T) {
	boom := errors.New("network down")
	s, err := Load(context.Background(), &stubSource{err: boom}, 4)

	assert.Nil(t, s)
	assert.ErrorIs(t, err, boom)
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	questions := twoQuestions()
	start := Transition(State{}, questions, Event{Kind: EventLoaded})

	next := Transition(start, questions, Event{Kind: EventSelect, OptionID: 11})

	assert.Empty(t, start.Answers)
	assert.False(t, start.Revealed)
	assert.Equal(t, uint(11), next.Answers[1])
}

func TestRestartBeforeLoadIsRejected(t *testing.T) {
	assert.ErrorIs(t, Check(State{}, nil, Event{Kind: EventRestart}), ErrNotStarted)
	assert.ErrorIs(t, Check(State{}, nil, Event{Kind: EventSelect, OptionID: 1}), ErrNotStarted)
}

func TestSnapshotHidesCorrectnessUntilRevealed(t *testing.T) {
	questions := twoQuestions()
	questions[0].Explanation = "Deux litres couvrent les besoins moyens."
	s := NewSession(Quiz{ID: 1, Title: "Hydratation", PassingScore: 50}, questions)

	snap := s.Snapshot()
	require.NotNil(t, snap.Question)
	assert.Nil(t, snap.SelectedOption)
	assert.Nil(t, snap.Feedback)
	for _, o := range snap.Question.Options {
		assert.Nil(t, o.IsCorrect)
	}

	require.NoError(t, s.Select(12))
	snap = s.Snapshot()
	require.NotNil(t, snap.Feedback)
	assert.False(t, snap.Feedback.Correct)
	assert.Equal(t, uint(11), snap.Feedback.CorrectOptionID)
	assert.Equal(t, "Deux litres couvrent les besoins moyens.", snap.Feedback.Explanation)
	require.NotNil(t, snap.SelectedOption)
	assert.Equal(t, uint(12), *snap.SelectedOption)
	require.NotNil(t, snap.Question.Options[0].IsCorrect)
	assert.True(t, *snap.Question.Options[0].IsCorrect)

	require.NoError(t, s.Advance())
	require.NoError(t, s.Select(21))
	require.NoError(t, s.Advance())
	snap = s.Snapshot()
	assert.Nil(t, snap.Question)
	require.NotNil(t, snap.Score)
	require.NotNil(t, snap.Passed)
	assert.True(t, *snap.Passed)
	assert.Equal(t, 50, snap.Score.Percentage)
}
