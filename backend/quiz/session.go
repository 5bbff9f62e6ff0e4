package quiz

import (
	"context"
	"fmt"
	"math"
)

// Session drives one learner through one quiz. It is not safe for
// concurrent use; callers hosting several sessions serialize access.
type Session struct {
	quiz      Quiz
	questions []Question
	state     State
}

// Load fetches the question set and starts a session on it. No session is
// returned when the fetch fails.
func Load(ctx context.Context, src QuestionSource, quizID uint) (*Session, error) {
	meta, questions, err := src.QuizQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("load quiz %d: %w", quizID, err)
	}
	return NewSession(meta, questions), nil
}

func NewSession(meta Quiz, questions []Question) *Session {
	s := &Session{quiz: meta, questions: questions}
	s.state = Transition(State{}, questions, Event{Kind: EventLoaded})
	return s
}

func (s *Session) Quiz() Quiz { return s.quiz }

// Questions returns a deep copy of the question set; editing it cannot change
// how the session scores.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		q.Options = append([]Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// State returns a copy of the current state.
func (s *Session) State() State { return s.state.clone() }

func (s *Session) apply(e Event) error {
	if err := Check(s.state, s.questions, e); err != nil {
		return err
	}
	s.state = Transition(s.state, s.questions, e)
	return nil
}

// Select records optionID as the answer to the current question and reveals
// the feedback. The first pick is final.
func (s *Session) Select(optionID uint) error {
	return s.apply(Event{Kind: EventSelect, OptionID: optionID})
}

// Advance moves to the next question, or completes the session on the last one.
func (s *Session) Advance() error {
	return s.apply(Event{Kind: EventAdvance})
}

// Restart clears every answer and starts over on the cached questions.
func (s *Session) Restart() error {
	return s.apply(Event{Kind: EventRestart})
}

type Score struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
	Points     int `json:"points"`
	MaxPoints  int `json:"maxPoints"`
}

// Passed compares the percentage with the quiz threshold.
func (sc Score) Passed(passingScore int) bool {
	return sc.Percentage >= passingScore
}

// ComputeScore derives the score from the answer record. A quiz without
// questions scores 0%.
func ComputeScore(questions []Question, answers map[uint]uint) Score {
	sc := Score{Total: len(questions)}
	for _, q := range questions {
		sc.MaxPoints += q.Points
		picked, ok := answers[q.ID]
		if !ok {
			continue
		}
		if correct, ok := q.CorrectOptionID(); ok && correct == picked {
			sc.Correct++
			sc.Points += q.Points
		}
	}
	if sc.Total > 0 {
		sc.Percentage = int(math.Round(float64(sc.Correct) / float64(sc.Total) * 100))
	}
	return sc
}

func (s *Session) Score() Score {
	return ComputeScore(s.questions, s.state.Answers)
}
