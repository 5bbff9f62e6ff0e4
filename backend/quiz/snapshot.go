package quiz

// OptionView is an option as shown to the learner. Correctness is only
// filled in once the question is revealed.
type OptionView struct {
	ID        uint   `json:"id"`
	Text      string `json:"optionText"`
	IsCorrect *bool  `json:"isCorrect,omitempty"`
}

type QuestionView struct {
	ID      uint         `json:"id"`
	Text    string       `json:"questionText"`
	Type    QuestionType `json:"questionType"`
	Points  int          `json:"points"`
	Options []OptionView `json:"options"`
}

type Feedback struct {
	Correct         bool   `json:"correct"`
	CorrectOptionID uint   `json:"correctOptionId"`
	Explanation     string `json:"explanation,omitempty"`
}

// Snapshot is the read-only view a rendering layer draws from.
type Snapshot struct {
	QuizID               uint          `json:"quizId"`
	Title                string        `json:"title"`
	PassingScore         int           `json:"passingScore"`
	Phase                Phase         `json:"phase"`
	CurrentQuestionIndex int           `json:"currentQuestionIndex"`
	QuestionCount        int           `json:"questionCount"`
	Answered             int           `json:"answered"`
	Question             *QuestionView `json:"question,omitempty"`
	SelectedOption       *uint         `json:"selectedOption"`
	Revealed             bool          `json:"revealed"`
	Completed            bool          `json:"completed"`
	Feedback             *Feedback     `json:"feedback,omitempty"`
	Score                *Score        `json:"score,omitempty"`
	Passed               *bool         `json:"passed,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	st := s.state
	snap := Snapshot{
		QuizID:               s.quiz.ID,
		Title:                s.quiz.Title,
		PassingScore:         s.quiz.PassingScore,
		Phase:                st.Phase,
		CurrentQuestionIndex: st.CurrentQuestionIndex,
		QuestionCount:        len(s.questions),
		Answered:             len(st.Answers),
		Revealed:             st.Revealed,
		Completed:            st.Completed,
	}
	if st.HasSelection {
		selected := st.SelectedOption
		snap.SelectedOption = &selected
	}

	if st.Completed {
		sc := s.Score()
		passed := sc.Passed(s.quiz.PassingScore)
		snap.Score = &sc
		snap.Passed = &passed
		return snap
	}
	if st.Phase != InProgress {
		return snap
	}

	q := s.questions[st.CurrentQuestionIndex]
	view := &QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Type:    q.Type,
		Points:  q.Points,
		Options: make([]OptionView, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		ov := OptionView{ID: o.ID, Text: o.Text}
		if st.Revealed {
			correct := o.IsCorrect
			ov.IsCorrect = &correct
		}
		view.Options = append(view.Options, ov)
	}
	snap.Question = view

	if st.Revealed {
		correctID, _ := q.CorrectOptionID()
		snap.Feedback = &Feedback{
			Correct:         correctID == st.SelectedOption,
			CorrectOptionID: correctID,
			Explanation:     q.Explanation,
		}
	}
	return snap
}
