package quiz

type Phase int

const (
	NotStarted Phase = iota
	InProgress
	Completed
)

func (p Phase) String() string {
	switch p {
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "not_started"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type EventKind int

const (
	EventLoaded EventKind = iota
	EventSelect
	EventAdvance
	EventRestart
)

type Event struct {
	Kind     EventKind
	OptionID uint
}

// State is a value: Transition never mutates the state it is given.
type State struct {
	Phase                Phase
	CurrentQuestionIndex int
	SelectedOption       uint
	HasSelection         bool
	Revealed             bool
	Completed            bool
	Answers              map[uint]uint
}

func initialState(questionCount int) State {
	s := State{
		Phase:   InProgress,
		Answers: map[uint]uint{},
	}
	if questionCount == 0 {
		s.Phase = Completed
		s.Completed = true
	}
	return s
}

func (s State) clone() State {
	answers := make(map[uint]uint, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}
	s.Answers = answers
	return s
}

// Transition applies e to s. Events that are not allowed in the current state
// return s unchanged; Check reports why.
func Transition(s State, questions []Question, e Event) State {
	if Check(s, questions, e) != nil {
		return s
	}

	switch e.Kind {
	case EventLoaded, EventRestart:
		return initialState(len(questions))

	case EventSelect:
		next := s.clone()
		q := questions[s.CurrentQuestionIndex]
		next.SelectedOption = e.OptionID
		next.HasSelection = true
		next.Revealed = true
		next.Answers[q.ID] = e.OptionID
		return next

	case EventAdvance:
		next := s.clone()
		if s.CurrentQuestionIndex < len(questions)-1 {
			next.CurrentQuestionIndex++
			next.SelectedOption = 0
			next.HasSelection = false
			next.Revealed = false
			return next
		}
		next.Completed = true
		next.Phase = Completed
		return next
	}

	return s
}

// Check reports whether e is allowed in s.
func Check(s State, questions []Question, e Event) error {
	switch e.Kind {
	case EventLoaded:
		return nil

	case EventRestart:
		if s.Phase == NotStarted {
			return ErrNotStarted
		}
		return nil

	case EventSelect:
		if err := inProgress(s); err != nil {
			return err
		}
		if s.Revealed {
			return ErrAlreadyRevealed
		}
		if !questions[s.CurrentQuestionIndex].hasOption(e.OptionID) {
			return ErrUnknownOption
		}
		return nil

	case EventAdvance:
		if err := inProgress(s); err != nil {
			return err
		}
		if !s.Revealed {
			return ErrNotRevealed
		}
		return nil
	}

	return ErrNotStarted
}

func inProgress(s State) error {
	switch s.Phase {
	case NotStarted:
		return ErrNotStarted
	case Completed:
		return ErrCompleted
	}
	return nil
}
