package curriculum

const (
	FeedbackCorrect = "เก่งมาก! ถูกต้องครับ 🎉"
	FeedbackWrong   = "ยังไม่ถูก ลองใหม่ครั้งหน้านะครับ ✌️"
)

// OptionMark describes how an option is shown.
type OptionMark int

const (
	MarkPlain OptionMark = iota
	MarkSelected
	MarkCorrect // revealed, this is the right answer
	MarkWrong   // revealed, selected but wrong
	MarkDimmed  // revealed, neither selected nor right
)

// QuizState tracks one attempt at a quiz. An answer can be changed freely
// until it is submitted; after that the state is frozen.
type QuizState struct {
	quiz     Quiz
	selected int
	revealed bool
}

func NewQuizState(q Quiz) *QuizState {
	return &QuizState{quiz: q, selected: -1}
}

func (s *QuizState) Quiz() Quiz { return s.quiz }

// Select picks option i. Ignored once revealed or when i is out of range.
func (s *QuizState) Select(i int) {
	if s.revealed || i < 0 || i >= len(s.quiz.Options) {
		return
	}
	s.selected = i
}

// Selected returns the chosen option index, or -1.
func (s *QuizState) Selected() int { return s.selected }

func (s *QuizState) HasSelection() bool { return s.selected >= 0 }

// Submit reveals the result. It does nothing without a selection.
func (s *QuizState) Submit() {
	if s.selected < 0 {
		return
	}
	s.revealed = true
}

func (s *QuizState) Revealed() bool { return s.revealed }

// IsCorrect reports whether the revealed answer is right. It is false
// before Submit.
func (s *QuizState) IsCorrect() bool {
	return s.revealed && s.selected == s.quiz.CorrectAnswer
}

// Feedback is the localized result line, empty until revealed.
func (s *QuizState) Feedback() string {
	if !s.revealed {
		return ""
	}
	if s.IsCorrect() {
		return FeedbackCorrect
	}
	return FeedbackWrong
}

func (s *QuizState) OptionMark(i int) OptionMark {
	if !s.revealed {
		if i == s.selected {
			return MarkSelected
		}
		return MarkPlain
	}
	switch {
	case i == s.quiz.CorrectAnswer:
		return MarkCorrect
	case i == s.selected:
		return MarkWrong
	default:
		return MarkDimmed
	}
}

// CanMarkComplete gates the "mark as done" action. A completed topic can
// always be toggled back; otherwise the quiz must be answered correctly.
func CanMarkComplete(alreadyComplete bool, quiz *QuizState) bool {
	if alreadyComplete {
		return true
	}
	return quiz != nil && quiz.IsCorrect()
}
