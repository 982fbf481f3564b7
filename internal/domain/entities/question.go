package entities

// QuestionType distinguishes how a question is answered.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionOpenEnded      QuestionType = "open_ended"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	return t == QuestionMultipleChoice || t == QuestionOpenEnded
}

// Option is one answer choice of a question.
type Option struct {
	ID        int64
	Text      string
	IsCorrect bool
}

// Question is a single item of a trivia set.
type Question struct {
	ID       int64
	Key      string // identity used by the answer key, unique within a set
	Text     string
	Type     QuestionType
	Position int
	Options  []Option
}

// OptionTexts returns option texts in display order.
func (q Question) OptionTexts() []string {
	out := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		out = append(out, o.Text)
	}
	return out
}

// CorrectTexts returns the texts of all options marked correct.
func (q Question) CorrectTexts() []string {
	var out []string
	for _, o := range q.Options {
		if o.IsCorrect {
			out = append(out, o.Text)
		}
	}
	return out
}
