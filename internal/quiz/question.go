package quiz

import "fmt"

// Question is one playable quiz item. Options are shown in the given order.
type Question struct {
	ID      string
	Prompt  string
	Options []string
}

// AnswerKey maps a question ID to the option values accepted as correct.
type AnswerKey map[string][]string

// Correct reports whether value is accepted for the question.
// A question without an entry has no correct answers.
func (k AnswerKey) Correct(questionID, value string) bool {
	for _, v := range k[questionID] {
		if v == value {
			return true
		}
	}
	return false
}

// OptionID returns the identifier of the option at a 0-based position.
func OptionID(index int) string {
	return fmt.Sprintf("option%d", index+1)
}

// RenderedOption is a selectable control built for one option.
type RenderedOption struct {
	ID    string
	Value string
}

// QuestionView is everything a renderer needs to draw the current question.
type QuestionView struct {
	Index      int // 0-based position in the sequence
	Total      int
	QuestionID string
	Prompt     string
	Options    []RenderedOption
}

// Answer records how a single question was resolved.
type Answer struct {
	QuestionID string
	Value      string // empty when nothing was selected
	Correct    bool
	TimedOut   bool
}

// Result is the final outcome of a session.
type Result struct {
	Score   int
	Total   int
	Answers []Answer
}

// Outcome is returned from an explicit submission.
type Outcome struct {
	Answer   Answer
	Score    int
	Finished bool
}

// State is a point-in-time snapshot of a runner.
type State struct {
	CurrentIndex  int
	Total         int
	Score         int
	TimeRemaining int
	Selected      int // -1 when nothing is selected
	Started       bool
	Finished      bool
}

func buildView(questions []Question, index int) QuestionView {
	q := questions[index]
	opts := make([]RenderedOption, 0, len(q.Options))
	for i, o := range q.Options {
		opts = append(opts, RenderedOption{ID: OptionID(i), Value: o})
	}

	return QuestionView{
		Index:      index,
		Total:      len(questions),
		QuestionID: q.ID,
		Prompt:     q.Prompt,
		Options:    opts,
	}
}
