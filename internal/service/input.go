package service

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/validator"
)

// SetInput describes a trivia set as submitted over HTTP or read from a file.
type SetInput struct {
	Title      string          `json:"title" yaml:"title" binding:"required,max=200"`
	Category   string          `json:"category" yaml:"category" binding:"required,max=100"`
	Difficulty string          `json:"difficulty" yaml:"difficulty" binding:"required,oneof=easy medium hard"`
	Questions  []QuestionInput `json:"questions" yaml:"questions" binding:"required,min=1,dive"`
}

type QuestionInput struct {
	ID      string        `json:"id" yaml:"id" binding:"omitempty,max=64"`
	Text    string        `json:"text" yaml:"text" binding:"required"`
	Type    string        `json:"type" yaml:"type" binding:"omitempty,oneof=multiple_choice open_ended"`
	Options []OptionInput `json:"options" yaml:"options" binding:"dive"`
}

type OptionInput struct {
	Text      string `json:"text" yaml:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct" yaml:"is_correct"`
}

// ValidationError lists invalid fields of a SetInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "invalid trivia set: " + strings.Join(parts, "; ")
}

// Validate checks struct rules and the rules that need the whole question:
// a multiple choice question needs an option marked correct, an open ended
// question has exactly one option, which is its answer. Question IDs must be
// unique within the set.
func (in *SetInput) Validate() error {
	if fields := validator.Struct(in); fields != nil {
		return &ValidationError{Fields: fields}
	}

	fields := make(map[string]string)
	seen := make(map[string]int)

	for i, q := range in.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)

		switch questionType(q.Type) {
		case entities.QuestionOpenEnded:
			if len(q.Options) != 1 {
				fields[prefix+".options"] = "open ended question must have exactly one answer"
			}
		default:
			if len(q.Options) == 0 {
				fields[prefix+".options"] = "question must have at least one option"
			} else if !hasCorrect(q.Options) {
				fields[prefix+".options"] = "question must have at least one correct option"
			}
		}

		key := questionKey(q, i)
		if j, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q used by questions %d and %d", ErrDuplicateQuestionID, key, j, i)
		}
		seen[key] = i
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// toEntity builds a set from validated input.
func (in *SetInput) toEntity(ownerID int64) *entities.TriviaSet {
	set := entities.NewTriviaSet(
		strings.TrimSpace(in.Title),
		strings.TrimSpace(in.Category),
		in.Difficulty,
		ownerID,
	)

	for i, q := range in.Questions {
		qt := questionType(q.Type)
		question := entities.Question{
			Key:      questionKey(q, i),
			Text:     strings.TrimSpace(q.Text),
			Type:     qt,
			Position: i,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, entities.Option{
				Text:      strings.TrimSpace(o.Text),
				IsCorrect: o.IsCorrect || qt == entities.QuestionOpenEnded,
			})
		}
		set.Questions = append(set.Questions, question)
	}

	return set
}

func questionType(t string) entities.QuestionType {
	if t == "" {
		return entities.QuestionMultipleChoice
	}
	return entities.QuestionType(t)
}

// questionKey returns the explicit ID or a positional one.
func questionKey(q QuestionInput, i int) string {
	if id := strings.TrimSpace(q.ID); id != "" {
		return id
	}
	return fmt.Sprintf("q%d", i+1)
}

func hasCorrect(opts []OptionInput) bool {
	for _, o := range opts {
		if o.IsCorrect {
			return true
		}
	}
	return false
}
