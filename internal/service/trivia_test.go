package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

func TestSetInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *SetInput)
		field  string
		err    error
	}{
		{
			name:   "valid",
			modify: func(*SetInput) {},
		},
		{
			name:   "missing title",
			modify: func(in *SetInput) { in.Title = "" },
			field:  "title",
		},
		{
			name:   "unknown difficulty",
			modify: func(in *SetInput) { in.Difficulty = "extreme" },
			field:  "difficulty",
		},
		{
			name:   "no questions",
			modify: func(in *SetInput) { in.Questions = nil },
			field:  "questions",
		},
		{
			name:   "no options",
			modify: func(in *SetInput) { in.Questions[0].Options = nil },
			field:  "questions[0].options",
		},
		{
			name: "no correct option",
			modify: func(in *SetInput) {
				in.Questions[1].Options = []OptionInput{{Text: "a"}, {Text: "b"}}
			},
			field: "questions[1].options",
		},
		{
			name: "open ended with two answers",
			modify: func(in *SetInput) {
				in.Questions[0].Type = "open_ended"
			},
			field: "questions[0].options",
		},
		{
			name:   "duplicate ids",
			modify: func(in *SetInput) { in.Questions[1].ID = "capital" },
			err:    ErrDuplicateQuestionID,
		},
		{
			name:   "explicit id clashes with positional one",
			modify: func(in *SetInput) { in.Questions[0].ID = "q2" },
			err:    ErrDuplicateQuestionID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)

			err := in.Validate()

			switch {
			case tt.err != nil:
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
			case tt.field != "":
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if _, ok := verr.Fields[tt.field]; !ok {
					t.Fatalf("expected error on %q, got %v", tt.field, verr.Fields)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestBuildPlayable(t *testing.T) {
	in := validInput()
	in.Questions = append(in.Questions, QuestionInput{
		Text:    "Name a primary colour",
		Type:    "open_ended",
		Options: []OptionInput{{Text: "red"}},
	})
	set := in.toEntity(0)

	questions, key, err := BuildPlayable(set)
	if err != nil {
		t.Fatalf("build playable: %v", err)
	}

	if len(questions) != 2 {
		t.Fatalf("expected open ended question to be skipped, got %d questions", len(questions))
	}
	if questions[0].ID != "capital" || questions[1].ID != "q2" {
		t.Fatalf("unexpected ids: %q %q", questions[0].ID, questions[1].ID)
	}
	if !key.Correct("capital", "Paris") || key.Correct("capital", "Rome") {
		t.Fatalf("answer key not derived from correct options: %v", key)
	}
	if !key.Correct("q2", "Pacific") {
		t.Fatalf("expected Pacific to be correct")
	}
}

func TestBuildPlayable_OnlyOpenEnded(t *testing.T) {
	set := &entities.TriviaSet{Questions: []entities.Question{
		{Key: "q1", Type: entities.QuestionOpenEnded, Options: []entities.Option{{Text: "x", IsCorrect: true}}},
	}}

	if _, _, err := BuildPlayable(set); !errors.Is(err, quiz.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestBuildPlayable_DuplicateKey(t *testing.T) {
	set := &entities.TriviaSet{Questions: []entities.Question{
		{Key: "q1", Type: entities.QuestionMultipleChoice, Options: []entities.Option{{Text: "a", IsCorrect: true}}},
		{Key: "q1", Type: entities.QuestionMultipleChoice, Options: []entities.Option{{Text: "b", IsCorrect: true}}},
	}}

	if _, _, err := BuildPlayable(set); !errors.Is(err, ErrDuplicateQuestionID) {
		t.Fatalf("expected ErrDuplicateQuestionID, got %v", err)
	}
}

func TestTriviaService_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSetRepo()
	lb := newFakeLeaderboard()
	svc := NewTriviaService(repo, lb, zap.NewNop())

	set, err := svc.Create(ctx, validInput(), 42)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if set.OwnerID != 42 || set.ID == uuid.Nil {
		t.Fatalf("unexpected set: %+v", set)
	}

	got, questions, key, err := svc.Playable(ctx, set.ID)
	if err != nil {
		t.Fatalf("playable: %v", err)
	}
	if got.Title != "Geography" || len(questions) != 2 || len(key) != 2 {
		t.Fatalf("unexpected playable set: %+v", got)
	}

	if err := svc.Delete(ctx, set.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(lb.cleared) != 1 || lb.cleared[0] != set.ID {
		t.Fatalf("expected leaderboard to be cleared")
	}

	if _, err := svc.Get(ctx, set.ID); !errors.Is(err, ErrSetNotFound) {
		t.Fatalf("expected ErrSetNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, set.ID); !errors.Is(err, ErrSetNotFound) {
		t.Fatalf("expected ErrSetNotFound on second delete, got %v", err)
	}
}

func TestTriviaService_CreateRejectsInvalid(t *testing.T) {
	repo := newFakeSetRepo()
	svc := NewTriviaService(repo, nil, zap.NewNop())

	in := validInput()
	in.Questions = nil

	if _, err := svc.Create(context.Background(), in, 1); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.sets) != 0 {
		t.Fatalf("invalid set must not be stored")
	}
}
