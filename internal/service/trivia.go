package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

var (
	ErrSetNotFound         = errors.New("trivia set not found")
	ErrDuplicateQuestionID = errors.New("duplicate question id")
)

type TriviaService struct {
	repo        TriviaSetRepository
	leaderboard Leaderboard
	logger      *zap.Logger
}

// NewTriviaService creates a TriviaService. leaderboard may be nil.
func NewTriviaService(repo TriviaSetRepository, leaderboard Leaderboard, logger *zap.Logger) *TriviaService {
	return &TriviaService{
		repo:        repo,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

func (s *TriviaService) List(ctx context.Context) ([]entities.TriviaSetSummary, error) {
	sets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trivia sets: %w", err)
	}
	return sets, nil
}

func (s *TriviaService) Get(ctx context.Context, id uuid.UUID) (*entities.TriviaSet, error) {
	set, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTriviaSetNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("get trivia set: %w", err)
	}
	return set, nil
}

// Create validates in and stores it as a new set owned by ownerID.
func (s *TriviaService) Create(ctx context.Context, in SetInput, ownerID int64) (*entities.TriviaSet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	set := in.toEntity(ownerID)
	if err := s.repo.Create(ctx, set); err != nil {
		return nil, fmt.Errorf("create trivia set: %w", err)
	}

	s.logger.Info("trivia set created",
		zap.String("set_id", set.ID.String()),
		zap.String("title", set.Title),
		zap.Int("questions", len(set.Questions)),
	)

	return set, nil
}

// Import stores in under a fixed ID, replacing any previous version.
func (s *TriviaService) Import(ctx context.Context, id uuid.UUID, in SetInput) (*entities.TriviaSet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	set := in.toEntity(0)
	set.ID = id
	if err := s.repo.Replace(ctx, set); err != nil {
		return nil, fmt.Errorf("import trivia set: %w", err)
	}

	return set, nil
}

func (s *TriviaService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTriviaSetNotFound) {
			return ErrSetNotFound
		}
		return fmt.Errorf("delete trivia set: %w", err)
	}

	if s.leaderboard != nil {
		if err := s.leaderboard.Clear(ctx, id); err != nil {
			s.logger.Warn("failed to clear leaderboard",
				zap.String("set_id", id.String()),
				zap.Error(err),
			)
		}
	}

	return nil
}

// Playable loads a set and converts it for the quiz runner.
func (s *TriviaService) Playable(ctx context.Context, id uuid.UUID) (*entities.TriviaSet, []quiz.Question, quiz.AnswerKey, error) {
	set, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}

	questions, key, err := BuildPlayable(set)
	if err != nil {
		return nil, nil, nil, err
	}

	return set, questions, key, nil
}

// BuildPlayable converts the multiple choice questions of set into runner
// questions and derives the answer key from the options marked correct.
// Open ended questions are skipped.
func BuildPlayable(set *entities.TriviaSet) ([]quiz.Question, quiz.AnswerKey, error) {
	questions := make([]quiz.Question, 0, len(set.Questions))
	key := make(quiz.AnswerKey, len(set.Questions))

	for _, q := range set.Questions {
		if q.Type == entities.QuestionOpenEnded {
			continue
		}
		if _, ok := key[q.Key]; ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateQuestionID, q.Key)
		}

		questions = append(questions, quiz.Question{
			ID:      q.Key,
			Prompt:  q.Text,
			Options: q.OptionTexts(),
		})
		key[q.Key] = q.CorrectTexts()
	}

	if len(questions) == 0 {
		return nil, nil, quiz.ErrNoQuestions
	}

	return questions, key, nil
}
