package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
	"github.com/aliskhannn/trivia-quiz-bot/internal/service"
)

type TriviaService interface {
	List(ctx context.Context) ([]entities.TriviaSetSummary, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.TriviaSet, error)
	Create(ctx context.Context, in service.SetInput, ownerID int64) (*entities.TriviaSet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Playable(ctx context.Context, id uuid.UUID) (*entities.TriviaSet, []quiz.Question, quiz.AnswerKey, error)
}

type ResultService interface {
	Record(ctx context.Context, user *entities.User, setID uuid.UUID, startedAt time.Time, res quiz.Result) (*entities.QuizResult, error)
	Top(ctx context.Context, setID uuid.UUID, n int) ([]entities.LeaderboardEntry, error)
	History(ctx context.Context, userID int64, limit int) ([]entities.QuizResult, error)
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username string) (*entities.User, error)
}
