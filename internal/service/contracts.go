package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
}

// TriviaSetRepository persists trivia sets with their questions.
type TriviaSetRepository interface {
	Create(ctx context.Context, set *entities.TriviaSet) error
	Replace(ctx context.Context, set *entities.TriviaSet) error
	List(ctx context.Context) ([]entities.TriviaSetSummary, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TriviaSet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ResultRepository interface {
	Save(ctx context.Context, res *entities.QuizResult) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]entities.QuizResult, error)
	BestScores(ctx context.Context, setID uuid.UUID, limit int) ([]entities.LeaderboardEntry, error)
}

// Leaderboard caches the best score per user and set.
type Leaderboard interface {
	Record(ctx context.Context, setID uuid.UUID, userID int64, username string, score int) error
	Top(ctx context.Context, setID uuid.UUID, n int) ([]entities.LeaderboardEntry, error)
	Seed(ctx context.Context, setID uuid.UUID, entries []entities.LeaderboardEntry) error
	Seeded(ctx context.Context, setID uuid.UUID) (bool, error)
	Clear(ctx context.Context, setID uuid.UUID) error
}
