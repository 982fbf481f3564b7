package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

const DefaultTopSize = 10

// ResultService records finished quizzes and serves leaderboards.
type ResultService struct {
	results     ResultRepository
	leaderboard Leaderboard
	logger      *zap.Logger
}

// NewResultService creates a ResultService. leaderboard may be nil, in which
// case leaderboards are computed from stored results.
func NewResultService(results ResultRepository, leaderboard Leaderboard, logger *zap.Logger) *ResultService {
	return &ResultService{
		results:     results,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// Record stores the outcome of a finished runner.
func (s *ResultService) Record(
	ctx context.Context,
	user *entities.User,
	setID uuid.UUID,
	startedAt time.Time,
	res quiz.Result,
) (*entities.QuizResult, error) {
	qr := entities.NewQuizResult(user.ID, user.Username, setID, res.Score, res.Total, startedAt)
	for _, a := range res.Answers {
		if a.TimedOut {
			qr.TimedOut++
		}
	}

	if err := s.results.Save(ctx, qr); err != nil {
		return nil, fmt.Errorf("record result: %w", err)
	}

	if s.leaderboard != nil {
		if err := s.leaderboard.Record(ctx, setID, user.ID, user.Username, qr.Score); err != nil {
			s.logger.Warn("failed to update leaderboard",
				zap.String("set_id", setID.String()),
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("quiz result recorded",
		zap.String("set_id", setID.String()),
		zap.Int64("user_id", user.ID),
		zap.Int("score", qr.Score),
		zap.Int("total", qr.Total),
	)

	return qr, nil
}

// Top returns the n best players of a set. The cache answers only once it
// was seeded with every stored best score; until then the scores are read
// from the database and loaded into it.
func (s *ResultService) Top(ctx context.Context, setID uuid.UUID, n int) ([]entities.LeaderboardEntry, error) {
	if n <= 0 {
		n = DefaultTopSize
	}

	if s.leaderboard == nil {
		entries, err := s.results.BestScores(ctx, setID, n)
		if err != nil {
			return nil, fmt.Errorf("top scores: %w", err)
		}
		return entries, nil
	}

	seeded, err := s.leaderboard.Seeded(ctx, setID)
	if err == nil && seeded {
		entries, err := s.leaderboard.Top(ctx, setID, n)
		if err == nil {
			return entries, nil
		}
		s.logger.Warn("leaderboard unavailable, using database", zap.Error(err))
	} else if err != nil {
		s.logger.Warn("leaderboard unavailable, using database", zap.Error(err))
	}

	all, err := s.results.BestScores(ctx, setID, 0)
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}

	if err := s.leaderboard.Seed(ctx, setID, all); err != nil {
		s.logger.Warn("failed to seed leaderboard", zap.Error(err))
	}

	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// History returns the latest results of a user.
func (s *ResultService) History(ctx context.Context, userID int64, limit int) ([]entities.QuizResult, error) {
	results, err := s.results.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("result history: %w", err)
	}
	return results, nil
}
