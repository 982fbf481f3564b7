// Package app wires storage and services shared by the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/config"
	"github.com/aliskhannn/trivia-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/trivia-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/trivia-quiz-bot/internal/infra/redis"
	"github.com/aliskhannn/trivia-quiz-bot/internal/service"
)

// Services holds the service layer built on top of Postgres and the optional
// Redis leaderboard.
type Services struct {
	Users    *service.UserService
	Trivia   *service.TriviaService
	Results  *service.ResultService
	Importer *service.ImportScheduler

	pool  *pgxpool.Pool
	redis *goredis.Client
}

// Build connects to the configured stores and constructs the services.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	s := &Services{pool: pool}

	// A nil interface disables the cache; a typed nil pointer would not.
	var leaderboard service.Leaderboard
	if cfg.Redis.Enabled() {
		rdb, err := redis.NewClient(ctx, cfg.Redis.URL, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		s.redis = rdb
		leaderboard = redis.NewLeaderboard(rdb)
	} else {
		logger.Info("redis is not configured, leaderboard cache disabled")
	}

	transactor := postgres.NewTransactor(pool)
	userRepo := repository.NewUserRepository(pool)
	setRepo := repository.NewTriviaSetRepository(pool, transactor)
	resultRepo := repository.NewResultRepository(pool)

	s.Users = service.NewUserService(userRepo)
	s.Trivia = service.NewTriviaService(setRepo, leaderboard, logger)
	s.Results = service.NewResultService(resultRepo, leaderboard, logger)
	s.Importer = service.NewImportScheduler(cfg.Quiz.SetsDir, cfg.Quiz.ImportSchedule, s.Trivia, logger)

	return s, nil
}

// Close releases the connections opened by Build.
func (s *Services) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	s.pool.Close()
}
