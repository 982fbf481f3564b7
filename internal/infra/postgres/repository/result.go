package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/infra/postgres"
)

// ResultRepository provides access to finished quiz results.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save inserts a finished result and sets its ID.
func (r *ResultRepository) Save(ctx context.Context, res *entities.QuizResult) error {
	query := `
		INSERT INTO quiz_results (user_id, set_id, score, total, timed_out, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		res.UserID,
		res.SetID,
		res.Score,
		res.Total,
		res.TimedOut,
		res.StartedAt,
		res.FinishedAt,
	).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}

	return nil
}

// ListByUser returns a user's most recent results.
func (r *ResultRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entities.QuizResult, error) {
	query := `
		SELECT r.id, r.user_id, COALESCE(u.username, ''), r.set_id, r.score, r.total,
		       r.timed_out, r.started_at, r.finished_at
		FROM quiz_results r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	var out []entities.QuizResult
	for rows.Next() {
		var res entities.QuizResult
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.Username,
			&res.SetID,
			&res.Score,
			&res.Total,
			&res.TimedOut,
			&res.StartedAt,
			&res.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}

	return out, nil
}

// BestScores returns the best score per user for a set. A limit of 0
// returns every player. It is used to rebuild the leaderboard cache.
func (r *ResultRepository) BestScores(ctx context.Context, setID uuid.UUID, limit int) ([]entities.LeaderboardEntry, error) {
	query := `
		SELECT r.user_id, COALESCE(u.username, ''), MAX(r.score) AS best
		FROM quiz_results r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.set_id = $1
		GROUP BY r.user_id, u.username
		ORDER BY best DESC, r.user_id
		LIMIT NULLIF($2, 0)
	`

	rows, err := r.db.Query(ctx, query, setID, limit)
	if err != nil {
		return nil, fmt.Errorf("best scores: %w", err)
	}
	defer rows.Close()

	var out []entities.LeaderboardEntry
	for rows.Next() {
		var e entities.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Score); err != nil {
			return nil, fmt.Errorf("scan best score: %w", err)
		}
		e.Rank = len(out) + 1
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate best scores: %w", err)
	}

	return out, nil
}
