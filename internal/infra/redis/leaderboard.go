package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
)

// Leaderboard keeps the best score per user for every trivia set in a
// sorted set keyed by set ID.
type Leaderboard struct {
	rdb *redis.Client
}

// NewLeaderboard creates a new Leaderboard.
func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{rdb: rdb}
}

func scoresKey(setID uuid.UUID) string {
	return "leaderboard:" + setID.String()
}

func namesKey(setID uuid.UUID) string {
	return "leaderboard:" + setID.String() + ":names"
}

// seededKey marks a leaderboard loaded with every stored best score.
func seededKey(setID uuid.UUID) string {
	return "leaderboard:" + setID.String() + ":seeded"
}

// Record stores score for the user unless a higher one is already stored.
func (l *Leaderboard) Record(ctx context.Context, setID uuid.UUID, userID int64, username string, score int) error {
	member := strconv.FormatInt(userID, 10)

	pipe := l.rdb.TxPipeline()
	pipe.ZAddGT(ctx, scoresKey(setID), redis.Z{Score: float64(score), Member: member})
	if username != "" {
		pipe.HSet(ctx, namesKey(setID), member, username)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record leaderboard score: %w", err)
	}

	return nil
}

// Top returns up to n entries with the highest scores.
func (l *Leaderboard) Top(ctx context.Context, setID uuid.UUID, n int) ([]entities.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	zs, err := l.rdb.ZRevRangeWithScores(ctx, scoresKey(setID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if len(zs) == 0 {
		return nil, nil
	}

	members := make([]string, 0, len(zs))
	for _, z := range zs {
		members = append(members, fmt.Sprint(z.Member))
	}

	names, err := l.rdb.HMGet(ctx, namesKey(setID), members...).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard names: %w", err)
	}

	out := make([]entities.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		userID, err := strconv.ParseInt(members[i], 10, 64)
		if err != nil {
			continue
		}
		e := entities.LeaderboardEntry{
			Rank:   len(out) + 1,
			UserID: userID,
			Score:  int(z.Score),
		}
		if i < len(names) {
			if s, ok := names[i].(string); ok {
				e.Username = s
			}
		}
		out = append(out, e)
	}

	return out, nil
}

// Seed loads the best score of every player of a set and marks the
// leaderboard as complete.
func (l *Leaderboard) Seed(ctx context.Context, setID uuid.UUID, entries []entities.LeaderboardEntry) error {
	pipe := l.rdb.TxPipeline()
	for _, e := range entries {
		member := strconv.FormatInt(e.UserID, 10)
		pipe.ZAddGT(ctx, scoresKey(setID), redis.Z{Score: float64(e.Score), Member: member})
		if e.Username != "" {
			pipe.HSet(ctx, namesKey(setID), member, e.Username)
		}
	}
	pipe.Set(ctx, seededKey(setID), 1, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("seed leaderboard: %w", err)
	}
	return nil
}

// Seeded reports whether the leaderboard of a set holds every player.
func (l *Leaderboard) Seeded(ctx context.Context, setID uuid.UUID) (bool, error) {
	n, err := l.rdb.Exists(ctx, seededKey(setID)).Result()
	if err != nil {
		return false, fmt.Errorf("check leaderboard: %w", err)
	}
	return n > 0, nil
}

// Clear removes the leaderboard of a deleted set.
func (l *Leaderboard) Clear(ctx context.Context, setID uuid.UUID) error {
	if err := l.rdb.Del(ctx, scoresKey(setID), namesKey(setID), seededKey(setID)).Err(); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}
	return nil
}
