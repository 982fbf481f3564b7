package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuizResult is the final score of one finished play-through of a set.
type QuizResult struct {
	ID         int64
	UserID     int64
	Username   string
	SetID      uuid.UUID
	Score      int
	Total      int
	TimedOut   int // questions that ran out of time
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewQuizResult creates a result finished now.
func NewQuizResult(userID int64, username string, setID uuid.UUID, score, total int, startedAt time.Time) *QuizResult {
	return &QuizResult{
		UserID:     userID,
		Username:   username,
		SetID:      setID,
		Score:      score,
		Total:      total,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
}

// Percentage returns the share of correct answers in percent.
func (r *QuizResult) Percentage() int {
	if r.Total == 0 {
		return 0
	}
	return r.Score * 100 / r.Total
}

// LeaderboardEntry is a player's best score for a set.
type LeaderboardEntry struct {
	Rank     int
	UserID   int64
	Username string
	Score    int
}
