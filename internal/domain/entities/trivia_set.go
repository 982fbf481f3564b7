// Package entities contains domain entities used across the application.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty levels accepted for a trivia set.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// TriviaSet is a named, ordered collection of questions.
type TriviaSet struct {
	ID         uuid.UUID // public identifier
	Title      string
	Category   string
	Difficulty string
	OwnerID    int64 // 0 for sets imported from files
	Questions  []Question
	CreatedAt  time.Time
}

// NewTriviaSet creates a set with a fresh public identifier.
func NewTriviaSet(title, category, difficulty string, ownerID int64) *TriviaSet {
	return &TriviaSet{
		ID:         uuid.New(),
		Title:      title,
		Category:   category,
		Difficulty: difficulty,
		OwnerID:    ownerID,
		CreatedAt:  time.Now(),
	}
}

// TriviaSetSummary is a set without its questions, used for listings.
type TriviaSetSummary struct {
	ID            uuid.UUID
	Title         string
	Category      string
	Difficulty    string
	QuestionCount int
	CreatedAt     time.Time
}
