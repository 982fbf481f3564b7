package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser creates the user or refreshes its chat and username.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, username string) (*entities.User, error) {
	user := entities.NewUser(userID, chatID, username)

	if _, err := s.repository.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	return user, nil
}
