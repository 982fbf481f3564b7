package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
	"github.com/aliskhannn/trivia-quiz-bot/internal/storage"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username string) (*entities.User, error)
}

type TriviaService interface {
	List(ctx context.Context) ([]entities.TriviaSetSummary, error)
	Playable(ctx context.Context, id uuid.UUID) (*entities.TriviaSet, []quiz.Question, quiz.AnswerKey, error)
}

type ResultService interface {
	Record(ctx context.Context, user *entities.User, setID uuid.UUID, startedAt time.Time, res quiz.Result) (*entities.QuizResult, error)
	Top(ctx context.Context, setID uuid.UUID, n int) ([]entities.LeaderboardEntry, error)
}

type SessionStorage interface {
	Store(chatID int64, session *storage.Session) *storage.Session
	Get(chatID int64) (*storage.Session, bool)
	Delete(chatID int64, session *storage.Session)
	StopAll()
}
