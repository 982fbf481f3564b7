package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

type Handler struct {
	bot           Bot
	logger        *zap.Logger
	userService   UserService
	triviaService TriviaService
	resultService ResultService
	sessions      SessionStorage
	countdown     int
	editInterval  time.Duration

	// scheduler drives question countdowns; nil uses quiz.TickerScheduler.
	scheduler quiz.Scheduler
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	userService UserService,
	triviaService TriviaService,
	resultService ResultService,
	sessions SessionStorage,
	countdown int,
) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger,
		userService:   userService,
		triviaService: triviaService,
		resultService: resultService,
		sessions:      sessions,
		countdown:     countdown,
		editInterval:  defaultEditInterval,
	}
}

// Run processes updates until ctx is cancelled. Running quizzes are stopped
// on return.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")
	defer h.sessions.StopAll()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer h.recoverPanic(update)

	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	if !update.Message.IsCommand() {
		return
	}

	from := update.Message.From
	chatID := update.Message.Chat.ID
	args := update.Message.CommandArguments()

	switch update.Message.Command() {
	case "start":
		h.ensureUser(ctx, from, chatID)
		h.send(newPlainMessage(chatID, msgWelcome))

	case "help":
		h.send(newPlainMessage(chatID, msgHelp))

	case "sets":
		_ = h.withErrorHandling(h.handleSets())(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling(h.handleQuizCommand(from, args))(ctx, chatID)

	case "top":
		_ = h.withErrorHandling(h.handleTopCommand(args))(ctx, chatID)

	case "stop":
		_ = h.withErrorHandling(h.handleStop())(ctx, chatID)

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the loading state of a button, optionally with a
// short notice.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
