package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
	"github.com/aliskhannn/trivia-quiz-bot/internal/service"
	"github.com/aliskhannn/trivia-quiz-bot/internal/storage"
)

const (
	topSize       = 10
	recordTimeout = 10 * time.Second
)

func (h *Handler) handleSets() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sets, err := h.triviaService.List(ctx)
		if err != nil {
			return fmt.Errorf("list sets: %w", err)
		}

		if len(sets) == 0 {
			h.send(newPlainMessage(chatID, msgNoSets))
			return nil
		}

		msg := newMessage(chatID, formatSets(sets))
		msg.ReplyMarkup = buildSetsKeyboard(sets)
		h.send(msg)

		return nil
	}
}

func (h *Handler) handleQuizCommand(from *tgbotapi.User, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args = strings.TrimSpace(args)
		if args == "" {
			h.send(newPlainMessage(chatID, msgUseQuiz))
			return nil
		}

		setID, err := uuid.Parse(args)
		if err != nil {
			h.send(newPlainMessage(chatID, msgInvalidSetID))
			return nil
		}

		return h.startQuiz(ctx, chatID, from, setID)
	}
}

func (h *Handler) handleTopCommand(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args = strings.TrimSpace(args)
		if args == "" {
			h.send(newPlainMessage(chatID, msgUseTop))
			return nil
		}

		setID, err := uuid.Parse(args)
		if err != nil {
			h.send(newPlainMessage(chatID, msgInvalidSetID))
			return nil
		}

		return h.handleTop(setID)(ctx, chatID)
	}
}

func (h *Handler) handleTop(setID uuid.UUID) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries, err := h.resultService.Top(ctx, setID, topSize)
		if err != nil {
			return fmt.Errorf("top players: %w", err)
		}

		if len(entries) == 0 {
			h.send(newPlainMessage(chatID, msgNoScores))
			return nil
		}

		h.send(newMessage(chatID, formatLeaderboard(entries)))
		return nil
	}
}

func (h *Handler) handleStop() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		session, ok := h.sessions.Get(chatID)
		if !ok {
			h.send(newPlainMessage(chatID, msgNoQuizRunning))
			return nil
		}

		h.sessions.Delete(chatID, session)
		session.Runner.Stop()
		if r, ok := session.Renderer.(*renderer); ok {
			r.Close()
		}

		h.send(newPlainMessage(chatID, msgQuizStopped))
		return nil
	}
}

// startQuiz replaces any running quiz of the chat with a new one.
func (h *Handler) startQuiz(ctx context.Context, chatID int64, from *tgbotapi.User, setID uuid.UUID) error {
	user := h.ensureUser(ctx, from, chatID)

	set, questions, key, err := h.triviaService.Playable(ctx, setID)
	switch {
	case errors.Is(err, service.ErrSetNotFound):
		h.send(newPlainMessage(chatID, msgSetNotFound))
		return nil
	case errors.Is(err, quiz.ErrNoQuestions):
		h.send(newPlainMessage(chatID, msgSetNotPlayable))
		return nil
	case err != nil:
		return fmt.Errorf("load set: %w", err)
	}

	rend := newRenderer(h.bot, chatID, set, h.logger, h.editInterval)
	session := &storage.Session{
		Renderer:  rend,
		SetID:     set.ID,
		SetTitle:  set.Title,
		StartedAt: time.Now(),
	}
	if from != nil {
		session.PlayerID = from.ID
	}

	opts := []quiz.Option{
		quiz.WithCountdown(h.countdown),
		quiz.WithLogger(h.logger.With(zap.Int64("chat_id", chatID))),
		quiz.WithOnFinish(func(res quiz.Result) {
			// Called with the runner locked.
			go h.finishQuiz(chatID, session, user, res)
		}),
	}
	if h.scheduler != nil {
		opts = append(opts, quiz.WithScheduler(h.scheduler))
	}

	runner, err := quiz.New(questions, key, rend, opts...)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}
	session.Runner = runner

	if prev := h.sessions.Store(chatID, session); prev != nil {
		prev.Runner.Stop()
		if r, ok := prev.Renderer.(*renderer); ok {
			r.Close()
		}
	}

	h.logger.Info("quiz started",
		zap.Int64("chat_id", chatID),
		zap.String("set_id", set.ID.String()),
		zap.Int("questions", len(questions)),
	)

	return runner.Start()
}

func (h *Handler) finishQuiz(chatID int64, session *storage.Session, user *entities.User, res quiz.Result) {
	h.sessions.Delete(chatID, session)

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if _, err := h.resultService.Record(ctx, user, session.SetID, session.StartedAt, res); err != nil {
		h.logger.Error("failed to record result",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// ensureUser stores the user and returns it. Failures are logged and a
// transient user is returned so the quiz can still be played.
func (h *Handler) ensureUser(ctx context.Context, from *tgbotapi.User, chatID int64) *entities.User {
	if from == nil {
		return entities.NewUser(chatID, chatID, "")
	}

	user, err := h.userService.EnsureUser(ctx, from.ID, chatID, from.UserName)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
		return entities.NewUser(from.ID, chatID, from.UserName)
	}

	return user
}
