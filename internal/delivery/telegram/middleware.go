package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler and tells the user something went
// wrong.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}

// recoverPanic keeps the update loop alive when a handler panics.
func (h *Handler) recoverPanic(update tgbotapi.Update) {
	if rec := recover(); rec != nil {
		h.logger.Error("panic while handling update",
			zap.Int("update_id", update.UpdateID),
			zap.String("panic", fmt.Sprint(rec)),
			zap.Stack("stack"),
		)
	}
}
