package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
	"github.com/aliskhannn/trivia-quiz-bot/internal/storage"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionOption:
		h.handleOptionCallback(cb, chatID, data)

	case actionSubmit:
		h.handleSubmitCallback(cb, chatID, data)

	case actionPlay:
		h.answerCallback(cb, "")
		if setID, ok := data.setIDParam(); ok {
			_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
				return h.startQuiz(ctx, chatID, cb.From, setID)
			})(ctx, chatID)
		}

	case actionTop:
		h.answerCallback(cb, "")
		if setID, ok := data.setIDParam(); ok {
			_ = h.withErrorHandling(h.handleTop(setID))(ctx, chatID)
		}

	case actionSets:
		h.answerCallback(cb, "")
		_ = h.withErrorHandling(h.handleSets())(ctx, chatID)

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
	}
}

func (h *Handler) handleOptionCallback(cb *tgbotapi.CallbackQuery, chatID int64, data callbackData) {
	questionIndex, ok1 := data.intParam(0)
	optionIndex, ok2 := data.intParam(1)
	if !ok1 || !ok2 {
		h.answerCallback(cb, "")
		return
	}

	session, ok := h.sessions.Get(chatID)
	if !ok {
		h.answerCallback(cb, msgNoQuizRunning)
		return
	}
	if !ownsSession(session, cb.From) {
		h.answerCallback(cb, msgNotYourQuiz)
		return
	}

	if err := session.Runner.Select(questionIndex, optionIndex); err != nil {
		h.answerCallback(cb, callbackNotice(err))
		return
	}

	if r, ok := session.Renderer.(*renderer); ok {
		r.markSelected(questionIndex, optionIndex)
	}
	h.answerCallback(cb, "")
}

func (h *Handler) handleSubmitCallback(cb *tgbotapi.CallbackQuery, chatID int64, data callbackData) {
	questionIndex, ok := data.intParam(0)
	if !ok {
		h.answerCallback(cb, "")
		return
	}

	session, ok := h.sessions.Get(chatID)
	if !ok {
		h.answerCallback(cb, msgNoQuizRunning)
		return
	}
	if !ownsSession(session, cb.From) {
		h.answerCallback(cb, msgNotYourQuiz)
		return
	}

	outcome, err := session.Runner.Submit(questionIndex)
	if err != nil {
		h.answerCallback(cb, callbackNotice(err))
		return
	}

	notice := "❌ Wrong"
	if outcome.Answer.Correct {
		notice = "✅ Correct"
	}
	h.answerCallback(cb, notice)
}

// ownsSession reports whether from may answer the quiz.
func ownsSession(session *storage.Session, from *tgbotapi.User) bool {
	if session.PlayerID == 0 {
		return true
	}
	return from != nil && from.ID == session.PlayerID
}

// callbackNotice maps runner errors to the text shown on a button press.
func callbackNotice(err error) string {
	switch {
	case errors.Is(err, quiz.ErrNoSelection):
		return msgPickOption
	case errors.Is(err, quiz.ErrStaleQuestion), errors.Is(err, quiz.ErrFinished):
		return msgQuestionClosed
	case errors.Is(err, quiz.ErrNotStarted):
		return msgNoQuizRunning
	default:
		return ""
	}
}
