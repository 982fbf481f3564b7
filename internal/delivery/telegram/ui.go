package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

// buildQuestionKeyboard builds one row per option plus the Submit row.
// The selected option is marked.
func buildQuestionKeyboard(view quiz.QuestionView, selected int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(view.Options)+1)

	for i, opt := range view.Options {
		label := opt.Value
		if i == selected {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildOptionCallback(view.Index, i)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📨 Submit", buildSubmitCallback(view.Index)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// emptyKeyboard removes the inline keyboard of an edited message.
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}

// buildSetsKeyboard builds play and leaderboard buttons for each set.
func buildSetsKeyboard(sets []entities.TriviaSetSummary) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(sets))
	for _, s := range sets {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ "+s.Title, buildPlayCallback(s.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🏆", buildTopCallback(s.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildGameOverKeyboard builds the keyboard shown with the final score.
func buildGameOverKeyboard(set *entities.TriviaSet) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildPlayCallback(set.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Top players", buildTopCallback(set.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 All sets", buildSetsCallback()),
		),
	)
}
