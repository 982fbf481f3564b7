// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

const msgHelp = "/sets - list trivia sets\n" +
	"/quiz ID - play a set\n" +
	"/top ID - best players of a set\n" +
	"/stop - stop the current quiz\n\n" +
	"In groups only the player who started a quiz can answer it."

const (
	msgWelcome        = "👋 Welcome to Trivia Quiz!\n\nPick an option and press Submit before the timer runs out.\n\n" + msgHelp
	msgUnknownCommand = "Unknown command. Available commands:\n\n" + msgHelp
	msgInternalError  = "Something went wrong. Please try again later."
	msgNoSets         = "There are no trivia sets yet."
	msgUseQuiz        = "Use: /quiz ID. See /sets for the list."
	msgUseTop         = "Use: /top ID. See /sets for the list."
	msgInvalidSetID   = "That is not a valid set ID."
	msgSetNotFound    = "Trivia set not found."
	msgSetNotPlayable = "This set has no multiple choice questions to play."
	msgNoQuizRunning  = "No quiz is running."
	msgQuizStopped    = "Quiz stopped."
	msgPickOption     = "Pick an option first."
	msgQuestionClosed = "This question is closed."
	msgNoScores       = "No scores yet. Be the first!"
	msgNotYourQuiz    = "This quiz belongs to another player."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

func formatQuestion(view quiz.QuestionView, seconds, score int) string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		md(fmt.Sprintf("❓ Question %d/%d", view.Index+1, view.Total)),
		bold(view.Prompt),
		md(fmt.Sprintf("⏱ %ds   ⭐ %d", seconds, score)),
	)
}

func formatGameOver(title string, res quiz.Result) string {
	var sb strings.Builder

	sb.WriteString(bold("🏁 Game over"))
	if title != "" {
		sb.WriteString(md(" · " + title))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Score: %d/%d", res.Score, res.Total)))
	sb.WriteString("\n\n")

	for i, a := range res.Answers {
		mark := "❌"
		switch {
		case a.Correct:
			mark = "✅"
		case a.TimedOut && a.Value == "":
			mark = "⌛"
		}
		value := a.Value
		if value == "" {
			value = "no answer"
		}
		sb.WriteString(md(fmt.Sprintf("%s %d. %s", mark, i+1, value)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatSets(sets []entities.TriviaSetSummary) string {
	var sb strings.Builder
	sb.WriteString(bold("📚 Trivia sets"))
	sb.WriteString("\n\n")

	for _, s := range sets {
		sb.WriteString(bold(s.Title))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s · %s · %d questions", s.Category, s.Difficulty, s.QuestionCount)))
		sb.WriteString("\n`")
		sb.WriteString(s.ID.String())
		sb.WriteString("`\n\n")
	}

	return sb.String()
}

func formatLeaderboard(entries []entities.LeaderboardEntry) string {
	var sb strings.Builder
	sb.WriteString(bold("🏆 Top players"))
	sb.WriteString("\n\n")

	for _, e := range entries {
		name := e.Username
		if name == "" {
			name = fmt.Sprintf("player %d", e.UserID)
		} else {
			name = "@" + name
		}
		sb.WriteString(md(fmt.Sprintf("%d. %s - %d", e.Rank, name, e.Score)))
		sb.WriteString("\n")
	}

	return sb.String()
}
