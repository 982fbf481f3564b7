package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

func renderHeader(m Model, noColor bool) string {
	line := "Trivia"
	if m.title != "" {
		line += " | " + m.title
	}
	if m.question != nil && m.result == nil {
		line += fmt.Sprintf(" | Question %d/%d", m.question.Index+1, m.question.Total)
	}
	line += fmt.Sprintf(" | Score: %d", m.score)
	return stylize(line, noColor, lipgloss.Color("33"))
}

func renderQuestion(m Model, noColor bool) string {
	var sb strings.Builder
	sb.WriteString(stylize(m.question.Prompt, noColor, lipgloss.Color("15")))
	sb.WriteString("\n\n")

	for i, opt := range m.question.Options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := "( )"
		if i == m.selected {
			mark = "(x)"
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, opt.Value)
		if i == m.cursor {
			line = stylize(line, noColor, lipgloss.Color("212"))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderStatus(m Model, noColor bool) string {
	color := lipgloss.Color("242")
	if m.seconds <= 3 {
		color = lipgloss.Color("196")
	}
	line := fmt.Sprintf("Time left: %ds", m.seconds)
	if m.lastCorrect != nil {
		if *m.lastCorrect {
			line += " | Last answer: correct"
		} else {
			line += " | Last answer: wrong"
		}
	}
	if m.notice != "" {
		line += " | " + m.notice
	}
	return stylize(line, noColor, color)
}

func renderResult(res quiz.Result, noColor bool) string {
	var sb strings.Builder
	sb.WriteString(stylize(fmt.Sprintf("Game over! Final score: %d/%d", res.Score, res.Total), noColor, lipgloss.Color("42")))
	sb.WriteString("\n\n")

	for i, a := range res.Answers {
		status := "wrong"
		switch {
		case a.Correct:
			status = "correct"
		case a.TimedOut && a.Value == "":
			status = "timed out"
		}
		value := a.Value
		if value == "" {
			value = "-"
		}
		sb.WriteString(fmt.Sprintf("%2d. %-24s %s\n", i+1, value, status))
	}

	return sb.String()
}

// stylize applies a foreground color unless color output is disabled.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
