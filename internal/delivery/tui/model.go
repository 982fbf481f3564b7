// Package tui plays a quiz in the terminal with Bubble Tea.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

// Player is the part of *quiz.Runner the model drives.
type Player interface {
	Select(questionIndex, optionIndex int) error
	Submit(questionIndex int) (quiz.Outcome, error)
	Stop()
}

// Options configures the model.
type Options struct {
	Title   string
	NoColor bool
}

// Model renders a running quiz and turns key presses into runner calls.
type Model struct {
	player  Player
	events  <-chan Event
	title   string
	noColor bool
	keys    keyMap
	help    help.Model

	question    *quiz.QuestionView
	cursor      int
	selected    int
	seconds     int
	score       int
	lastCorrect *bool
	notice      string
	result      *quiz.Result
}

// NewModel constructs a model for a runner and the event stream of its
// Renderer.
func NewModel(player Player, events <-chan Event, opts Options) Model {
	return Model{
		player:   player,
		events:   events,
		title:    opts.Title,
		noColor:  opts.NoColor,
		keys:     defaultKeyMap(),
		help:     help.New(),
		selected: -1,
	}
}

// Init waits for the first event.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update consumes runner events and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case EventMsg:
		m = applyEvent(m, typed.Event)
		return m, waitForEvent(m.events)
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.player.Stop()
		return m, tea.Quit
	}
	if m.result != nil || m.question == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.question.Options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m = m.selectCursor()
	case key.Matches(msg, m.keys.Submit):
		m = m.selectCursor()
		m = m.submit()
	}

	return m, nil
}

func (m Model) selectCursor() Model {
	if err := m.player.Select(m.question.Index, m.cursor); err != nil {
		m.notice = noticeFor(err)
		return m
	}
	m.selected = m.cursor
	m.notice = ""
	return m
}

func (m Model) submit() Model {
	outcome, err := m.player.Submit(m.question.Index)
	if err != nil {
		m.notice = noticeFor(err)
		return m
	}
	correct := outcome.Answer.Correct
	m.lastCorrect = &correct
	return m
}

// View renders the quiz.
func (m Model) View() string {
	header := renderHeader(m, m.noColor)
	if m.result != nil {
		return lipgloss.JoinVertical(lipgloss.Left, header, renderResult(*m.result, m.noColor), m.help.ShortHelpView([]key.Binding{m.keys.Quit}))
	}
	if m.question == nil {
		return lipgloss.JoinVertical(lipgloss.Left, header, "Loading…")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		renderQuestion(m, m.noColor),
		renderStatus(m, m.noColor),
		m.help.View(m.keys),
	)
}

// EventMsg wraps a runner event for Bubble Tea.
type EventMsg struct {
	Event Event
}

// waitForEvent blocks until a runner event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

// applyEvent mutates model state based on a runner event.
func applyEvent(m Model, event Event) Model {
	switch event.Kind {
	case EventQuestion:
		q := event.Question
		m.question = &q
		m.cursor = 0
		m.selected = -1
		m.notice = ""
	case EventTimer:
		m.seconds = event.Seconds
	case EventScore:
		m.score = event.Score
	case EventGameOver:
		res := event.Result
		m.result = &res
		m.score = res.Score
	}
	return m
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, quiz.ErrNoSelection):
		return "Pick an option first."
	case errors.Is(err, quiz.ErrStaleQuestion), errors.Is(err, quiz.ErrFinished):
		return "Too late, that question is closed."
	default:
		return err.Error()
	}
}
