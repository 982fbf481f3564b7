package tui

import (
	"sync"

	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

// EventKind identifies a runner callback.
type EventKind int

const (
	EventQuestion EventKind = iota
	EventTimer
	EventScore
	EventGameOver
)

// Event is a runner callback forwarded to the UI.
type Event struct {
	Kind     EventKind
	Question quiz.QuestionView
	Seconds  int
	Score    int
	Result   quiz.Result
}

// Renderer forwards runner callbacks to the UI through a buffered channel.
// Timer updates are dropped when the UI falls behind; other events wait.
type Renderer struct {
	events    chan Event
	closeOnce sync.Once
}

// NewRenderer creates a Renderer with the given buffer size.
func NewRenderer(buffer int) *Renderer {
	if buffer <= 0 {
		buffer = 256
	}
	return &Renderer{events: make(chan Event, buffer)}
}

// Events returns the stream consumed by the model.
func (r *Renderer) Events() <-chan Event {
	return r.events
}

// Close ends the event stream.
func (r *Renderer) Close() {
	r.closeOnce.Do(func() { close(r.events) })
}

func (r *Renderer) RenderQuestion(view quiz.QuestionView) {
	r.events <- Event{Kind: EventQuestion, Question: view}
}

func (r *Renderer) ShowScore(score int) {
	r.events <- Event{Kind: EventScore, Score: score}
}

func (r *Renderer) ShowTimer(seconds int) {
	select {
	case r.events <- Event{Kind: EventTimer, Seconds: seconds}:
	default:
	}
}

func (r *Renderer) ShowGameOver(res quiz.Result) {
	r.events <- Event{Kind: EventGameOver, Result: res}
}
