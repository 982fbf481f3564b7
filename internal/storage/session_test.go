package storage

import (
	"testing"
	"time"

	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

type nopRenderer struct{}

func (nopRenderer) RenderQuestion(quiz.QuestionView) {}
func (nopRenderer) ShowScore(int)                    {}
func (nopRenderer) ShowTimer(int)                    {}
func (nopRenderer) ShowGameOver(quiz.Result)         {}

type closingRenderer struct {
	nopRenderer
	closed bool
}

func (r *closingRenderer) Close() { r.closed = true }

type nopScheduler struct{}

func (nopScheduler) Every(_ time.Duration, _ func()) quiz.Cancel { return func() {} }

func newRunner(t *testing.T) *quiz.Runner {
	t.Helper()
	r, err := quiz.New(
		[]quiz.Question{{ID: "q1", Prompt: "?", Options: []string{"a", "b"}}},
		quiz.AnswerKey{"q1": {"a"}},
		nopRenderer{},
		quiz.WithScheduler(nopScheduler{}),
	)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return r
}

func TestSessionStorage_StoreReplaces(t *testing.T) {
	s := NewSessionStorage()
	first := &Session{SetTitle: "first"}
	second := &Session{SetTitle: "second"}

	if prev := s.Store(1, first); prev != nil {
		t.Fatalf("expected no previous session, got %v", prev)
	}
	if prev := s.Store(1, second); prev != first {
		t.Fatalf("expected first session to be replaced")
	}

	got, ok := s.Get(1)
	if !ok || got != second {
		t.Fatalf("expected second session, got %v %v", got, ok)
	}
}

func TestSessionStorage_DeleteOnlyMatching(t *testing.T) {
	s := NewSessionStorage()
	old := &Session{}
	current := &Session{}
	s.Store(1, current)

	s.Delete(1, old)
	if _, ok := s.Get(1); !ok {
		t.Fatalf("stale delete removed the current session")
	}

	s.Delete(1, current)
	if _, ok := s.Get(1); ok {
		t.Fatalf("expected session to be removed")
	}
}

func TestSessionStorage_StopAll(t *testing.T) {
	s := NewSessionStorage()
	r := newRunner(t)
	if err := r.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	rend := &closingRenderer{}
	s.Store(1, &Session{Runner: r, Renderer: rend})
	s.Store(2, &Session{})

	s.StopAll()

	if !rend.closed {
		t.Fatalf("expected renderer to be closed")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty storage, got %d", s.Len())
	}
	if !r.State().Finished {
		t.Fatalf("expected runner to be stopped")
	}
}
