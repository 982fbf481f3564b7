package quiz

import (
	"sync"
	"time"
)

// manualScheduler lets tests fire countdown ticks by hand.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	interval  time.Duration
	fn        func()
	cancelled bool
}

func (s *manualScheduler) Every(d time.Duration, fn func()) Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &manualTask{interval: d, fn: fn}
	s.tasks = append(s.tasks, task)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.cancelled = true
	}
}

// active returns the tasks that were not cancelled.
func (s *manualScheduler) active() []*manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*manualTask
	for _, t := range s.tasks {
		if !t.cancelled {
			out = append(out, t)
		}
	}
	return out
}

// tick fires every active task once.
func (s *manualScheduler) tick() {
	for _, t := range s.active() {
		t.fn()
	}
}

// ticks fires n ticks.
func (s *manualScheduler) ticks(n int) {
	for i := 0; i < n; i++ {
		s.tick()
	}
}

// recordingRenderer captures every call made by the runner.
type recordingRenderer struct {
	mu        sync.Mutex
	questions []QuestionView
	scores    []int
	timers    []int
	gameOver  []Result
}

func (r *recordingRenderer) RenderQuestion(view QuestionView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = append(r.questions, view)
}

func (r *recordingRenderer) ShowScore(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, score)
}

func (r *recordingRenderer) ShowTimer(seconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timers = append(r.timers, seconds)
}

func (r *recordingRenderer) ShowGameOver(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameOver = append(r.gameOver, result)
}

func (r *recordingRenderer) lastQuestion() (QuestionView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.questions) == 0 {
		return QuestionView{}, false
	}
	return r.questions[len(r.questions)-1], true
}

func sampleQuestions() ([]Question, AnswerKey) {
	questions := []Question{
		{ID: "q1", Prompt: "2+2?", Options: []string{"3", "4", "5"}},
		{ID: "q2", Prompt: "Capital of France?", Options: []string{"Paris", "Rome"}},
	}
	key := AnswerKey{
		"q1": {"4"},
		"q2": {"Paris"},
	}
	return questions, key
}
