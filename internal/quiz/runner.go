// Package quiz runs a single timed quiz session: it renders a question, counts
// down, scores the selected option and advances until the sequence is exhausted.
package quiz

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultCountdown is the number of seconds given for each question.
const DefaultCountdown = 10

var (
	ErrNoQuestions    = errors.New("quiz has no questions")
	ErrAlreadyStarted = errors.New("quiz already started")
	ErrNotStarted     = errors.New("quiz not started")
	ErrFinished       = errors.New("quiz is over")
	ErrStaleQuestion  = errors.New("question already answered")
	ErrInvalidOption  = errors.New("invalid option")
	ErrNoSelection    = errors.New("no option selected")
)

// Renderer draws the quiz. Calls are serialized by the runner and must not
// call back into it synchronously.
type Renderer interface {
	RenderQuestion(view QuestionView)
	ShowScore(score int)
	ShowTimer(seconds int)
	ShowGameOver(result Result)
}

// Option configures a Runner.
type Option func(*Runner)

// WithScheduler replaces the default TickerScheduler.
func WithScheduler(s Scheduler) Option {
	return func(r *Runner) { r.scheduler = s }
}

// WithCountdown sets the per-question time limit in seconds.
func WithCountdown(seconds int) Option {
	return func(r *Runner) {
		if seconds > 0 {
			r.countdown = seconds
		}
	}
}

// WithOnFinish registers a callback invoked once when the quiz ends.
func WithOnFinish(fn func(Result)) Option {
	return func(r *Runner) { r.onFinish = fn }
}

// WithOnAnswer registers a callback invoked after each answer is scored and
// before the next question is rendered. It runs with the runner locked.
func WithOnAnswer(fn func(ans Answer, score int)) Option {
	return func(r *Runner) { r.onAnswer = fn }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// Runner owns the session state of one quiz. It is safe for concurrent use.
type Runner struct {
	mu sync.Mutex

	questions []Question
	key       AnswerKey
	renderer  Renderer
	scheduler Scheduler
	countdown int
	onFinish  func(Result)
	onAnswer  func(Answer, int)
	logger    *zap.Logger

	current       int
	score         int
	timeRemaining int
	selected      int
	answers       []Answer
	started       bool
	finished      bool

	cancel     Cancel
	generation uint64
}

// New creates a runner for the given questions. The question slice and the
// answer key must not be modified afterwards.
func New(questions []Question, key AnswerKey, renderer Renderer, opts ...Option) (*Runner, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	r := &Runner{
		questions: questions,
		key:       key,
		renderer:  renderer,
		scheduler: TickerScheduler{},
		countdown: DefaultCountdown,
		logger:    zap.NewNop(),
		selected:  -1,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Start renders the first question and starts its countdown.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}
	if r.finished {
		return ErrFinished
	}
	r.started = true
	r.loadCurrentQuestion()

	return nil
}

// Select marks an option of the question at questionIndex as selected.
func (r *Runner) Select(questionIndex, optionIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkActive(questionIndex); err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(r.questions[r.current].Options) {
		return ErrInvalidOption
	}
	r.selected = optionIndex

	return nil
}

// Submit checks the selected answer for the question at questionIndex.
// Submitting for a question that was already resolved returns ErrStaleQuestion
// and changes nothing. Submitting with nothing selected returns ErrNoSelection
// and leaves the countdown running.
func (r *Runner) Submit(questionIndex int) (Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkActive(questionIndex); err != nil {
		return Outcome{}, err
	}
	if r.selected < 0 {
		return Outcome{}, ErrNoSelection
	}
	r.stopTimer()

	ans := r.checkAnswer(false)

	return Outcome{Answer: ans, Score: r.score, Finished: r.finished}, nil
}

// Stop cancels the running countdown and ends the session without
// rendering the game over state or invoking the finish callback.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopTimer()
	r.finished = true
}

// State returns a snapshot of the session.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return State{
		CurrentIndex:  r.current,
		Total:         len(r.questions),
		Score:         r.score,
		TimeRemaining: r.timeRemaining,
		Selected:      r.selected,
		Started:       r.started,
		Finished:      r.finished,
	}
}

// Result returns the answers recorded so far.
func (r *Runner) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.result()
}

func (r *Runner) checkActive(questionIndex int) error {
	switch {
	case !r.started:
		return ErrNotStarted
	case r.finished:
		return ErrFinished
	case questionIndex != r.current:
		return ErrStaleQuestion
	}
	return nil
}

// loadCurrentQuestion requires r.current < len(r.questions).
func (r *Runner) loadCurrentQuestion() {
	r.selected = -1
	r.renderer.RenderQuestion(buildView(r.questions, r.current))
	r.startTimer()
}

func (r *Runner) startTimer() {
	r.stopTimer()

	r.generation++
	gen := r.generation
	r.timeRemaining = r.countdown
	r.renderer.ShowTimer(r.timeRemaining)

	r.cancel = r.scheduler.Every(time.Second, func() { r.tick(gen) })
}

func (r *Runner) stopTimer() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	// Invalidate ticks already in flight.
	r.generation++
}

func (r *Runner) tick(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation || r.finished {
		return
	}

	if r.timeRemaining > 0 {
		r.timeRemaining--
	}
	r.renderer.ShowTimer(r.timeRemaining)

	if r.timeRemaining == 0 {
		r.stopTimer()
		r.logger.Debug("countdown expired",
			zap.Int("question_index", r.current),
			zap.Bool("selected", r.selected >= 0),
		)
		r.checkAnswer(true)
	}
}

// checkAnswer scores the current question and advances. On timeout an empty
// selection counts as a wrong answer.
func (r *Runner) checkAnswer(timedOut bool) Answer {
	q := r.questions[r.current]

	ans := Answer{QuestionID: q.ID, TimedOut: timedOut}
	if r.selected >= 0 {
		ans.Value = q.Options[r.selected]
		ans.Correct = r.key.Correct(q.ID, ans.Value)
	}
	r.answers = append(r.answers, ans)

	if ans.Correct {
		r.score++
		r.renderer.ShowScore(r.score)
	}

	r.logger.Debug("answer checked",
		zap.String("question_id", q.ID),
		zap.Bool("correct", ans.Correct),
		zap.Bool("timed_out", timedOut),
		zap.Int("score", r.score),
	)
	if r.onAnswer != nil {
		r.onAnswer(ans, r.score)
	}

	r.current++
	if r.current < len(r.questions) {
		r.loadCurrentQuestion()
		return ans
	}

	r.finish()
	return ans
}

func (r *Runner) finish() {
	r.stopTimer()
	r.finished = true
	r.selected = -1

	res := r.result()
	r.renderer.ShowGameOver(res)
	if r.onFinish != nil {
		r.onFinish(res)
	}
}

func (r *Runner) result() Result {
	answers := make([]Answer, len(r.answers))
	copy(answers, r.answers)

	return Result{
		Score:   r.score,
		Total:   len(r.questions),
		Answers: answers,
	}
}
