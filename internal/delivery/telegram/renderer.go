package telegram

import (
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

// defaultEditInterval keeps timer edits within Telegram's per-chat rate.
const defaultEditInterval = time.Second

// renderer draws a quiz into a chat. Each question is one message whose
// text and keyboard are edited as the timer runs and the selection changes.
//
// Runner callbacks only record the latest state. writeLoop talks to
// Telegram, so a slow API never holds the runner lock. Intermediate timer
// values are dropped when the loop falls behind.
type renderer struct {
	bot          Bot
	chatID       int64
	set          *entities.TriviaSet
	logger       *zap.Logger
	editInterval time.Duration

	mu       sync.Mutex
	view     quiz.QuestionView
	selected int
	seconds  int
	score    int
	seq      int
	pending  bool
	result   *quiz.Result
	closed   bool

	wake chan struct{}
	done chan struct{}

	// Owned by writeLoop.
	sentSeq   int
	messageID int
	lastDraw  string
}

type renderState struct {
	view     quiz.QuestionView
	selected int
	seconds  int
	score    int
	seq      int
	result   *quiz.Result
	closed   bool
}

func newRenderer(bot Bot, chatID int64, set *entities.TriviaSet, logger *zap.Logger, editInterval time.Duration) *renderer {
	r := &renderer{
		bot:          bot,
		chatID:       chatID,
		set:          set,
		logger:       logger,
		editInterval: editInterval,
		selected:     -1,
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	go r.writeLoop()
	return r
}

// RenderQuestion replaces the current question. The new message is sent
// once the first timer value is known.
func (r *renderer) RenderQuestion(view quiz.QuestionView) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.view = view
	r.selected = -1
	r.pending = true
}

func (r *renderer) ShowScore(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.score = score
}

func (r *renderer) ShowTimer(seconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seconds = seconds
	if r.pending {
		r.pending = false
		r.seq++
	}
	r.signal()
}

func (r *renderer) ShowGameOver(res quiz.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.result = &res
	r.signal()
}

// markSelected highlights the chosen option of the question at
// questionIndex.
func (r *renderer) markSelected(questionIndex, optionIndex int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.view.Index != questionIndex {
		return
	}
	r.selected = optionIndex
	r.signal()
}

// Close removes the keyboard of the current question and ends writeLoop.
func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.signal()
}

// signal wakes writeLoop. Must be called with mu held.
func (r *renderer) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *renderer) snapshot() renderState {
	r.mu.Lock()
	defer r.mu.Unlock()

	return renderState{
		view:     r.view,
		selected: r.selected,
		seconds:  r.seconds,
		score:    r.score,
		seq:      r.seq,
		result:   r.result,
		closed:   r.closed,
	}
}

func (r *renderer) writeLoop() {
	defer close(r.done)

	var last time.Time
	for range r.wake {
		if wait := r.editInterval - time.Since(last); wait > 0 {
			time.Sleep(wait)
		}
		last = time.Now()

		st := r.snapshot()
		switch {
		case st.result != nil:
			r.closeCurrent()
			msg := newMessage(r.chatID, formatGameOver(r.set.Title, *st.result))
			msg.ReplyMarkup = buildGameOverKeyboard(r.set)
			r.send(msg)
			return

		case st.closed:
			r.closeCurrent()
			return

		case st.seq != r.sentSeq:
			r.closeCurrent()
			r.sentSeq = st.seq
			r.sendQuestion(st)

		default:
			r.redraw(st)
		}
	}
}

func (r *renderer) sendQuestion(st renderState) {
	text := formatQuestion(st.view, st.seconds, st.score)
	msg := newMessage(r.chatID, text)
	msg.ReplyMarkup = buildQuestionKeyboard(st.view, st.selected)

	sent, err := r.bot.Send(msg)
	if err != nil {
		r.logger.Error("failed to send question",
			zap.Int64("chat_id", r.chatID),
			zap.Error(err),
		)
		return
	}
	r.messageID = sent.MessageID
	r.lastDraw = drawKey(text, st.selected)
}

func (r *renderer) redraw(st renderState) {
	if r.messageID == 0 {
		return
	}
	text := formatQuestion(st.view, st.seconds, st.score)
	key := drawKey(text, st.selected)
	if key == r.lastDraw {
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		r.chatID,
		r.messageID,
		text,
		buildQuestionKeyboard(st.view, st.selected),
	)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	r.send(edit)
	r.lastDraw = key
}

func (r *renderer) closeCurrent() {
	if r.messageID == 0 {
		return
	}
	r.send(tgbotapi.NewEditMessageReplyMarkup(r.chatID, r.messageID, emptyKeyboard()))
	r.messageID = 0
	r.lastDraw = ""
}

func (r *renderer) send(c tgbotapi.Chattable) {
	if _, err := r.bot.Send(c); err != nil {
		// Edits with unchanged content are rejected by Telegram.
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		r.logger.Error("failed to send telegram message",
			zap.Int64("chat_id", r.chatID),
			zap.Error(err),
		)
	}
}

func drawKey(text string, selected int) string {
	return text + "|" + strconv.Itoa(selected)
}
