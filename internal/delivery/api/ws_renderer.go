package api

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

const (
	writeWait    = 10 * time.Second
	eventsBuffer = 64
)

type frame struct {
	payload ResponsePayload
	close   bool
}

// wsRenderer turns runner callbacks into JSON frames. Frames are queued and
// written by writeLoop so the runner never waits on the network.
type wsRenderer struct {
	conn   *websocket.Conn
	logger *zap.Logger

	frames chan frame
	done   chan struct{}
	once   sync.Once
}

func newWSRenderer(conn *websocket.Conn, logger *zap.Logger) *wsRenderer {
	return &wsRenderer{
		conn:   conn,
		logger: logger,
		frames: make(chan frame, eventsBuffer),
		done:   make(chan struct{}),
	}
}

func (r *wsRenderer) RenderQuestion(view quiz.QuestionView) {
	r.emit(ResponsePayload{Event: EventQuestion, Question: toQuestionView(view)})
}

func (r *wsRenderer) ShowScore(score int) {
	r.emit(ResponsePayload{Event: EventScore, Score: &score})
}

func (r *wsRenderer) ShowTimer(seconds int) {
	r.emit(ResponsePayload{Event: EventTimer, Seconds: &seconds})
}

func (r *wsRenderer) ShowGameOver(res quiz.Result) {
	r.emit(ResponsePayload{Event: EventGameOver, Result: toResultView(res)})
}

func (r *wsRenderer) emit(p ResponsePayload) {
	r.push(frame{payload: p})
}

func (r *wsRenderer) emitError(msg string) {
	r.emit(ResponsePayload{Event: EventError, Error: msg})
}

// closeAfterFlush closes the connection once queued frames are written.
func (r *wsRenderer) closeAfterFlush() {
	r.push(frame{close: true})
}

func (r *wsRenderer) push(f frame) {
	select {
	case r.frames <- f:
	case <-r.done:
	}
}

// stop ends writeLoop. Queued and later frames are dropped.
func (r *wsRenderer) stop() {
	r.once.Do(func() { close(r.done) })
}

func (r *wsRenderer) writeLoop() {
	defer r.stop()

	for {
		select {
		case <-r.done:
			return
		case f := <-r.frames:
			if f.close {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")
				_ = r.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
				// Wait for the client's close frame, not forever.
				_ = r.conn.SetReadDeadline(time.Now().Add(writeWait))
				return
			}

			_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := r.conn.WriteJSON(f.payload); err != nil {
				r.logger.Debug("websocket write failed", zap.Error(err))
				_ = r.conn.Close()
				return
			}
		}
	}
}
