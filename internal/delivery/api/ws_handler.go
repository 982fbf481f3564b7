package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
	"github.com/aliskhannn/trivia-quiz-bot/internal/service"
)

const recordTimeout = 10 * time.Second

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins.
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// PlayHandler plays a trivia set over a WebSocket connection.
type PlayHandler struct {
	trivia    TriviaService
	results   ResultService
	users     UserService
	countdown int
	logger    *zap.Logger
	upgrader  websocket.Upgrader

	// scheduler drives question countdowns; nil uses quiz.TickerScheduler.
	scheduler quiz.Scheduler
}

// NewPlayHandler creates a new PlayHandler.
func NewPlayHandler(
	trivia TriviaService,
	results ResultService,
	users UserService,
	countdown int,
	allowedOrigins []string,
	logger *zap.Logger,
) *PlayHandler {
	return &PlayHandler{
		trivia:    trivia,
		results:   results,
		users:     users,
		countdown: countdown,
		logger:    logger.With(zap.String("component", "ws_play")),
		upgrader:  buildUpgrader(allowedOrigins),
	}
}

// Play handles GET /ws/sets/:id/play?player_id=N&player=name.
// The result is recorded when player_id is given.
func (h *PlayHandler) Play(c *gin.Context) {
	setID, ok := parseSetID(c)
	if !ok {
		return
	}

	var playerID int64
	if v := c.Query("player_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"player_id": "must be a positive integer"})
			return
		}
		playerID = id
	}

	set, questions, key, err := h.trivia.Playable(c.Request.Context(), setID)
	switch {
	case errors.Is(err, service.ErrSetNotFound):
		Fail(c, http.StatusNotFound, ErrNotFound)
		return
	case errors.Is(err, quiz.ErrNoQuestions):
		Fail(c, http.StatusUnprocessableEntity, ErrNotPlayable)
		return
	case err != nil:
		_ = c.Error(err)
		Fail(c, http.StatusInternalServerError, ErrInternal)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.logger.With(
		zap.String("set_id", set.ID.String()),
		zap.Int64("player_id", playerID),
	)
	log.Info("player connected")

	rend := newWSRenderer(conn, log)
	go rend.writeLoop()
	defer rend.stop()

	startedAt := time.Now()
	player := c.Query("player")
	answered := 0

	opts := []quiz.Option{
		quiz.WithCountdown(h.countdown),
		quiz.WithLogger(log),
		quiz.WithOnAnswer(func(ans quiz.Answer, score int) {
			answered++
			if answered == len(questions) {
				// game_over already carries every answer.
				return
			}
			answer := toAnswerView(ans)
			rend.emit(ResponsePayload{Event: EventAnswer, Answer: &answer, Score: &score})
		}),
		quiz.WithOnFinish(func(res quiz.Result) {
			rend.closeAfterFlush()
			if playerID > 0 {
				go h.record(log, playerID, player, set.ID, startedAt, res)
			}
		}),
	}
	if h.scheduler != nil {
		opts = append(opts, quiz.WithScheduler(h.scheduler))
	}

	runner, err := quiz.New(questions, key, rend, opts...)
	if err != nil {
		log.Error("failed to create runner", zap.Error(err))
		return
	}
	defer runner.Stop()

	if err := runner.Start(); err != nil {
		log.Error("failed to start runner", zap.Error(err))
		return
	}

	h.readLoop(conn, runner, rend, log)
}

func (h *PlayHandler) readLoop(conn *websocket.Conn, runner *quiz.Runner, rend *wsRenderer, log *zap.Logger) {
	for {
		var msg RequestPayload
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", zap.Error(err))
			} else {
				log.Debug("connection closed")
			}
			return
		}

		switch msg.Action {
		case ActionSelect:
			if err := runner.Select(msg.Question, msg.Option); err != nil {
				rend.emitError(err.Error())
				continue
			}
			option := msg.Option
			rend.emit(ResponsePayload{Event: EventSelected, Option: &option})

		case ActionSubmit:
			// The answer frame is queued by the runner before the next question.
			if _, err := runner.Submit(msg.Question); err != nil {
				rend.emitError(err.Error())
			}

		case ActionPing:
			rend.emit(ResponsePayload{Event: EventPong})

		default:
			log.Debug("unknown action", zap.String("action", string(msg.Action)))
			rend.emitError("unknown action: " + string(msg.Action))
		}
	}
}

func (h *PlayHandler) record(log *zap.Logger, playerID int64, player string, setID uuid.UUID, startedAt time.Time, res quiz.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	user, err := h.users.EnsureUser(ctx, playerID, 0, player)
	if err != nil {
		log.Error("failed to ensure player", zap.Error(err))
		user = entities.NewUser(playerID, 0, player)
	}

	if _, err := h.results.Record(ctx, user, setID, startedAt, res); err != nil {
		log.Error("failed to record result", zap.Error(err))
	}
}
