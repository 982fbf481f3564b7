package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

type setSummaryResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type optionResponse struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type questionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Type    string           `json:"type"`
	Options []optionResponse `json:"options"`
}

type setResponse struct {
	ID         uuid.UUID          `json:"id"`
	Title      string             `json:"title"`
	Category   string             `json:"category"`
	Difficulty string             `json:"difficulty"`
	OwnerID    int64              `json:"owner_id,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	Questions  []questionResponse `json:"questions"`
}

type leaderboardEntryResponse struct {
	Rank     int    `json:"rank"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Score    int    `json:"score"`
}

type resultResponse struct {
	ID         int64     `json:"id"`
	SetID      uuid.UUID `json:"set_id"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	TimedOut   int       `json:"timed_out"`
	Percentage int       `json:"percentage"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func toSetSummaries(sets []entities.TriviaSetSummary) []setSummaryResponse {
	out := make([]setSummaryResponse, 0, len(sets))
	for _, s := range sets {
		out = append(out, setSummaryResponse{
			ID:            s.ID,
			Title:         s.Title,
			Category:      s.Category,
			Difficulty:    s.Difficulty,
			QuestionCount: s.QuestionCount,
			CreatedAt:     s.CreatedAt,
		})
	}
	return out
}

func toSetResponse(set *entities.TriviaSet) setResponse {
	out := setResponse{
		ID:         set.ID,
		Title:      set.Title,
		Category:   set.Category,
		Difficulty: set.Difficulty,
		OwnerID:    set.OwnerID,
		CreatedAt:  set.CreatedAt,
		Questions:  make([]questionResponse, 0, len(set.Questions)),
	}
	for _, q := range set.Questions {
		qr := questionResponse{
			ID:      q.Key,
			Text:    q.Text,
			Type:    string(q.Type),
			Options: make([]optionResponse, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			qr.Options = append(qr.Options, optionResponse{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		out.Questions = append(out.Questions, qr)
	}
	return out
}

func toLeaderboard(entries []entities.LeaderboardEntry) []leaderboardEntryResponse {
	out := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryResponse{
			Rank:     e.Rank,
			UserID:   e.UserID,
			Username: e.Username,
			Score:    e.Score,
		})
	}
	return out
}

func toResults(results []entities.QuizResult) []resultResponse {
	out := make([]resultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, resultResponse{
			ID:         r.ID,
			SetID:      r.SetID,
			Score:      r.Score,
			Total:      r.Total,
			TimedOut:   r.TimedOut,
			Percentage: r.Percentage(),
			StartedAt:  r.StartedAt,
			FinishedAt: r.FinishedAt,
		})
	}
	return out
}

// WebSocket frames.

type Action string

const (
	ActionSelect Action = "select"
	ActionSubmit Action = "submit"
	ActionPing   Action = "ping"
)

// RequestPayload is a frame sent by the client.
type RequestPayload struct {
	Action   Action `json:"action"`
	Question int    `json:"question"`
	Option   int    `json:"option"`
}

type Event string

const (
	EventQuestion Event = "question"
	EventTimer    Event = "timer"
	EventScore    Event = "score"
	EventSelected Event = "selected"
	EventAnswer   Event = "answer"
	EventGameOver Event = "game_over"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

type renderedOption struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type questionView struct {
	Index      int              `json:"index"`
	Total      int              `json:"total"`
	QuestionID string           `json:"question_id"`
	Prompt     string           `json:"prompt"`
	Options    []renderedOption `json:"options"`
}

type answerView struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value,omitempty"`
	Correct    bool   `json:"correct"`
	TimedOut   bool   `json:"timed_out"`
}

type resultView struct {
	Score   int          `json:"score"`
	Total   int          `json:"total"`
	Answers []answerView `json:"answers"`
}

// ResponsePayload is a frame sent by the server. Only the fields of the
// event are set.
type ResponsePayload struct {
	Event    Event         `json:"event"`
	Question *questionView `json:"question,omitempty"`
	Seconds  *int          `json:"seconds,omitempty"`
	Score    *int          `json:"score,omitempty"`
	Option   *int          `json:"option,omitempty"`
	Answer   *answerView   `json:"answer,omitempty"`
	Result   *resultView   `json:"result,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func toQuestionView(v quiz.QuestionView) *questionView {
	out := &questionView{
		Index:      v.Index,
		Total:      v.Total,
		QuestionID: v.QuestionID,
		Prompt:     v.Prompt,
		Options:    make([]renderedOption, 0, len(v.Options)),
	}
	for _, o := range v.Options {
		out.Options = append(out.Options, renderedOption{ID: o.ID, Value: o.Value})
	}
	return out
}

func toAnswerView(a quiz.Answer) answerView {
	return answerView{
		QuestionID: a.QuestionID,
		Value:      a.Value,
		Correct:    a.Correct,
		TimedOut:   a.TimedOut,
	}
}

func toResultView(r quiz.Result) *resultView {
	out := &resultView{Score: r.Score, Total: r.Total, Answers: make([]answerView, 0, len(r.Answers))}
	for _, a := range r.Answers {
		out.Answers = append(out.Answers, toAnswerView(a))
	}
	return out
}
