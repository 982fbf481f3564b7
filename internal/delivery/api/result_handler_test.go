package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
)

func TestResultHandler_History(t *testing.T) {
	setID := uuid.New()
	results := &fakeResults{history: []entities.QuizResult{
		{ID: 1, UserID: 7, SetID: setID, Score: 3, Total: 4, TimedOut: 1},
		{ID: 2, UserID: 7, SetID: setID, Score: 4, Total: 4},
		{ID: 3, UserID: 8, SetID: setID, Score: 1, Total: 4},
	}}
	router := NewRouter(newTestHandlers(newFakeTrivia(), results), nil, zap.NewNop())

	rec, env := do(t, router, http.MethodGet, "/api/v1/users/7/results?limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Results []resultResponse `json:"results"`
	}
	if err := json.Unmarshal(env.Data, &body); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(body.Results) != 2 {
		t.Fatalf("expected 2 results, got %+v", body.Results)
	}
	if body.Results[0].Percentage != 75 || body.Results[0].TimedOut != 1 {
		t.Fatalf("unexpected first result %+v", body.Results[0])
	}
}

func TestResultHandler_HistoryBadRequest(t *testing.T) {
	router := NewRouter(newTestHandlers(newFakeTrivia(), &fakeResults{}), nil, zap.NewNop())

	tests := []struct {
		name string
		path string
		code ErrCode
	}{
		{name: "non numeric user", path: "/api/v1/users/abc/results", code: ErrInvalidID},
		{name: "zero user", path: "/api/v1/users/0/results", code: ErrInvalidID},
		{name: "limit too large", path: "/api/v1/users/7/results?limit=500", code: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, http.MethodGet, tt.path, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Fatalf("expected %s, got %+v", tt.code, env.Error)
			}
		})
	}
}
