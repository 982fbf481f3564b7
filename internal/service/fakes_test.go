package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/infra/postgres/repository"
)

type fakeSetRepo struct {
	mu   sync.Mutex
	sets map[uuid.UUID]*entities.TriviaSet
}

func newFakeSetRepo() *fakeSetRepo {
	return &fakeSetRepo{sets: make(map[uuid.UUID]*entities.TriviaSet)}
}

func (r *fakeSetRepo) Create(_ context.Context, set *entities.TriviaSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.ID] = set
	return nil
}

func (r *fakeSetRepo) Replace(ctx context.Context, set *entities.TriviaSet) error {
	return r.Create(ctx, set)
}

func (r *fakeSetRepo) List(_ context.Context) ([]entities.TriviaSetSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.TriviaSetSummary
	for _, s := range r.sets {
		out = append(out, entities.TriviaSetSummary{ID: s.ID, Title: s.Title, QuestionCount: len(s.Questions)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeSetRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.TriviaSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sets[id]
	if !ok {
		return nil, repository.ErrTriviaSetNotFound
	}
	return s, nil
}

func (r *fakeSetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sets[id]; !ok {
		return repository.ErrTriviaSetNotFound
	}
	delete(r.sets, id)
	return nil
}

type fakeResultRepo struct {
	saved []*entities.QuizResult
	best  []entities.LeaderboardEntry
}

func (r *fakeResultRepo) Save(_ context.Context, res *entities.QuizResult) error {
	res.ID = int64(len(r.saved) + 1)
	r.saved = append(r.saved, res)
	return nil
}

func (r *fakeResultRepo) ListByUser(_ context.Context, userID int64, limit int) ([]entities.QuizResult, error) {
	var out []entities.QuizResult
	for _, res := range r.saved {
		if res.UserID == userID && len(out) < limit {
			out = append(out, *res)
		}
	}
	return out, nil
}

// BestScores returns best when set, otherwise the best saved score per user.
func (r *fakeResultRepo) BestScores(_ context.Context, _ uuid.UUID, limit int) ([]entities.LeaderboardEntry, error) {
	out := r.best
	if out == nil {
		best := make(map[int64]*entities.QuizResult)
		for _, res := range r.saved {
			if prev, ok := best[res.UserID]; !ok || res.Score > prev.Score {
				best[res.UserID] = res
			}
		}
		for _, res := range best {
			out = append(out, entities.LeaderboardEntry{UserID: res.UserID, Username: res.Username, Score: res.Score})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Score != out[j].Score {
				return out[i].Score > out[j].Score
			}
			return out[i].UserID < out[j].UserID
		})
		for i := range out {
			out[i].Rank = i + 1
		}
	}
	if limit > 0 && len(out) > limit {
		return out[:limit], nil
	}
	return out, nil
}

type fakeLeaderboard struct {
	scores   map[uuid.UUID]map[int64]int
	complete map[uuid.UUID]bool
	cleared  []uuid.UUID
	seeded   int
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{
		scores:   make(map[uuid.UUID]map[int64]int),
		complete: make(map[uuid.UUID]bool),
	}
}

func (l *fakeLeaderboard) Record(_ context.Context, setID uuid.UUID, userID int64, _ string, score int) error {
	m := l.scores[setID]
	if m == nil {
		m = make(map[int64]int)
		l.scores[setID] = m
	}
	if prev, ok := m[userID]; !ok || score > prev {
		m[userID] = score
	}
	return nil
}

func (l *fakeLeaderboard) Top(_ context.Context, setID uuid.UUID, n int) ([]entities.LeaderboardEntry, error) {
	var out []entities.LeaderboardEntry
	for uid, score := range l.scores[setID] {
		out = append(out, entities.LeaderboardEntry{UserID: uid, Score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (l *fakeLeaderboard) Seed(ctx context.Context, setID uuid.UUID, entries []entities.LeaderboardEntry) error {
	l.seeded++
	for _, e := range entries {
		_ = l.Record(ctx, setID, e.UserID, e.Username, e.Score)
	}
	l.complete[setID] = true
	return nil
}

func (l *fakeLeaderboard) Seeded(_ context.Context, setID uuid.UUID) (bool, error) {
	return l.complete[setID], nil
}

// flush simulates a cache restart.
func (l *fakeLeaderboard) flush() {
	l.scores = make(map[uuid.UUID]map[int64]int)
	l.complete = make(map[uuid.UUID]bool)
}

func (l *fakeLeaderboard) Clear(_ context.Context, setID uuid.UUID) error {
	delete(l.scores, setID)
	delete(l.complete, setID)
	l.cleared = append(l.cleared, setID)
	return nil
}

func validInput() SetInput {
	return SetInput{
		Title:      "Geography",
		Category:   "general",
		Difficulty: "easy",
		Questions: []QuestionInput{
			{
				ID:   "capital",
				Text: "Capital of France?",
				Options: []OptionInput{
					{Text: "Paris", IsCorrect: true},
					{Text: "Rome"},
				},
			},
			{
				Text: "Largest ocean?",
				Options: []OptionInput{
					{Text: "Atlantic"},
					{Text: "Pacific", IsCorrect: true},
				},
			},
		},
	}
}
