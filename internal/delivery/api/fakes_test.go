package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
	"github.com/aliskhannn/trivia-quiz-bot/internal/service"
)

type fakeTrivia struct {
	mu   sync.Mutex
	sets map[uuid.UUID]*entities.TriviaSet
}

func newFakeTrivia(sets ...*entities.TriviaSet) *fakeTrivia {
	f := &fakeTrivia{sets: make(map[uuid.UUID]*entities.TriviaSet)}
	for _, s := range sets {
		f.sets[s.ID] = s
	}
	return f
}

func (f *fakeTrivia) List(context.Context) ([]entities.TriviaSetSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.TriviaSetSummary
	for _, s := range f.sets {
		out = append(out, entities.TriviaSetSummary{ID: s.ID, Title: s.Title, QuestionCount: len(s.Questions)})
	}
	return out, nil
}

func (f *fakeTrivia) Get(_ context.Context, id uuid.UUID) (*entities.TriviaSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sets[id]
	if !ok {
		return nil, service.ErrSetNotFound
	}
	return s, nil
}

func (f *fakeTrivia) Create(_ context.Context, in service.SetInput, ownerID int64) (*entities.TriviaSet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	set := entities.NewTriviaSet(in.Title, in.Category, in.Difficulty, ownerID)
	for i, q := range in.Questions {
		eq := entities.Question{Key: q.ID, Text: q.Text, Type: entities.QuestionMultipleChoice, Position: i}
		for _, o := range q.Options {
			eq.Options = append(eq.Options, entities.Option{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		set.Questions = append(set.Questions, eq)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets[set.ID] = set
	return set, nil
}

func (f *fakeTrivia) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sets[id]; !ok {
		return service.ErrSetNotFound
	}
	delete(f.sets, id)
	return nil
}

func (f *fakeTrivia) Playable(ctx context.Context, id uuid.UUID) (*entities.TriviaSet, []quiz.Question, quiz.AnswerKey, error) {
	set, err := f.Get(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	questions, key, err := service.BuildPlayable(set)
	return set, questions, key, err
}

type fakeResults struct {
	recorded chan quiz.Result
	top      []entities.LeaderboardEntry
	history  []entities.QuizResult
}

func (f *fakeResults) Record(_ context.Context, user *entities.User, setID uuid.UUID, _ time.Time, res quiz.Result) (*entities.QuizResult, error) {
	if f.recorded != nil {
		f.recorded <- res
	}
	return entities.NewQuizResult(user.ID, user.Username, setID, res.Score, res.Total, time.Now()), nil
}

func (f *fakeResults) Top(context.Context, uuid.UUID, int) ([]entities.LeaderboardEntry, error) {
	return f.top, nil
}

func (f *fakeResults) History(_ context.Context, userID int64, limit int) ([]entities.QuizResult, error) {
	var out []entities.QuizResult
	for _, r := range f.history {
		if r.UserID == userID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUsers struct{}

func (fakeUsers) EnsureUser(_ context.Context, userID, chatID int64, username string) (*entities.User, error) {
	return entities.NewUser(userID, chatID, username), nil
}

// idleScheduler never fires, so only explicit submissions advance.
type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) quiz.Cancel { return func() {} }

func testSet() *entities.TriviaSet {
	return &entities.TriviaSet{
		ID:         uuid.New(),
		Title:      "Basics",
		Category:   "general",
		Difficulty: "easy",
		Questions: []entities.Question{
			{Key: "q1", Text: "2+2?", Type: entities.QuestionMultipleChoice, Options: []entities.Option{
				{Text: "3"}, {Text: "4", IsCorrect: true}, {Text: "5"},
			}},
			{Key: "q2", Text: "Capital of France?", Type: entities.QuestionMultipleChoice, Options: []entities.Option{
				{Text: "Paris", IsCorrect: true}, {Text: "Rome"},
			}},
		},
	}
}

func newTestHandlers(trivia *fakeTrivia, results *fakeResults) *Handlers {
	play := NewPlayHandler(trivia, results, fakeUsers{}, 10, nil, zap.NewNop())
	play.scheduler = idleScheduler{}
	return &Handlers{
		Sets:    NewSetHandler(trivia, results, zap.NewNop()),
		Results: NewResultHandler(results, zap.NewNop()),
		Play:    play,
	}
}
