package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/infra/postgres"
)

var ErrTriviaSetNotFound = errors.New("trivia set not found")

type transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx postgres.DBTX) error) error
}

// TriviaSetRepository stores trivia sets with their questions and options.
type TriviaSetRepository struct {
	db postgres.DBTX
	tx transactor
}

// NewTriviaSetRepository creates a new TriviaSetRepository.
func NewTriviaSetRepository(db postgres.DBTX, tx transactor) *TriviaSetRepository {
	return &TriviaSetRepository{db: db, tx: tx}
}

// Create inserts the set, its questions and options in one transaction.
func (r *TriviaSetRepository) Create(ctx context.Context, set *entities.TriviaSet) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		return insertSet(ctx, tx, set)
	})
}

// Replace updates the set with the same ID, or inserts it, and swaps its
// questions and options. Results recorded for the set are kept.
func (r *TriviaSetRepository) Replace(ctx context.Context, set *entities.TriviaSet) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		query := `
			INSERT INTO trivia_sets (id, title, category, difficulty, owner_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				category = EXCLUDED.category,
				difficulty = EXCLUDED.difficulty
		`
		_, err := tx.Exec(ctx, query,
			set.ID,
			set.Title,
			set.Category,
			set.Difficulty,
			nullableOwner(set.OwnerID),
			set.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert trivia set: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE set_id = $1`, set.ID); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		return insertQuestions(ctx, tx, set)
	})
}

func insertSet(ctx context.Context, tx postgres.DBTX, set *entities.TriviaSet) error {
	query := `
		INSERT INTO trivia_sets (id, title, category, difficulty, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.Exec(ctx, query,
		set.ID,
		set.Title,
		set.Category,
		set.Difficulty,
		nullableOwner(set.OwnerID),
		set.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trivia set: %w", err)
	}

	return insertQuestions(ctx, tx, set)
}

func insertQuestions(ctx context.Context, tx postgres.DBTX, set *entities.TriviaSet) error {
	for i := range set.Questions {
		q := &set.Questions[i]
		q.Position = i

		err := tx.QueryRow(ctx, `
			INSERT INTO questions (set_id, question_key, text, type, position)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, set.ID, q.Key, q.Text, string(q.Type), q.Position).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", i, err)
		}

		for j := range q.Options {
			o := &q.Options[j]
			err := tx.QueryRow(ctx, `
				INSERT INTO options (question_id, text, is_correct, position)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`, q.ID, o.Text, o.IsCorrect, j).Scan(&o.ID)
			if err != nil {
				return fmt.Errorf("insert option %d of question %d: %w", j, i, err)
			}
		}
	}

	return nil
}

// List returns summaries of all sets, newest first.
func (r *TriviaSetRepository) List(ctx context.Context) ([]entities.TriviaSetSummary, error) {
	query := `
		SELECT s.id, s.title, s.category, s.difficulty, s.created_at, COUNT(q.id)
		FROM trivia_sets s
		LEFT JOIN questions q ON q.set_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trivia sets: %w", err)
	}
	defer rows.Close()

	var out []entities.TriviaSetSummary
	for rows.Next() {
		var s entities.TriviaSetSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Category, &s.Difficulty, &s.CreatedAt, &s.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan trivia set: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trivia sets: %w", err)
	}

	return out, nil
}

// GetByID loads a set with its questions and options in display order.
func (r *TriviaSetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TriviaSet, error) {
	var (
		set   entities.TriviaSet
		owner *int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, title, category, difficulty, owner_id, created_at
		FROM trivia_sets
		WHERE id = $1
	`, id).Scan(&set.ID, &set.Title, &set.Category, &set.Difficulty, &owner, &set.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTriviaSetNotFound
		}
		return nil, fmt.Errorf("get trivia set: %w", err)
	}
	if owner != nil {
		set.OwnerID = *owner
	}

	rows, err := r.db.Query(ctx, `
		SELECT q.id, q.question_key, q.text, q.type, q.position,
		       o.id, o.text, o.is_correct
		FROM questions q
		LEFT JOIN options o ON o.question_id = q.id
		WHERE q.set_id = $1
		ORDER BY q.position, o.position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	index := make(map[int64]int)
	for rows.Next() {
		var (
			q        entities.Question
			qType    string
			optID    *int64
			optText  *string
			optRight *bool
		)
		if err := rows.Scan(&q.ID, &q.Key, &q.Text, &qType, &q.Position, &optID, &optText, &optRight); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Type = entities.QuestionType(qType)

		i, ok := index[q.ID]
		if !ok {
			set.Questions = append(set.Questions, q)
			i = len(set.Questions) - 1
			index[q.ID] = i
		}

		if optID != nil {
			set.Questions[i].Options = append(set.Questions[i].Options, entities.Option{
				ID:        *optID,
				Text:      deref(optText),
				IsCorrect: optRight != nil && *optRight,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return &set, nil
}

// Delete removes a set. Questions and options are removed by cascade.
func (r *TriviaSetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trivia_sets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trivia set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTriviaSetNotFound
	}
	return nil
}

func nullableOwner(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
