package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/senceapptr/SenceApp-sub004/internal/catalog"
	"github.com/senceapptr/SenceApp-sub004/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS trivia_questions (
    id             INTEGER PRIMARY KEY,
    prompt         TEXT    NOT NULL,
    options        TEXT    NOT NULL,
    correct_option INTEGER NOT NULL CHECK (correct_option IN (0, 1)),
    category       TEXT    NOT NULL,
    difficulty     TEXT    NOT NULL CHECK (difficulty IN ('easy', 'medium', 'hard'))
);`

// Open opens a SQLite database at path and makes sure the catalog table exists.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create trivia_questions: %w", err)
	}
	return db, nil
}

// CatalogLoader loads trivia_questions from SQLite. Options are stored as a JSON array.
type CatalogLoader struct {
	db *sql.DB
}

func NewCatalogLoader(db *sql.DB) *CatalogLoader {
	return &CatalogLoader{db: db}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) ([]domain.Question, error) {
	rows, err := sq.Select("id", "prompt", "options", "correct_option", "category", "difficulty").
		From("trivia_questions").
		OrderBy("id").
		RunWith(l.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q       domain.Question
			options string
		)
		if err := rows.Scan(&q.ID, &q.Prompt, &options, &q.CorrectOptionIndex, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("%w: id %d options: %v", domain.ErrInvalidQuestion, q.ID, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	if err := catalog.Validate(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Insert stores questions, replacing rows with the same id.
func Insert(ctx context.Context, db *sql.DB, questions []domain.Question) error {
	if len(questions) == 0 {
		return nil
	}
	insert := sq.Insert("trivia_questions").
		Options("OR REPLACE").
		Columns("id", "prompt", "options", "correct_option", "category", "difficulty")
	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		insert = insert.Values(q.ID, q.Prompt, string(options), q.CorrectOptionIndex, string(q.Category), string(q.Difficulty))
	}
	if _, err := insert.RunWith(db).ExecContext(ctx); err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}
	return nil
}
