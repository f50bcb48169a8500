package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/senceapptr/SenceApp-sub004/internal/catalog"
	"github.com/senceapptr/SenceApp-sub004/internal/domain"
)

// CatalogLoader loads the trivia_questions table.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) ([]domain.Question, error) {
	query, args, err := sq.Select("id", "prompt", "options", "correct_option", "category", "difficulty").
		From("trivia_questions").
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build catalog query: %w", err)
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q          domain.Question
			category   string
			difficulty string
		)
		if err := rows.Scan(&q.ID, &q.Prompt, &q.Options, &q.CorrectOptionIndex, &category, &difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Category = domain.Category(category)
		q.Difficulty = domain.Difficulty(difficulty)
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
