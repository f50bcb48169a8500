package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/senceapptr/SenceApp-sub004/internal/domain"
)

type questionRow struct {
	bun.BaseModel `bun:"table:trivia_questions"`

	ID            int      `bun:"id,pk"`
	Prompt        string   `bun:"prompt,notnull"`
	Options       []string `bun:"options,array"`
	CorrectOption int      `bun:"correct_option"`
	Category      string   `bun:"category,notnull"`
	Difficulty    string   `bun:"difficulty,notnull"`
}

// SeedCatalog upserts questions into trivia_questions.
func SeedCatalog(ctx context.Context, db *bun.DB, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, domain.ErrCatalogEmpty
	}
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, questionRow{
			ID:            q.ID,
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectOption: q.CorrectOptionIndex,
			Category:      string(q.Category),
			Difficulty:    string(q.Difficulty),
		})
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("prompt = EXCLUDED.prompt").
		Set("options = EXCLUDED.options").
		Set("correct_option = EXCLUDED.correct_option").
		Set("category = EXCLUDED.category").
		Set("difficulty = EXCLUDED.difficulty").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	return len(rows), nil
}
