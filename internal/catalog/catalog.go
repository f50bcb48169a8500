// Package catalog holds the built-in trivia question set and the rules every
// question source must satisfy.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/senceapptr/SenceApp-sub004/internal/domain"
)

//go:embed questions.json
var embeddedQuestions []byte

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Embedded decodes and validates the built-in question set.
func Embedded() ([]domain.Question, error) {
	var questions []domain.Question
	if err := json.Unmarshal(embeddedQuestions, &questions); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	if err := Validate(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Validate checks every question: a positive unique ID, a prompt, exactly two
// non-empty options, a correct index of 0 or 1, a concrete category and a known
// difficulty.
func Validate(questions []domain.Question) error {
	v := validatorInstance()
	seen := make(map[int]struct{}, len(questions))
	for i, q := range questions {
		if err := v.Struct(q); err != nil {
			return fmt.Errorf("%w: entry %d (id %d): %v", domain.ErrInvalidQuestion, i, q.ID, err)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", domain.ErrInvalidQuestion, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

// Categories returns the distinct categories in questions, sorted.
func Categories(questions []domain.Question) []domain.Category {
	set := make(map[domain.Category]struct{})
	for _, q := range questions {
		set[q.Category] = struct{}{}
	}
	out := make([]domain.Category, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
