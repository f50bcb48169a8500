package trivia

import (
	"math/rand"
	"time"

	"github.com/senceapptr/SenceApp-sub004/internal/domain"
)

// SelectRound picks up to size questions for a round. Questions matching both the
// difficulty and the category (or any category for domain.CategoryAll) come first in
// random order; when there are not enough, the round is padded with other questions of
// the same difficulty from any category. The catalog is never modified.
//
// A nil rnd uses a time-seeded source.
func SelectRound(catalog []domain.Question, category domain.Category, difficulty domain.Difficulty, size int, rnd *rand.Rand) []domain.Question {
	if size <= 0 {
		return nil
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	primary := make([]domain.Question, 0, len(catalog))
	for _, q := range catalog {
		if q.Difficulty != difficulty {
			continue
		}
		if category == domain.CategoryAll || q.Category == category {
			primary = append(primary, q)
		}
	}

	selected := make([]domain.Question, 0, size)
	taken := make(map[int]struct{}, size)
	for _, i := range rnd.Perm(len(primary)) {
		if len(selected) == size {
			break
		}
		selected = append(selected, primary[i])
		taken[primary[i].ID] = struct{}{}
	}
	if len(selected) == size {
		return selected
	}

	fallback := make([]domain.Question, 0, len(catalog))
	for _, q := range catalog {
		if q.Difficulty != difficulty {
			continue
		}
		if _, ok := taken[q.ID]; ok {
			continue
		}
		fallback = append(fallback, q)
	}
	for _, i := range rnd.Perm(len(fallback)) {
		if len(selected) == size {
			break
		}
		selected = append(selected, fallback[i])
	}
	return selected
}
