package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/senceapptr/SenceApp-sub004/internal/domain"
)

func TestCatalogRepositoryCaches(t *testing.T) {
	loader := &countingLoader{CatalogLoader: NewStaticCatalogLoader(sampleCatalog())}
	repo := NewCatalogRepository(loader, time.Minute)

	if _, err := repo.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	questions, err := repo.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("get catalog 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestCatalogRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{CatalogLoader: NewStaticCatalogLoader(sampleCatalog())}
	repo := NewCatalogRepository(loader, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetCatalog(context.Background())
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetCatalog(context.Background())

	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestCatalogRepositoryDoesNotCacheErrors(t *testing.T) {
	loader := &countingLoader{CatalogLoader: NewStaticCatalogLoader(nil)}
	repo := NewCatalogRepository(loader, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := repo.GetCatalog(context.Background()); !errors.Is(err, domain.ErrCatalogEmpty) {
			t.Fatalf("expected empty catalog error, got %v", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("expected loader retried, got %d calls", loader.calls)
	}
}

func TestEmbeddedCatalogLoader(t *testing.T) {
	questions, err := NewEmbeddedCatalogLoader().LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if len(questions) < 30 {
		t.Fatalf("expected embedded catalog, got %d questions", len(questions))
	}
}

func TestFileCatalogLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yaml")
	raw := `
- id: 1
  prompt: Is the sky blue?
  options: ["Yes", "No"]
  correctOptionIndex: 0
  category: science
  difficulty: easy
- id: 2
  prompt: Is water dry?
  options: ["Yes", "No"]
  correctOptionIndex: 1
  category: science
  difficulty: easy
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	questions, err := NewFileCatalogLoader(path).LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(questions) != 2 || questions[1].CorrectOptionIndex != 1 {
		t.Fatalf("unexpected questions: %+v", questions)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte(`- {id: 1, prompt: x, options: [a, b, c], category: science, difficulty: easy}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileCatalogLoader(bad).LoadCatalog(context.Background()); !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected invalid question error, got %v", err)
	}
}

type countingLoader struct {
	CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx)
}

func sampleCatalog() []domain.Question {
	return []domain.Question{
		{ID: 1, Prompt: "What is 2 + 2?", Options: []string{"3", "4"}, CorrectOptionIndex: 1, Category: "science", Difficulty: domain.DifficultyEasy},
		{ID: 2, Prompt: "Is Go compiled?", Options: []string{"Yes", "No"}, CorrectOptionIndex: 0, Category: "technology", Difficulty: domain.DifficultyEasy},
	}
}

func TestCatalogRepositoryFirstLoadReturns(t *testing.T) {
	repo := NewCatalogRepository(NewStaticCatalogLoader(sampleCatalog()), time.Minute)

	done := make(chan error, 1)
	go func() {
		_, err := repo.GetCatalog(context.Background())
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("get catalog: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("first load with a positive ttl did not return")
	}
}
