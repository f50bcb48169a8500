package memory

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/senceapptr/SenceApp-sub004/internal/catalog"
	"github.com/senceapptr/SenceApp-sub004/internal/domain"
)

// StaticCatalogLoader serves a fixed question slice (useful for tests/demos).
type StaticCatalogLoader struct {
	questions []domain.Question
}

func NewStaticCatalogLoader(questions []domain.Question) *StaticCatalogLoader {
	return &StaticCatalogLoader{questions: questions}
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) ([]domain.Question, error) {
	if len(l.questions) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	return l.questions, nil
}

// EmbeddedCatalogLoader serves the question set compiled into the binary.
type EmbeddedCatalogLoader struct{}

func NewEmbeddedCatalogLoader() EmbeddedCatalogLoader {
	return EmbeddedCatalogLoader{}
}

func (EmbeddedCatalogLoader) LoadCatalog(_ context.Context) ([]domain.Question, error) {
	return catalog.Embedded()
}

// FileCatalogLoader reads a YAML (or JSON) list of questions from disk.
type FileCatalogLoader struct {
	path string
}

func NewFileCatalogLoader(path string) *FileCatalogLoader {
	return &FileCatalogLoader{path: path}
}

func (l *FileCatalogLoader) LoadCatalog(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var questions []domain.Question
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	if err := catalog.Validate(questions); err != nil {
		return nil, err
	}
	return questions, nil
}
