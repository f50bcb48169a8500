package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/senceapptr/SenceApp-sub004/internal/catalog"
	"github.com/senceapptr/SenceApp-sub004/internal/domain"
	"github.com/senceapptr/SenceApp-sub004/internal/logger"
	"github.com/senceapptr/SenceApp-sub004/internal/trivia"
)

// SessionRepository abstracts how trivia sessions are tracked (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// CatalogRepository serves the question catalog (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context) ([]domain.Question, error)
}

// Options tune the engines the service builds.
type Options struct {
	Settings  trivia.Settings
	Scheduler trivia.Scheduler
	// Seed makes question selection reproducible when non-zero.
	Seed int64
}

// TriviaService hands out one trivia engine per player session.
type TriviaService struct {
	sessions SessionRepository
	catalogs CatalogRepository
	opts     Options
}

func NewTriviaService(store SessionRepository, catalogs CatalogRepository, opts Options) *TriviaService {
	return &TriviaService{sessions: store, catalogs: catalogs, opts: opts}
}

// Session is a single player's engine plus bookkeeping.
type Session struct {
	ID        string
	CreatedAt time.Time
	Engine    *trivia.Engine
}

// NewSession wraps an engine. Exported for infrastructure layers and tests.
func NewSession(id string, engine *trivia.Engine) *Session {
	return &Session{ID: id, CreatedAt: time.Now(), Engine: engine}
}

// Open loads the catalog and registers a fresh engine under sessionID. The host
// receives the engine's abandon/return signals; it may be nil.
func (s *TriviaService) Open(ctx context.Context, sessionID string, host trivia.Host) (*Session, error) {
	log := logger.FromContext(ctx).WithField("session_id", sessionID)

	questions, err := s.catalogs.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrCatalogEmpty
	}

	opts := []trivia.Option{
		trivia.WithSettings(s.opts.Settings),
		trivia.WithLogger(log),
	}
	if s.opts.Scheduler != nil {
		opts = append(opts, trivia.WithScheduler(s.opts.Scheduler))
	}
	if s.opts.Seed != 0 {
		opts = append(opts, trivia.WithRand(rand.New(rand.NewSource(s.opts.Seed))))
	}
	if host != nil {
		opts = append(opts, trivia.WithHost(host))
	}

	session := NewSession(sessionID, trivia.NewEngine(questions, opts...))
	s.sessions.Put(session)
	log.WithField("questions", len(questions)).Debug("trivia session opened")
	return session, nil
}

// Get returns an open session.
func (s *TriviaService) Get(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Touch marks a session as active. Stores with expiring liveness markers refresh
// them on lookup.
func (s *TriviaService) Touch(sessionID string) error {
	_, err := s.Get(sessionID)
	return err
}

// Close disarms the session's engine and forgets it. Closing an unknown session is a no-op.
func (s *TriviaService) Close(ctx context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Engine.Close()
	s.sessions.Delete(sessionID)
	logger.FromContext(ctx).WithField("session_id", sessionID).Debug("trivia session closed")
}

// Categories lists the categories players can pick from.
func (s *TriviaService) Categories(ctx context.Context) ([]domain.Category, error) {
	questions, err := s.catalogs.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog.Categories(questions), nil
}
