package trivia_test

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/senceapptr/SenceApp-sub004/internal/domain"
	"github.com/senceapptr/SenceApp-sub004/internal/logger"
	"github.com/senceapptr/SenceApp-sub004/internal/trivia"
	"github.com/stretchr/testify/require"
)

// manualScheduler is a virtual clock. Callbacks only run inside Advance, in deadline
// order, ties broken by the order they were scheduled.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	s       *manualScheduler
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *manualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) trivia.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now.Add(d), seq: s.seq, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d, firing every callback that falls due.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()

		next.fn()
	}
}

func (s *manualScheduler) nextDueLocked(target time.Time) *manualTimer {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if !s.timers[i].at.Equal(s.timers[j].at) {
			return s.timers[i].at.Before(s.timers[j].at)
		}
		return s.timers[i].seq < s.timers[j].seq
	})
	if len(s.timers) == 0 || s.timers[0].at.After(target) {
		return nil
	}
	return s.timers[0]
}

// Pending counts armed callbacks.
func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type countingFeedback struct{ calls int }

func (f *countingFeedback) Vibrate() { f.calls++ }

type recordingHost struct {
	abandoned int
	returned  int
}

func (h *recordingHost) RoundAbandoned() { h.abandoned++ }
func (h *recordingHost) ReturnToCaller() { h.returned++ }

// testCatalog has 13 easy and 13 medium questions spread over three categories
// (sports 6, tech 4, economy 3 per difficulty) and only 4 hard tech questions.
func testCatalog() []domain.Question {
	counts := []struct {
		category domain.Category
		n        int
	}{{"sports", 6}, {"tech", 4}, {"economy", 3}}

	var out []domain.Question
	id := 1
	add := func(c domain.Category, d domain.Difficulty, i int) {
		out = append(out, domain.Question{
			ID:                 id,
			Prompt:             fmt.Sprintf("%s %s #%d", c, d, i),
			Options:            []string{"Yes", "No"},
			CorrectOptionIndex: id % 2,
			Category:           c,
			Difficulty:         d,
		})
		id++
	}
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium} {
		for _, c := range counts {
			for i := 0; i < c.n; i++ {
				add(c.category, d, i)
			}
		}
	}
	for i := 0; i < 4; i++ {
		add("tech", domain.DifficultyHard, i)
	}
	return out
}

func newTestEngine(t *testing.T, opts ...trivia.Option) (*trivia.Engine, *manualScheduler) {
	t.Helper()
	sched := newManualScheduler()
	base := []trivia.Option{
		trivia.WithScheduler(sched),
		trivia.WithRand(rand.New(rand.NewSource(7))),
		trivia.WithLogger(logger.Discard()),
	}
	e := trivia.NewEngine(testCatalog(), append(base, opts...)...)
	t.Cleanup(e.Close)
	return e, sched
}

// startPlaying drives the engine from Intro through the countdown into Playing.
func startPlaying(t *testing.T, e *trivia.Engine, s *manualScheduler, c domain.Category, d domain.Difficulty) {
	t.Helper()
	require.NoError(t, e.Start())
	require.NoError(t, e.SelectCategory(c))
	require.NoError(t, e.SelectDifficulty(d))
	s.Advance(3 * time.Second)
	require.Equal(t, domain.PhasePlaying, e.Phase())
}

func correctOption(t *testing.T, e *trivia.Engine) int {
	t.Helper()
	snap := e.Snapshot()
	questions := e.RoundQuestions()
	require.Less(t, snap.CurrentIndex, len(questions))
	return questions[snap.CurrentIndex].CorrectOptionIndex
}

func wrongOption(t *testing.T, e *trivia.Engine) int {
	return 1 - correctOption(t, e)
}

func countTrue(answers []bool) int {
	n := 0
	for _, a := range answers {
		if a {
			n++
		}
	}
	return n
}
