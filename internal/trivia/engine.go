package trivia

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/senceapptr/SenceApp-sub004/internal/domain"
	"github.com/senceapptr/SenceApp-sub004/internal/logger"
	"github.com/sirupsen/logrus"
)

// Host receives the engine's outward signals. Neither carries a payload.
type Host interface {
	// RoundAbandoned is called after the player confirmed leaving a round in progress.
	RoundAbandoned()
	// ReturnToCaller is called when the player leaves from Intro or Results.
	ReturnToCaller()
}

// HostFuncs adapts plain functions to Host. Nil funcs are skipped.
type HostFuncs struct {
	OnAbandoned func()
	OnReturn    func()
}

func (h HostFuncs) RoundAbandoned() {
	if h.OnAbandoned != nil {
		h.OnAbandoned()
	}
}

func (h HostFuncs) ReturnToCaller() {
	if h.OnReturn != nil {
		h.OnReturn()
	}
}

// Feedback is a fire-and-forget signal emitted for every accepted answer.
type Feedback interface {
	Vibrate()
}

// Option configures an Engine.
type Option func(*Engine)

func WithSettings(s Settings) Option {
	return func(e *Engine) { e.settings = s }
}

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithRand makes question selection reproducible.
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) { e.rnd = rnd }
}

func WithHost(h Host) Option {
	return func(e *Engine) { e.host = h }
}

func WithFeedback(f Feedback) Option {
	return func(e *Engine) { e.feedback = f }
}

func WithLogger(l *logrus.Entry) Option {
	return func(e *Engine) { e.log = l }
}

// Engine runs one player's trivia flow: category and difficulty pick, pre-round
// countdown, the timed round and the results screen.
//
// All state lives behind mu. Timer callbacks carry the generation they were armed in
// and are ignored once a phase transition has bumped it, so a stale tick can never
// touch a later round.
type Engine struct {
	mu         sync.Mutex
	settings   Settings
	catalog    []domain.Question
	categories []domain.Category
	sched      Scheduler
	rnd        *rand.Rand
	host       Host
	feedback   Feedback
	log        *logrus.Entry

	phase       domain.Phase
	config      domain.RoundConfig
	round       *roundState
	exitPending bool
	closed      bool

	// at most one periodic and one one-shot handle are live at a time
	ticker Timer
	reveal Timer
	gen    uint64

	subscribers map[chan domain.Snapshot]struct{}
}

type roundState struct {
	questions        []domain.Question
	index            int
	secondsRemaining int
	countdown        int
	selected         *int
	revealing        bool
	answers          []bool
	score            int
	result           *domain.Result

	// anchor of the running periodic timer and how many ticks it has fired
	phaseStart time.Time
	ticks      int
}

// NewEngine builds an engine over catalog. The catalog is copied and never changes
// afterwards.
func NewEngine(catalog []domain.Question, opts ...Option) *Engine {
	e := &Engine{
		settings:    DefaultSettings(),
		catalog:     append([]domain.Question(nil), catalog...),
		phase:       domain.PhaseIntro,
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.settings = e.settings.normalized()
	if e.sched == nil {
		e.sched = RealScheduler()
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.log == nil {
		e.log = logger.Default()
	}
	e.categories = distinctCategories(e.catalog)
	return e
}

func distinctCategories(questions []domain.Question) []domain.Category {
	seen := make(map[domain.Category]struct{})
	out := make([]domain.Category, 0)
	for _, q := range questions {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Categories lists the categories a player can pick, not including domain.CategoryAll.
func (e *Engine) Categories() []domain.Category {
	return append([]domain.Category(nil), e.categories...)
}

// Phase returns the current phase.
func (e *Engine) Phase() domain.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// RoundQuestions returns the questions drawn for the current round, or nil outside a round.
func (e *Engine) RoundQuestions() []domain.Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return nil
	}
	return append([]domain.Question(nil), e.round.questions...)
}

// Start moves from Intro to CategoryPick.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requirePhaseLocked(domain.PhaseIntro); err != nil {
		return err
	}
	e.transitionLocked(domain.PhaseCategoryPick)
	e.broadcastLocked()
	return nil
}

// SelectCategory records the category and moves to DifficultyPick.
func (e *Engine) SelectCategory(category domain.Category) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requirePhaseLocked(domain.PhaseCategoryPick); err != nil {
		return err
	}
	if category != domain.CategoryAll && !e.hasCategory(category) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	e.config = domain.RoundConfig{Category: category}
	e.transitionLocked(domain.PhaseDifficultyPick)
	e.broadcastLocked()
	return nil
}

// SelectDifficulty draws the round's questions, resets the score and starts the
// pre-round countdown.
func (e *Engine) SelectDifficulty(difficulty domain.Difficulty) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requirePhaseLocked(domain.PhaseDifficultyPick); err != nil {
		return err
	}
	if !difficulty.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownDifficulty, difficulty)
	}
	e.config.Difficulty = difficulty

	questions := SelectRound(e.catalog, e.config.Category, difficulty, e.settings.RoundSize, e.rnd)
	if len(questions) < e.settings.RoundSize {
		e.log.WithFields(logrus.Fields{
			"category":   e.config.Category,
			"difficulty": difficulty,
			"questions":  len(questions),
		}).Warn("catalog too small, playing a short round")
	}
	e.round = &roundState{
		questions: questions,
		answers:   make([]bool, 0, len(questions)),
	}
	e.transitionLocked(domain.PhaseCountdown)
	e.broadcastLocked()
	return nil
}

// Answer selects an option for the current question. It reports whether the selection
// was accepted; selections outside the answer window change nothing.
func (e *Engine) Answer(option int) bool {
	e.mu.Lock()
	accepted := e.answerLocked(option)
	feedback := e.feedback
	e.mu.Unlock()

	if accepted && feedback != nil {
		feedback.Vibrate()
	}
	return accepted
}

func (e *Engine) answerLocked(option int) bool {
	r := e.round
	if e.closed || e.phase != domain.PhasePlaying || e.exitPending || r == nil {
		e.log.WithField("phase", e.phase).Debug("answer ignored outside play")
		return false
	}
	if r.selected != nil || r.revealing || r.index >= len(r.questions) {
		e.log.WithField("index", r.index).Debug("answer ignored, question locked")
		return false
	}
	if option < 0 || option > 1 {
		return false
	}
	if e.roundExpiredLocked() {
		// the clock ran out before its tick got the lock
		e.finishLocked(domain.EndTimeUp)
		e.broadcastLocked()
		return false
	}

	q := r.questions[r.index]
	selected := option
	r.selected = &selected
	r.revealing = true
	correct := option == q.CorrectOptionIndex
	r.answers = append(r.answers, correct)
	if correct {
		r.score++
	}

	gen, index := e.gen, r.index
	e.reveal = e.sched.AfterFunc(e.settings.RevealDelay, func() {
		e.onRevealElapsed(gen, index)
	})
	e.broadcastLocked()
	return true
}

// onRevealElapsed ends the reveal window. Round expiry is checked first so the clock
// always wins a tie with the advance.
func (e *Engine) onRevealElapsed(gen uint64, index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.round
	if gen != e.gen || e.phase != domain.PhasePlaying || r == nil || r.index != index || !r.revealing {
		return
	}
	e.reveal = nil

	switch {
	case e.roundExpiredLocked():
		e.finishLocked(domain.EndTimeUp)
	case index+1 >= len(r.questions):
		r.index = len(r.questions)
		e.finishLocked(domain.EndCompleted)
	default:
		r.index++
		r.selected = nil
		r.revealing = false
	}
	e.broadcastLocked()
}

// Restart discards the finished round and returns to CategoryPick.
func (e *Engine) Restart() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requirePhaseLocked(domain.PhaseResults); err != nil {
		return err
	}
	e.round = nil
	e.config = domain.RoundConfig{}
	e.transitionLocked(domain.PhaseCategoryPick)
	e.broadcastLocked()
	return nil
}

// Leave exits the engine from Intro or Results and signals the host. Rounds in
// progress must go through RequestExit and ConfirmExit instead.
func (e *Engine) Leave() error {
	e.mu.Lock()
	if e.phase != domain.PhaseIntro && e.phase != domain.PhaseResults {
		phase := e.phase
		e.mu.Unlock()
		return fmt.Errorf("%w: leave from %s", domain.ErrIllegalTransition, phase)
	}
	e.resetLocked()
	e.broadcastLocked()
	host := e.host
	e.mu.Unlock()

	if host != nil {
		host.ReturnToCaller()
	}
	return nil
}

// Close disarms every timer and closes all subscriptions without signalling the host.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disarmLocked()
	e.closed = true
	for ch := range e.subscribers {
		delete(e.subscribers, ch)
		close(ch)
	}
}

func (e *Engine) requirePhaseLocked(want domain.Phase) error {
	if e.closed || e.exitPending || e.phase != want {
		return fmt.Errorf("%w: in %s, want %s", domain.ErrIllegalTransition, e.phase, want)
	}
	return nil
}

func (e *Engine) hasCategory(c domain.Category) bool {
	for _, known := range e.categories {
		if known == c {
			return true
		}
	}
	return false
}

// transitionLocked is the only place phase changes. It always disarms the previous
// phase's timers before arming the next ones.
func (e *Engine) transitionLocked(next domain.Phase) {
	e.disarmLocked()
	prev := e.phase
	e.phase = next
	e.log.WithFields(logrus.Fields{"from": prev, "to": next}).Debug("phase transition")

	switch next {
	case domain.PhaseCountdown:
		e.round.countdown = e.settings.CountdownSeconds
		e.armTickerLocked(e.onCountdownTick)
	case domain.PhasePlaying:
		e.round.secondsRemaining = e.settings.RoundSeconds
		if len(e.round.questions) == 0 {
			e.finishLocked(domain.EndCompleted)
			return
		}
		e.armTickerLocked(e.onRoundTick)
	case domain.PhaseResults:
		e.exitPending = false
	}
}

// finishLocked scores the round and enters Results.
func (e *Engine) finishLocked(reason domain.EndReason) {
	r := e.round
	if reason == domain.EndTimeUp {
		r.secondsRemaining = 0
	}
	answered := len(r.answers)
	r.result = &domain.Result{
		Score:      r.score,
		Answered:   answered,
		Percentage: Percentage(r.score, answered),
		Tier:       tierFrom(e.settings.Tiers, r.score, answered),
		Reason:     reason,
	}
	e.log.WithFields(logrus.Fields{
		"category":   e.config.Category,
		"difficulty": e.config.Difficulty,
		"score":      r.score,
		"answered":   answered,
		"tier":       r.result.Tier.Label,
		"reason":     reason,
	}).Info("trivia round finished")
	e.transitionLocked(domain.PhaseResults)
}

func (e *Engine) resetLocked() {
	e.disarmLocked()
	e.round = nil
	e.config = domain.RoundConfig{}
	e.exitPending = false
	e.phase = domain.PhaseIntro
}
