package trivia

import (
	"fmt"

	"github.com/senceapptr/SenceApp-sub004/internal/domain"
)

// RequestExit raises the exit confirmation during CategoryPick, DifficultyPick,
// Countdown or Playing. Timers keep running while the confirmation is open, and a
// round whose clock runs out meanwhile still ends in Results.
func (e *Engine) RequestExit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.phase {
	case domain.PhaseCategoryPick, domain.PhaseDifficultyPick, domain.PhaseCountdown, domain.PhasePlaying:
	default:
		return fmt.Errorf("%w: %s", domain.ErrExitNotAllowed, e.phase)
	}
	if e.closed || e.exitPending {
		return nil
	}
	e.exitPending = true
	e.log.WithField("phase", e.phase).Debug("exit requested")
	e.broadcastLocked()
	return nil
}

// ConfirmExit abandons the round without scoring it and signals the host.
func (e *Engine) ConfirmExit() error {
	e.mu.Lock()
	if !e.exitPending {
		e.mu.Unlock()
		return domain.ErrNoExitPending
	}
	e.log.WithField("phase", e.phase).Info("trivia round abandoned")
	e.resetLocked()
	e.broadcastLocked()
	host := e.host
	e.mu.Unlock()

	if host != nil {
		host.RoundAbandoned()
	}
	return nil
}

// CancelExit dismisses the confirmation and resumes the phase that was showing.
func (e *Engine) CancelExit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.exitPending {
		return domain.ErrNoExitPending
	}
	e.exitPending = false
	e.broadcastLocked()
	return nil
}
