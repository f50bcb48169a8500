package trivia

import (
	"time"

	"github.com/senceapptr/SenceApp-sub004/internal/domain"
)

// armTickerLocked starts the periodic timer of the phase being entered. Ticks are
// anchored on the moment the phase started, so re-arming after each tick does not drift.
func (e *Engine) armTickerLocked(onTick func(gen uint64)) {
	e.round.phaseStart = e.sched.Now()
	e.round.ticks = 0
	e.scheduleTickLocked(onTick)
}

func (e *Engine) scheduleTickLocked(onTick func(gen uint64)) {
	r := e.round
	next := r.phaseStart.Add(time.Duration(r.ticks+1) * e.settings.Tick)
	delay := next.Sub(e.sched.Now())
	if delay < 0 {
		delay = 0
	}
	gen := e.gen
	e.ticker = e.sched.AfterFunc(delay, func() { onTick(gen) })
}

// disarmLocked stops both timer handles and invalidates callbacks already in flight.
func (e *Engine) disarmLocked() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	if e.reveal != nil {
		e.reveal.Stop()
		e.reveal = nil
	}
	e.gen++
}

func (e *Engine) onCountdownTick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen || e.phase != domain.PhaseCountdown {
		return
	}
	r := e.round
	r.ticks++
	r.countdown--
	if r.countdown <= 0 {
		r.countdown = 0
		e.transitionLocked(domain.PhasePlaying)
	} else {
		e.scheduleTickLocked(e.onCountdownTick)
	}
	e.broadcastLocked()
}

func (e *Engine) onRoundTick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen || e.phase != domain.PhasePlaying {
		return
	}
	r := e.round
	r.ticks++
	r.secondsRemaining--
	if r.secondsRemaining <= 0 {
		e.finishLocked(domain.EndTimeUp)
	} else {
		e.scheduleTickLocked(e.onRoundTick)
	}
	e.broadcastLocked()
}

// roundExpiredLocked reports whether the round clock has run out, even if its final
// tick has not been delivered yet.
func (e *Engine) roundExpiredLocked() bool {
	r := e.round
	if e.phase != domain.PhasePlaying || r == nil {
		return false
	}
	deadline := r.phaseStart.Add(time.Duration(e.settings.RoundSeconds) * e.settings.Tick)
	return !e.sched.Now().Before(deadline)
}
