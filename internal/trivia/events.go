package trivia

import "github.com/senceapptr/SenceApp-sub004/internal/domain"

// Snapshot returns a copy of the engine's observable state.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe returns a channel that receives a snapshot after every state change,
// starting with the current one. The caller must invoke the returned cancel function.
func (e *Engine) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	e.subscribers[ch] = struct{}{}
	// fresh buffered channel, cannot block
	ch <- e.snapshotLocked()
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

func (e *Engine) broadcastLocked() {
	if len(e.subscribers) == 0 {
		return
	}
	snap := e.snapshotLocked()
	for ch := range e.subscribers {
		select {
		case ch <- snap:
		default:
			// slow reader: drop the oldest snapshot, it is stale anyway
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (e *Engine) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Phase:       e.phase,
		Config:      e.config,
		Answers:     []bool{},
		ExitPending: e.exitPending,
		UpdatedAt:   e.sched.Now(),
	}
	r := e.round
	if r == nil {
		return snap
	}

	snap.CurrentIndex = r.index
	snap.TotalQuestions = len(r.questions)
	snap.SecondsRemaining = r.secondsRemaining
	snap.Countdown = r.countdown
	snap.Revealing = r.revealing
	snap.Score = r.score
	snap.Answers = append(snap.Answers, r.answers...)
	if r.selected != nil {
		selected := *r.selected
		snap.SelectedOption = &selected
	}
	if e.phase == domain.PhasePlaying && r.index < len(r.questions) {
		q := r.questions[r.index]
		view := &domain.QuestionView{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Options:    append([]string(nil), q.Options...),
			Category:   q.Category,
			Difficulty: q.Difficulty,
		}
		if r.revealing {
			correct := q.CorrectOptionIndex
			view.CorrectOptionIndex = &correct
		}
		snap.Question = view
	}
	if r.result != nil {
		result := *r.result
		snap.Result = &result
	}
	return snap
}
