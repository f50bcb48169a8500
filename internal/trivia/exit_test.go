package trivia_test

import (
	"testing"
	"time"

	"github.com/senceapptr/SenceApp-sub004/internal/domain"
	"github.com/senceapptr/SenceApp-sub004/internal/trivia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playThreeCorrect(t *testing.T, e *trivia.Engine, s *manualScheduler) {
	t.Helper()
	startPlaying(t, e, s, domain.CategoryAll, domain.DifficultyEasy)
	for i := 0; i < 3; i++ {
		require.True(t, e.Answer(correctOption(t, e)))
		s.Advance(time.Second)
	}
	require.Equal(t, 3, e.Snapshot().Score)
}

func TestConfirmExitAbandonsRound(t *testing.T) {
	host := &recordingHost{}
	e, s := newTestEngine(t, trivia.WithHost(host))
	playThreeCorrect(t, e, s)

	require.NoError(t, e.RequestExit())
	assert.True(t, e.Snapshot().ExitPending)
	require.NoError(t, e.ConfirmExit())

	snap := e.Snapshot()
	assert.Equal(t, domain.PhaseIntro, snap.Phase)
	assert.Nil(t, snap.Result)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0, snap.TotalQuestions)
	assert.False(t, snap.ExitPending)
	assert.Equal(t, 1, host.abandoned)
	assert.Equal(t, 0, host.returned)
	assert.Equal(t, 0, s.Pending())

	s.Advance(time.Minute)
	assert.Equal(t, domain.PhaseIntro, e.Phase(), "no stale tick may revive the round")
}

func TestCancelExitResumesPlay(t *testing.T) {
	e, s := newTestEngine(t)
	playThreeCorrect(t, e, s)
	before := e.Snapshot()

	require.NoError(t, e.RequestExit())
	require.NoError(t, e.CancelExit())

	after := e.Snapshot()
	assert.Equal(t, domain.PhasePlaying, after.Phase)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.SecondsRemaining, after.SecondsRemaining)
	assert.Equal(t, before.CurrentIndex, after.CurrentIndex)
	assert.False(t, after.ExitPending)
	assert.True(t, e.Answer(0))
}

func TestExitConfirmationDoesNotPauseClock(t *testing.T) {
	e, s := newTestEngine(t)
	playThreeCorrect(t, e, s)
	before := e.Snapshot().SecondsRemaining

	require.NoError(t, e.RequestExit())
	s.Advance(5 * time.Second)
	require.NoError(t, e.CancelExit())

	assert.Equal(t, before-5, e.Snapshot().SecondsRemaining)
}

func TestExitConfirmationBlocksAnswers(t *testing.T) {
	e, s := newTestEngine(t)
	startPlaying(t, e, s, domain.CategoryAll, domain.DifficultyEasy)

	require.NoError(t, e.RequestExit())
	assert.False(t, e.Answer(0))
	assert.Empty(t, e.Snapshot().Answers)
}

func TestClockExpiryDismissesExitConfirmation(t *testing.T) {
	host := &recordingHost{}
	e, s := newTestEngine(t, trivia.WithHost(host))
	startPlaying(t, e, s, domain.CategoryAll, domain.DifficultyEasy)

	require.NoError(t, e.RequestExit())
	s.Advance(30 * time.Second)

	snap := e.Snapshot()
	assert.Equal(t, domain.PhaseResults, snap.Phase)
	assert.False(t, snap.ExitPending)
	require.NotNil(t, snap.Result)
	assert.Equal(t, domain.EndTimeUp, snap.Result.Reason)
	assert.ErrorIs(t, e.ConfirmExit(), domain.ErrNoExitPending)
	assert.Equal(t, 0, host.abandoned)
}

func TestExitDuringCountdownDisarmsTicker(t *testing.T) {
	e, s := newTestEngine(t)
	require.NoError(t, e.Start())
	require.NoError(t, e.SelectCategory("tech"))
	require.NoError(t, e.SelectDifficulty(domain.DifficultyEasy))
	require.Equal(t, 1, s.Pending())

	require.NoError(t, e.RequestExit())
	require.NoError(t, e.ConfirmExit())
	assert.Equal(t, 0, s.Pending())

	s.Advance(5 * time.Second)
	assert.Equal(t, domain.PhaseIntro, e.Phase())
}

func TestExitOutsideRound(t *testing.T) {
	e, s := newTestEngine(t)
	assert.ErrorIs(t, e.RequestExit(), domain.ErrExitNotAllowed)
	assert.ErrorIs(t, e.CancelExit(), domain.ErrNoExitPending)

	startPlaying(t, e, s, domain.CategoryAll, domain.DifficultyEasy)
	s.Advance(30 * time.Second)
	require.Equal(t, domain.PhaseResults, e.Phase())
	assert.ErrorIs(t, e.RequestExit(), domain.ErrExitNotAllowed)
}

func TestExitBlocksPhaseActions(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Start())
	require.NoError(t, e.RequestExit())

	assert.ErrorIs(t, e.SelectCategory(domain.CategoryAll), domain.ErrIllegalTransition)
	require.NoError(t, e.CancelExit())
	assert.NoError(t, e.SelectCategory(domain.CategoryAll))
}
