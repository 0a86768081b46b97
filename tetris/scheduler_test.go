package tetris

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotY(s *Scheduler) int {
	snap := s.Snapshot()
	if snap.Active == nil {
		return -1
	}
	return snap.Active.Y
}

func TestSchedulerTicks(t *testing.T) {
	var ticks atomic.Int64
	e := NewEngine(WithDifficulty(Hard), WithRandomizer(NewSequenceRandomizer(T)))
	s := NewScheduler(e, WithTickObserver(func() { ticks.Add(1) }))
	defer s.Close()

	require.True(t, s.Apply(CmdStart))

	require.Eventually(t, func() bool { return ticks.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, snapshotY(s), 1)

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.Runs)
	assert.GreaterOrEqual(t, stats.Ticks, int64(1))
	assert.Equal(t, 500*time.Millisecond, stats.LastInterval)
	assert.GreaterOrEqual(t, stats.MaxLatency, stats.MinLatency)
}

func TestSchedulerPauseStopsGravity(t *testing.T) {
	e := NewEngine(WithDifficulty(Hard), WithRandomizer(NewSequenceRandomizer(T)))
	s := NewScheduler(e)
	defer s.Close()

	require.True(t, s.Apply(CmdStart))
	require.True(t, s.Apply(CmdPause))

	y := snapshotY(s)
	time.Sleep(700 * time.Millisecond)
	assert.Equal(t, y, snapshotY(s))
	assert.Equal(t, Paused, s.Snapshot().State)

	require.True(t, s.Apply(CmdResume))
	require.Eventually(t, func() bool { return snapshotY(s) > y }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(2), s.Stats().Runs)
}

func TestSchedulerRestartInOneCall(t *testing.T) {
	t.Run("new game", func(t *testing.T) {
		e := NewEngine(WithDifficulty(Hard), WithRandomizer(NewSequenceRandomizer(T)))
		s := NewScheduler(e)
		defer s.Close()

		require.True(t, s.Apply(CmdStart))
		time.Sleep(300 * time.Millisecond)

		s.Do(func(e *Engine) {
			e.Reset()
			e.Start()
		})
		time.Sleep(300 * time.Millisecond)

		// The new game starts a fresh 500ms interval.
		assert.Equal(t, 0, snapshotY(s))
		assert.Zero(t, s.Snapshot().Elapsed)
		assert.Equal(t, int64(2), s.Stats().Runs)
	})

	t.Run("pause and resume", func(t *testing.T) {
		e := NewEngine(WithDifficulty(Hard), WithRandomizer(NewSequenceRandomizer(T)))
		s := NewScheduler(e)
		defer s.Close()

		require.True(t, s.Apply(CmdStart))
		time.Sleep(300 * time.Millisecond)

		s.Do(func(e *Engine) {
			e.Pause()
			e.Resume()
		})
		time.Sleep(300 * time.Millisecond)

		assert.Equal(t, 0, snapshotY(s))
		assert.Equal(t, int64(2), s.Stats().Runs)
	})
}

func TestSchedulerDo(t *testing.T) {
	e := NewEngine(WithRandomizer(NewSequenceRandomizer(I)))
	s := NewScheduler(e)
	defer s.Close()

	s.Do(func(e *Engine) {
		e.Start()
		e.HardDrop()
	})

	snap := s.Snapshot()
	assert.Equal(t, Running, snap.State)
	assert.Equal(t, 36, snap.Score)
	assert.Equal(t, I.Cell(), snap.Board.Get(3, 19))
}

func TestSchedulerClose(t *testing.T) {
	e := NewEngine(WithDifficulty(Hard), WithRandomizer(NewSequenceRandomizer(T)))
	s := NewScheduler(e)

	require.True(t, s.Apply(CmdStart))
	s.Close()

	y := snapshotY(s)
	time.Sleep(600 * time.Millisecond)
	assert.Equal(t, y, snapshotY(s), "no ticks after close")

	// Commands still apply, but gravity stays off.
	require.True(t, s.Apply(CmdPause))
	require.True(t, s.Apply(CmdResume))
	assert.Equal(t, int64(1), s.Stats().Runs)
}
