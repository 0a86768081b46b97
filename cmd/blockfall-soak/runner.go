package main

import (
	"time"

	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/stats"
	"github.com/plus3/blockfall/tetris"
)

// frameDelta is one frame of a 60 TPS host loop.
const frameDelta = time.Second / 60

type runSettings struct {
	// Think is the number of frames between bot commands.
	Think       int
	MaxDuration time.Duration
	Weights     bot.Weights
}

// Result describes one finished or capped game.
type Result struct {
	Game      int
	Seed      uint64
	Score     int
	Lines     int
	Level     int
	Pieces    int
	Tetrises  int
	Unlocked  int
	Frames    int
	Duration  time.Duration
	ToppedOut bool
	// FrameTime is the mean wall time spent per simulated frame.
	FrameTime time.Duration
}

// playGame runs a bot game on simulated time until it tops out or reaches
// the duration cap.
func playGame(e *tetris.Engine, s runSettings) Result {
	var (
		clock   tetris.FrameClock
		player  = bot.NewPlayer(bot.NewPlanner(s.Weights))
		tracker = stats.NewTracker()
		res     Result
		busy    time.Duration
	)
	think := max(s.Think, 1)

	e.Start()
	for e.State() == tetris.Running && res.Duration < s.MaxDuration {
		start := time.Now()
		if res.Frames%think == 0 {
			player.Step(e)
		}
		clock.Advance(e, frameDelta)
		e.DrainEvents(func(ev tetris.Event) { tracker.Observe(ev) })
		busy += time.Since(start)

		res.Frames++
		res.Duration += frameDelta
	}

	summary := tracker.Summary()
	res.Score = e.Score()
	res.Lines = e.Lines()
	res.Level = e.Level()
	res.Pieces = summary.Pieces()
	res.Tetrises = summary.Tetrises()
	res.Unlocked = len(summary.Unlocked)
	res.ToppedOut = e.State() == tetris.GameOver
	if res.Frames > 0 {
		res.FrameTime = busy / time.Duration(res.Frames)
	}
	return res
}
