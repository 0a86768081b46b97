package tetris

import "time"

// FrameClock drives gravity from a host loop that reports frame deltas, such
// as a 60 TPS game loop. Frame time accumulates and a tick fires each time a
// full drop interval has passed. Time gathered before a pause, reset or new
// game is discarded.
type FrameClock struct {
	acc   time.Duration
	epoch uint64
}

// Advance adds dt to the clock and runs every gravity tick now due. It
// returns the number of ticks fired.
func (c *FrameClock) Advance(e *Engine, dt time.Duration) int {
	// The first frame of a run only sets the baseline.
	if e.State() != Running || e.Epoch() != c.epoch {
		c.acc = 0
		c.epoch = e.Epoch()
		return 0
	}

	c.acc += dt
	ticks := 0
	for e.State() == Running {
		interval := e.DropInterval()
		if c.acc < interval {
			break
		}
		c.acc -= interval
		e.Tick(interval)
		ticks++
	}
	if e.State() != Running {
		c.acc = 0
	}
	return ticks
}

// Pending returns the time accumulated toward the next tick.
func (c *FrameClock) Pending() time.Duration { return c.acc }
