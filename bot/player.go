package bot

import "github.com/plus3/blockfall/tetris"

// Player feeds planned commands to an engine one at a time, so a host loop
// can interleave them with gravity.
type Player struct {
	planner *Planner
	queue   []tetris.Command
}

func NewPlayer(planner *Planner) *Player {
	return &Player{planner: planner}
}

// Step applies the next planned command, planning for the current piece when
// the queue is empty. It returns the command applied, or CmdNone.
func (p *Player) Step(e *tetris.Engine) tetris.Command {
	if e.State() != tetris.Running {
		p.queue = nil
		return tetris.CmdNone
	}
	if len(p.queue) == 0 {
		p.queue = p.planner.Plan(e.Snapshot())
		if len(p.queue) == 0 {
			return tetris.CmdNone
		}
	}

	c := p.queue[0]
	p.queue = p.queue[1:]
	if !e.Apply(c) {
		// Gravity moved the piece out from under the plan.
		p.queue = nil
	}
	return c
}

// PlayPiece plans for the current piece and applies the whole plan at once.
// It reports whether a piece was placed.
func (p *Player) PlayPiece(e *tetris.Engine) bool {
	p.queue = nil
	cmds := p.planner.Plan(e.Snapshot())
	if len(cmds) == 0 {
		return false
	}
	for _, c := range cmds {
		e.Apply(c)
	}
	return true
}
