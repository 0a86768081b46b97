// Package bot plays the game by searching every placement of the current
// piece and picking the best resulting board.
package bot

import (
	"math"

	"github.com/plus3/blockfall/tetris"
)

// Weights scale the board features used to rate a placement.
type Weights struct {
	AggregateHeight float64
	Lines           float64
	Holes           float64
	Bumpiness       float64
}

// DefaultWeights are tuned for the standard 10x20 board.
var DefaultWeights = Weights{
	AggregateHeight: -0.510066,
	Lines:           0.760666,
	Holes:           -0.35663,
	Bumpiness:       -0.184483,
}

// Placement is the outcome of one candidate move sequence.
type Placement struct {
	Commands []tetris.Command
	Hold     bool
	Piece    tetris.Piece
	Lines    int
	Rating   float64
}

type Planner struct {
	Weights Weights
}

func NewPlanner() *Planner {
	return &Planner{Weights: DefaultWeights}
}

// Plan returns the commands that move the active piece to the best placement
// found and hard drop it. It returns nil when there is nothing to play.
func (p *Planner) Plan(snap tetris.Snapshot) []tetris.Command {
	best, ok := p.Best(snap)
	if !ok {
		return nil
	}
	return best.Commands
}

// Best searches every reachable placement of the active piece, and of the
// piece a hold would bring in when holding is allowed.
func (p *Planner) Best(snap tetris.Snapshot) (Placement, bool) {
	if snap.State != tetris.Running || snap.Active == nil {
		return Placement{}, false
	}

	best := Placement{Rating: math.Inf(-1)}
	found := false
	consider := func(c Placement) {
		if !found || c.Rating > best.Rating {
			best = c
			found = true
		}
	}

	for _, c := range p.placements(snap.Board, snap.Active.Piece(), false) {
		consider(c)
	}

	if snap.CanHold {
		kind := snap.Next
		if snap.HasHeld {
			kind = snap.Held
		}
		spawned := tetris.Spawn(kind, snap.Board.Width())
		if !tetris.Collides(snap.Board, spawned, 0, 0) {
			for _, c := range p.placements(snap.Board, spawned, true) {
				consider(c)
			}
		}
	}
	return best, found
}

func (p *Planner) placements(board *tetris.Board, start tetris.Piece, hold bool) []Placement {
	var out []Placement

	piece := start
	for turns := 0; turns < 4; turns++ {
		if turns > 0 {
			rotated, ok := tetris.TryRotate(board, piece)
			if !ok {
				break
			}
			piece = rotated
		}

		for x := -3; x < board.Width(); x++ {
			moved, ok := slide(board, piece, x-piece.X)
			if !ok {
				continue
			}
			landed := moved.Moved(0, tetris.DropDistance(board, moved))
			lines, rating := p.rate(board, landed)

			out = append(out, Placement{
				Commands: commands(hold, turns, x-piece.X),
				Hold:     hold,
				Piece:    landed,
				Lines:    lines,
				Rating:   rating,
			})
		}

		if piece.Kind == tetris.O {
			break
		}
	}
	return out
}

// slide moves the piece one column at a time, as a player would.
func slide(board *tetris.Board, piece tetris.Piece, dx int) (tetris.Piece, bool) {
	step := 1
	if dx < 0 {
		step = -1
	}
	for ; dx != 0; dx -= step {
		if tetris.Collides(board, piece, step, 0) {
			return piece, false
		}
		piece = piece.Moved(step, 0)
	}
	return piece, true
}

func commands(hold bool, turns, dx int) []tetris.Command {
	var cmds []tetris.Command
	if hold {
		cmds = append(cmds, tetris.CmdHold)
	}
	for i := 0; i < turns; i++ {
		cmds = append(cmds, tetris.CmdRotate)
	}
	for ; dx < 0; dx++ {
		cmds = append(cmds, tetris.CmdMoveLeft)
	}
	for ; dx > 0; dx-- {
		cmds = append(cmds, tetris.CmdMoveRight)
	}
	return append(cmds, tetris.CmdHardDrop)
}

// rate locks piece on a copy of board and scores the result.
func (p *Planner) rate(board *tetris.Board, piece tetris.Piece) (int, float64) {
	b := board.Clone()
	for x, y := range piece.Cells() {
		if y < 0 {
			return 0, math.Inf(-1)
		}
		_ = b.Set(x, y, piece.Kind.Cell())
	}
	lines := b.ClearFullLines()

	f := Measure(b)
	w := p.Weights
	rating := w.AggregateHeight*float64(f.AggregateHeight) +
		w.Lines*float64(lines) +
		w.Holes*float64(f.Holes) +
		w.Bumpiness*float64(f.Bumpiness)
	return lines, rating
}

// Features summarises the shape of a board's stack.
type Features struct {
	AggregateHeight int
	Holes           int
	Bumpiness       int
	MaxHeight       int
}

func Measure(b *tetris.Board) Features {
	var f Features
	heights := b.Heights()
	for x, h := range heights {
		f.AggregateHeight += h
		f.MaxHeight = max(f.MaxHeight, h)
		if x > 0 {
			d := h - heights[x-1]
			if d < 0 {
				d = -d
			}
			f.Bumpiness += d
		}
		for y := b.Height() - h + 1; y < b.Height(); y++ {
			if !b.Occupied(x, y) {
				f.Holes++
			}
		}
	}
	return f
}
