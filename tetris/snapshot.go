package tetris

import "time"

// PieceView is a read-only picture of the falling piece.
type PieceView struct {
	Kind     Kind
	Shape    Shape
	Rotation int
	X, Y     int
	GhostY   int
}

// Snapshot is a consistent copy of everything a renderer or other observer
// needs. It shares no memory with the engine.
type Snapshot struct {
	State      State
	Difficulty Difficulty

	Board  *Board
	Active *PieceView
	Next   Kind

	Held    Kind
	HasHeld bool
	CanHold bool

	Score      int
	Lines      int
	Level      int
	Combo      int
	BackToBack bool

	DropInterval time.Duration
	Elapsed      time.Duration
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		State:        e.state,
		Difficulty:   e.difficulty,
		Board:        e.board.Clone(),
		Next:         e.next,
		Held:         e.held,
		HasHeld:      e.hasHeld,
		CanHold:      e.canHold,
		Score:        e.score,
		Lines:        e.lines,
		Level:        e.level,
		Combo:        e.combo,
		BackToBack:   e.backToBack,
		DropInterval: e.DropInterval(),
		Elapsed:      e.elapsed,
	}
	if e.hasActive {
		snap.Active = &PieceView{
			Kind:     e.active.Kind,
			Shape:    e.active.Shape,
			Rotation: e.active.Rotation,
			X:        e.active.X,
			Y:        e.active.Y,
			GhostY:   e.GhostY(),
		}
	}
	return snap
}

// Piece rebuilds the active piece from the view.
func (v PieceView) Piece() Piece {
	return Piece{Kind: v.Kind, Shape: v.Shape, Rotation: v.Rotation, X: v.X, Y: v.Y}
}

// Cell returns what a renderer should draw at (x, y): the active piece on top
// of the locked board. The second result is true for ghost cells.
func (s Snapshot) Cell(x, y int) (Cell, bool) {
	if s.Active != nil {
		v := s.Active
		if v.Shape.Filled(x-v.X, y-v.Y) {
			return v.Kind.Cell(), false
		}
		if c := s.Board.Get(x, y); c != Empty {
			return c, false
		}
		if v.Shape.Filled(x-v.X, y-v.GhostY) {
			return v.Kind.Cell(), true
		}
		return Empty, false
	}
	return s.Board.Get(x, y), false
}
