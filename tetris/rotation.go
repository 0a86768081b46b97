package tetris

import "slices"

// Offset is a wall kick translation. Negative DY moves the piece up.
type Offset struct {
	DX, DY int
}

// Kick tables tried in order when an in-place rotation collides. This is a
// reduced set, not the canonical SRS tables.
var (
	kicksI = []Offset{{-1, 0}, {1, 0}, {-2, 0}, {2, 0}, {0, -1}, {0, 1}}
	kicks  = []Offset{{-1, 0}, {1, 0}, {0, -1}, {-1, -1}, {1, -1}}
)

// Kicks returns the wall kick offsets for a kind. The O piece has none.
func Kicks(kind Kind) []Offset {
	switch kind {
	case O:
		return nil
	case I:
		return slices.Clone(kicksI)
	default:
		return slices.Clone(kicks)
	}
}

// attemptRotation turns the piece clockwise, trying the in-place rotation
// first and then each kick offset. It returns the rotated piece, whether a
// kick was needed, and false if every candidate collides.
func attemptRotation(board *Board, p Piece) (Piece, bool, bool) {
	if p.Kind == O {
		return p, false, false
	}

	rotated := p
	rotated.Shape = RotateClockwise(p.Shape)
	rotated.Rotation = (p.Rotation + 1) % 4

	if !Collides(board, rotated, 0, 0) {
		return rotated, false, true
	}

	for _, k := range Kicks(p.Kind) {
		if !Collides(board, rotated, k.DX, k.DY) {
			return rotated.Moved(k.DX, k.DY), true, true
		}
	}

	return p, false, false
}

// TryRotate returns p turned clockwise on board the way Engine.Rotate would
// turn it, including wall kicks.
func TryRotate(board *Board, p Piece) (Piece, bool) {
	rotated, _, ok := attemptRotation(board, p)
	return rotated, ok
}
