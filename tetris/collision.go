package tetris

// Collides reports whether the piece, offset by (dx, dy), would overlap a wall,
// the floor or a locked cell. Cells above the top of the board are only
// checked against the side walls so pieces can spawn partly out of view.
func Collides(board *Board, p Piece, dx, dy int) bool {
	for x, y := range p.Cells() {
		x += dx
		y += dy

		if x < 0 || x >= board.Width() || y >= board.Height() {
			return true
		}

		if y >= 0 && board.Occupied(x, y) {
			return true
		}
	}

	return false
}

// DropDistance returns how many rows the piece can fall before it collides.
func DropDistance(board *Board, p Piece) int {
	k := 0
	for !Collides(board, p, 0, k+1) {
		k++
	}
	return k
}
