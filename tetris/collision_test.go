package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollides(t *testing.T) {
	board := NewBoard(DefaultWidth, DefaultHeight)
	require.NoError(t, board.Set(5, 10, Z.Cell()))

	tPiece := Piece{Kind: T, Shape: T.Shape()}

	tests := []struct {
		name     string
		piece    Piece
		dx, dy   int
		expected bool
	}{
		{"free space", tPiece.Moved(3, 3), 0, 0, false},
		{"left wall", tPiece.Moved(0, 3), -1, 0, true},
		{"touching left wall", tPiece.Moved(0, 3), 0, 0, false},
		{"right wall", tPiece.Moved(7, 3), 1, 0, true},
		{"touching right wall", tPiece.Moved(7, 3), 0, 0, false},
		{"floor", tPiece.Moved(3, 18), 0, 1, true},
		{"resting on floor", tPiece.Moved(3, 18), 0, 0, false},
		{"locked cell", tPiece.Moved(4, 8), 0, 1, true},
		{"beside locked cell", tPiece.Moved(0, 8), 0, 1, false},
		{"above the board", tPiece.Moved(3, -2), 0, 0, false},
		{"above the board past the wall", tPiece.Moved(-1, -2), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Collides(board, tt.piece, tt.dx, tt.dy))
		})
	}
}

func TestCollidesIgnoresEmptyShapeColumns(t *testing.T) {
	board := NewBoard(DefaultWidth, DefaultHeight)

	// Vertical I occupies only column 2 of its box.
	vertical := Piece{Kind: I, Shape: I.Rotation(1)}
	assert.False(t, Collides(board, vertical.Moved(-2, 0), 0, 0))
	assert.True(t, Collides(board, vertical.Moved(-3, 0), 0, 0))
	assert.False(t, Collides(board, vertical.Moved(7, 0), 0, 0))
	assert.True(t, Collides(board, vertical.Moved(8, 0), 0, 0))
}

func TestDropDistance(t *testing.T) {
	board := NewBoard(DefaultWidth, DefaultHeight)
	p := Spawn(I, DefaultWidth)

	assert.Equal(t, 18, DropDistance(board, p))

	require.NoError(t, board.Set(4, 12, S.Cell()))
	assert.Equal(t, 10, DropDistance(board, p))

	assert.Equal(t, 0, DropDistance(board, p.Moved(0, 10)))
}
