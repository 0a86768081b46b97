package tetris

import "fmt"

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Cell is the content of a single board square. Empty cells are zero; any
// other value is the color tag of the piece kind that locked there.
type Cell uint8

const Empty Cell = 0

// Kind returns the piece kind that produced the cell.
func (c Cell) Kind() (Kind, bool) {
	if c == Empty {
		return 0, false
	}
	return Kind(c - 1), true
}

// BoundsError reports an attempt to write outside the board.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("cell (%d,%d) outside %dx%d board", e.X, e.Y, e.Width, e.Height)
}

// Board is the grid of locked cells. Row 0 is the top of the well.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard creates an empty board of the given size.
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y). Coordinates outside the board read as Empty.
func (b *Board) Get(x, y int) Cell {
	if !b.inside(x, y) {
		return Empty
	}
	return b.cells[y*b.width+x]
}

// Set writes a cell. Writing outside the board returns a *BoundsError.
func (b *Board) Set(x, y int, c Cell) error {
	if !b.inside(x, y) {
		return &BoundsError{X: x, Y: y, Width: b.width, Height: b.height}
	}
	b.cells[y*b.width+x] = c
	return nil
}

// Occupied reports whether the cell at (x, y) holds a locked block.
func (b *Board) Occupied(x, y int) bool {
	return b.Get(x, y) != Empty
}

// LineFull reports whether every cell in the row is occupied.
func (b *Board) LineFull(row int) bool {
	if row < 0 || row >= b.height {
		return false
	}
	for _, c := range b.cells[row*b.width : (row+1)*b.width] {
		if c == Empty {
			return false
		}
	}
	return true
}

// ClearFullLines removes every full row, shifts the remaining rows down and
// inserts the same number of empty rows at the top. It returns the number of
// rows removed.
func (b *Board) ClearFullLines() int {
	kept := make([]Cell, 0, len(b.cells))
	cleared := 0
	for y := 0; y < b.height; y++ {
		if b.LineFull(y) {
			cleared++
			continue
		}
		kept = append(kept, b.cells[y*b.width:(y+1)*b.width]...)
	}
	if cleared == 0 {
		return 0
	}

	clear(b.cells[:cleared*b.width])
	copy(b.cells[cleared*b.width:], kept)
	return cleared
}

// Clear empties every cell.
func (b *Board) Clear() {
	clear(b.cells)
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{width: b.width, height: b.height, cells: cells}
}

// Rows returns a copy of the grid as rows of cells, top row first.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.height)
	for y := range rows {
		rows[y] = make([]Cell, b.width)
		copy(rows[y], b.cells[y*b.width:(y+1)*b.width])
	}
	return rows
}

// Heights returns the height of the highest occupied cell in each column,
// zero for an empty column.
func (b *Board) Heights() []int {
	heights := make([]int, b.width)
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			if b.cells[y*b.width+x] != Empty {
				heights[x] = b.height - y
				break
			}
		}
	}
	return heights
}
