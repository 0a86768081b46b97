package tetris

import (
	"fmt"
	"image/color"
	"iter"
)

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// KindCount is the number of distinct tetrominoes.
const KindCount = 7

var kindNames = [KindCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if int(k) >= KindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a catalog piece.
func (k Kind) Valid() bool {
	return int(k) < KindCount
}

// Cell returns the board color tag for cells locked by this kind.
func (k Kind) Cell() Cell {
	return Cell(k + 1)
}

// Color returns the display color of the kind.
func (k Kind) Color() color.RGBA {
	return catalog[k].color
}

// Shape returns the spawn orientation of the kind.
func (k Kind) Shape() Shape {
	return catalog[k].rotations[0]
}

// Rotation returns the shape of the kind in rotation state r (0-3, clockwise).
func (k Kind) Rotation(r int) Shape {
	return catalog[k].rotations[((r%4)+4)%4]
}

// ParseKind converts a single letter name into a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// Shape is a square occupancy matrix. Shapes are values: every transform
// returns a new Shape and never touches the receiver.
type Shape struct {
	size  int
	cells [4][4]bool
}

// ShapeFromRows builds a shape from rows of '#' (filled) and '.' (empty).
func ShapeFromRows(rows ...string) Shape {
	var s Shape
	s.size = len(rows)
	for y, row := range rows {
		for x, ch := range row {
			s.cells[y][x] = ch == '#'
		}
	}
	return s
}

// Size returns the edge length of the bounding box.
func (s Shape) Size() int { return s.size }

// Filled reports whether the cell at column x, row y is occupied.
func (s Shape) Filled(x, y int) bool {
	if x < 0 || y < 0 || x >= s.size || y >= s.size {
		return false
	}
	return s.cells[y][x]
}

// Blocks yields the (x, y) offsets of every occupied cell, row by row.
func (s Shape) Blocks() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for y := 0; y < s.size; y++ {
			for x := 0; x < s.size; x++ {
				if s.cells[y][x] && !yield(x, y) {
					return
				}
			}
		}
	}
}

// Rows renders the shape back into '#'/'.' rows.
func (s Shape) Rows() []string {
	rows := make([]string, s.size)
	for y := range rows {
		buf := make([]byte, s.size)
		for x := range buf {
			buf[x] = '.'
			if s.cells[y][x] {
				buf[x] = '#'
			}
		}
		rows[y] = string(buf)
	}
	return rows
}

// RotateClockwise returns the shape turned 90 degrees clockwise about the
// center of its bounding box.
func RotateClockwise(s Shape) Shape {
	rotated := Shape{size: s.size}
	for y := 0; y < s.size; y++ {
		for x := 0; x < s.size; x++ {
			rotated.cells[x][s.size-1-y] = s.cells[y][x]
		}
	}
	return rotated
}

type pieceDef struct {
	rotations [4]Shape
	color     color.RGBA
}

var catalog = buildCatalog()

func buildCatalog() [KindCount]pieceDef {
	spawn := [KindCount]Shape{
		I: ShapeFromRows("....", "####", "....", "...."),
		O: ShapeFromRows("##", "##"),
		T: ShapeFromRows(".#.", "###", "..."),
		S: ShapeFromRows(".##", "##.", "..."),
		Z: ShapeFromRows("##.", ".##", "..."),
		J: ShapeFromRows("#..", "###", "..."),
		L: ShapeFromRows("..#", "###", "..."),
	}
	colors := [KindCount]color.RGBA{
		I: {R: 102, G: 191, B: 255, A: 255},
		O: {R: 255, G: 203, B: 0, A: 255},
		T: {R: 135, G: 60, B: 190, A: 255},
		S: {R: 0, G: 158, B: 47, A: 255},
		Z: {R: 255, G: 109, B: 194, A: 255},
		J: {R: 0, G: 121, B: 241, A: 255},
		L: {R: 255, G: 161, B: 0, A: 255},
	}

	var defs [KindCount]pieceDef
	for k := range defs {
		shape := spawn[k]
		for r := range defs[k].rotations {
			defs[k].rotations[r] = shape
			shape = RotateClockwise(shape)
		}
		defs[k].color = colors[k]
	}
	return defs
}

// Piece is the falling tetromino: its kind, current orientation and the board
// position of the top-left corner of its bounding box.
type Piece struct {
	Kind     Kind
	Shape    Shape
	Rotation int
	X, Y     int
}

// Spawn places a kind at the spawn position of a board of the given width:
// horizontally centered, top row 0, rotation 0.
func Spawn(kind Kind, width int) Piece {
	shape := kind.Shape()
	return Piece{
		Kind:  kind,
		Shape: shape,
		X:     (width - shape.Size()) / 2,
		Y:     0,
	}
}

// Moved returns a copy of the piece offset by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Cells yields the board coordinates of every occupied cell of the piece.
func (p Piece) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for x, y := range p.Shape.Blocks() {
			if !yield(p.X+x, p.Y+y) {
				return
			}
		}
	}
}
