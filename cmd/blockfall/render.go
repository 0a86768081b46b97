package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/tetris"
)

const (
	cellSize   = 28
	boardLeft  = 40
	boardTop   = 40
	panelWidth = 200
)

var (
	backgroundColor = color.RGBA{16, 16, 24, 255}
	gridColor       = color.RGBA{40, 40, 56, 255}
	frameColor      = color.RGBA{128, 128, 128, 255}
	ghostAlpha      = uint8(70)
)

func screenSize(width, height int) (int, int) {
	return boardLeft*2 + width*cellSize + panelWidth, boardTop*2 + height*cellSize
}

func drawCell(dst *ebiten.Image, left, top float32, x, y int, clr color.RGBA) {
	px := left + float32(x*cellSize)
	py := top + float32(y*cellSize)
	vector.DrawFilledRect(dst, px+1, py+1, cellSize-2, cellSize-2, clr, false)
}

func drawBoard(dst *ebiten.Image, snap tetris.Snapshot) {
	w, h := snap.Board.Width(), snap.Board.Height()

	vector.StrokeRect(dst, boardLeft-2, boardTop-2, float32(w*cellSize+4), float32(h*cellSize+4), 2, frameColor, false)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell, ghost := snap.Cell(x, y)
			kind, ok := cell.Kind()
			switch {
			case !ok:
				drawCell(dst, boardLeft, boardTop, x, y, gridColor)
			case ghost:
				c := kind.Color()
				c.A = ghostAlpha
				drawCell(dst, boardLeft, boardTop, x, y, c)
			default:
				drawCell(dst, boardLeft, boardTop, x, y, kind.Color())
			}
		}
	}
}

// drawPreview draws a piece in its spawn orientation inside a 4x4 box.
func drawPreview(dst *ebiten.Image, left, top float32, kind tetris.Kind, dim bool) {
	shape := kind.Shape()
	clr := kind.Color()
	if dim {
		clr.A = 110
	}
	for x, y := range shape.Blocks() {
		drawCell(dst, left, top, x, y, clr)
	}
}

func drawPanel(dst *ebiten.Image, snap tetris.Snapshot, highScore int, banner string) {
	left := boardLeft*2 + snap.Board.Width()*cellSize
	top := boardTop

	ebitenutil.DebugPrintAt(dst, "NEXT", left, top)
	drawPreview(dst, float32(left), float32(top+16), snap.Next, false)

	ebitenutil.DebugPrintAt(dst, "HOLD", left, top+140)
	if snap.HasHeld {
		drawPreview(dst, float32(left), float32(top+156), snap.Held, !snap.CanHold)
	}

	lines := []string{
		fmt.Sprintf("SCORE  %d", snap.Score),
		fmt.Sprintf("LINES  %d", snap.Lines),
		fmt.Sprintf("LEVEL  %d", snap.Level),
		fmt.Sprintf("BEST   %d", max(highScore, snap.Score)),
	}
	if snap.Combo > 1 {
		lines = append(lines, fmt.Sprintf("COMBO  x%d", snap.Combo))
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(dst, l, left, top+290+i*18)
	}

	if banner != "" {
		ebitenutil.DebugPrintAt(dst, banner, left, top+290+len(lines)*18+12)
	}
}

func drawMessage(dst *ebiten.Image, snap tetris.Snapshot, rank int) {
	var msg string
	switch snap.State {
	case tetris.Idle:
		msg = "PRESS ENTER TO START"
	case tetris.Paused:
		msg = "PAUSED - P TO RESUME"
	case tetris.GameOver:
		msg = "GAME OVER - ENTER TO PLAY AGAIN"
		if rank > 0 {
			msg = fmt.Sprintf("NEW HIGH SCORE #%d\n%s", rank, msg)
		}
	default:
		return
	}
	y := boardTop + snap.Board.Height()*cellSize/2
	ebitenutil.DebugPrintAt(dst, msg, boardLeft+8, y)
}

func draw(dst *ebiten.Image, snap tetris.Snapshot, highScore, rank int, banner string) {
	dst.Fill(backgroundColor)
	drawBoard(dst, snap)
	drawPanel(dst, snap, highScore, banner)
	drawMessage(dst, snap, rank)
}
