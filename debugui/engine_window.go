package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/tetris"
)

// EngineWindow shows the engine state and a text picture of the board.
type EngineWindow struct {
	Snapshot func() tetris.Snapshot
}

func (w *EngineWindow) Item() Item {
	return Item{Render: w.Render}
}

func (w *EngineWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 420), imgui.CondOnce)
	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := w.Snapshot()

	imgui.Text(fmt.Sprintf("State: %s", snap.State))
	imgui.Text(fmt.Sprintf("Difficulty: %s", snap.Difficulty))
	imgui.Text(fmt.Sprintf("Drop interval: %s", snap.DropInterval))
	imgui.Text(fmt.Sprintf("Elapsed: %s", snap.Elapsed.Round(100*time.Millisecond)))
	imgui.Separator()

	imgui.Text(fmt.Sprintf("Score %d  Lines %d  Level %d", snap.Score, snap.Lines, snap.Level))
	imgui.Text(fmt.Sprintf("Combo %d  B2B %t", snap.Combo, snap.BackToBack))
	imgui.Text(fmt.Sprintf("Next %s  %s", snap.Next, heldLabel(snap)))

	if snap.Active != nil && imgui.TreeNodeStr("Active piece") {
		a := snap.Active
		imgui.BulletText(fmt.Sprintf("Kind %s rotation %d", a.Kind, a.Rotation))
		imgui.BulletText(fmt.Sprintf("Position (%d, %d) ghost row %d", a.X, a.Y, a.GhostY))
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Board") {
		for _, line := range BoardLines(snap) {
			imgui.Text(line)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func heldLabel(snap tetris.Snapshot) string {
	if !snap.HasHeld {
		return "Hold -"
	}
	if !snap.CanHold {
		return fmt.Sprintf("Hold %s (used)", snap.Held)
	}
	return "Hold " + snap.Held.String()
}

// BoardLines renders the snapshot as text: locked and falling cells use the
// piece letter, ghost cells a colon and empty cells a dot.
func BoardLines(snap tetris.Snapshot) []string {
	lines := make([]string, snap.Board.Height())
	var sb strings.Builder
	for y := range lines {
		sb.Reset()
		for x := 0; x < snap.Board.Width(); x++ {
			cell, ghost := snap.Cell(x, y)
			kind, ok := cell.Kind()
			switch {
			case !ok:
				sb.WriteByte('.')
			case ghost:
				sb.WriteByte(':')
			default:
				sb.WriteString(kind.String())
			}
		}
		lines[y] = sb.String()
	}
	return lines
}
