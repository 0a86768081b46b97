package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/stats"
	"github.com/plus3/blockfall/tetris"
)

// StatsWindow shows the tracker counters and achievements.
type StatsWindow struct {
	Summary func() stats.Summary
}

func (w *StatsWindow) Item() Item { return Item{Render: w.Render} }

func (w *StatsWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(280, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 360), imgui.CondOnce)
	if !imgui.BeginV("Statistics", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := w.Summary()
	imgui.Text(fmt.Sprintf("Games: %d", s.Games))
	imgui.Text(fmt.Sprintf("Pieces: %d  Holds: %d", s.Pieces(), s.Holds))
	imgui.Text(fmt.Sprintf("Soft drop cells: %d  Hard drop cells: %d", s.SoftDropCells, s.HardDropCells))
	imgui.Text(fmt.Sprintf("Best combo: %d  Back-to-back: %d", s.BestCombo, s.BackToBacks))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("Pieces", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Locked")
		imgui.TableHeadersRow()
		for k := tetris.Kind(0); k < tetris.KindCount; k++ {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			c := k.Color()
			imgui.PushStyleColorVec4(imgui.ColText, imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1))
			imgui.Text(k.String())
			imgui.PopStyleColor()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.Locked[k]))
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Clears") {
		for n, name := range []string{"", "Single", "Double", "Triple", "Tetris"} {
			if n > 0 {
				imgui.BulletText(fmt.Sprintf("%s: %d", name, s.Clears[n]))
			}
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Achievements") {
		for _, a := range s.Unlocked {
			imgui.BulletText(a.String())
		}
		imgui.TreePop()
	}

	imgui.End()
}

// LeaderboardWindow lists the leaderboard.
type LeaderboardWindow struct {
	Board *scores.Leaderboard
}

func (w *LeaderboardWindow) Item() Item { return Item{Render: w.Render} }

func (w *LeaderboardWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(280, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 260), imgui.CondOnce)
	if !imgui.BeginV("Leaderboard", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("Scores", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Score")
		imgui.TableSetupColumn("Lines")
		imgui.TableSetupColumn("Level")
		imgui.TableSetupColumn("Played")
		imgui.TableHeadersRow()

		for i, e := range w.Board.Entries() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", i+1))
			imgui.TableNextColumn()
			imgui.Text(e.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", e.Score))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", e.Lines))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", e.Level))
			imgui.TableNextColumn()
			imgui.Text(e.PlayedAt.Format("2006-01-02 15:04"))
		}
		imgui.EndTable()
	}

	imgui.End()
}
