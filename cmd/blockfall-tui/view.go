package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#808080"))
	panelStyle = lipgloss.NewStyle().PaddingLeft(2)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A6E"))
	alertStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
)

var kindStyles = func() [tetris.KindCount]lipgloss.Style {
	var styles [tetris.KindCount]lipgloss.Style
	for k := tetris.Kind(0); k < tetris.KindCount; k++ {
		c := k.Color()
		styles[k] = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)))
	}
	return styles
}()

const (
	blockGlyph = "██"
	ghostGlyph = "░░"
	emptyGlyph = " ·"
)

func renderBoard(snap tetris.Snapshot) string {
	var sb strings.Builder
	for y := 0; y < snap.Board.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < snap.Board.Width(); x++ {
			cell, ghost := snap.Cell(x, y)
			kind, ok := cell.Kind()
			switch {
			case !ok:
				sb.WriteString(dimStyle.Render(emptyGlyph))
			case ghost:
				sb.WriteString(kindStyles[kind].Render(ghostGlyph))
			default:
				sb.WriteString(kindStyles[kind].Render(blockGlyph))
			}
		}
	}
	return frameStyle.Render(sb.String())
}

// renderPiece draws a kind in its spawn orientation.
func renderPiece(kind tetris.Kind, style lipgloss.Style) string {
	rows := kind.Shape().Rows()
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if strings.Trim(row, ".") == "" {
			continue
		}
		var sb strings.Builder
		for _, c := range row {
			if c == '#' {
				sb.WriteString(style.Render(blockGlyph))
			} else {
				sb.WriteString("  ")
			}
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func renderPanel(snap tetris.Snapshot, board *scores.Leaderboard, rank int, banner string) string {
	var parts []string

	parts = append(parts, titleStyle.Render("NEXT"), renderPiece(snap.Next, kindStyles[snap.Next]), "")

	parts = append(parts, titleStyle.Render("HOLD"))
	if snap.HasHeld {
		style := kindStyles[snap.Held]
		if !snap.CanHold {
			style = dimStyle
		}
		parts = append(parts, renderPiece(snap.Held, style))
	} else {
		parts = append(parts, dimStyle.Render("-"))
	}
	parts = append(parts, "")

	parts = append(parts,
		fmt.Sprintf("Score  %d", snap.Score),
		fmt.Sprintf("Lines  %d", snap.Lines),
		fmt.Sprintf("Level  %d", snap.Level),
		fmt.Sprintf("Best   %d", max(board.HighScore(), snap.Score)),
	)
	if snap.Combo > 1 {
		parts = append(parts, fmt.Sprintf("Combo  x%d", snap.Combo))
	}
	parts = append(parts, "")

	switch snap.State {
	case tetris.Idle:
		parts = append(parts, alertStyle.Render("Press enter to start"))
	case tetris.Paused:
		parts = append(parts, alertStyle.Render("Paused"))
	case tetris.GameOver:
		parts = append(parts, alertStyle.Render("Game over"))
		if rank > 0 {
			parts = append(parts, titleStyle.Render(fmt.Sprintf("New high score #%d", rank)))
		}
		parts = append(parts, "", renderLeaderboard(board))
	}
	if banner != "" {
		parts = append(parts, titleStyle.Render(banner))
	}

	parts = append(parts, "", dimStyle.Render("←/→ move  ↓ soft  space drop\nz/x/↑ rotate  c hold  p pause\nr restart  q quit"))
	return panelStyle.Render(strings.Join(parts, "\n"))
}

func renderLeaderboard(board *scores.Leaderboard) string {
	entries := board.Entries()
	if len(entries) == 0 {
		return dimStyle.Render("No scores yet")
	}
	lines := []string{titleStyle.Render("HIGH SCORES")}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%2d. %-8s %7d  L%d", i+1, e.Name, e.Score, e.Level))
	}
	return strings.Join(lines, "\n")
}

func render(snap tetris.Snapshot, board *scores.Leaderboard, rank int, banner string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, renderBoard(snap), renderPanel(snap, board, rank, banner))
}
