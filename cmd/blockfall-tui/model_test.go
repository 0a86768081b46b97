package main

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
)

func testModel(t *testing.T, kinds ...tetris.Kind) (model, *scores.MemoryStore) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := scores.NewMemoryStore()
	book, err := scores.Open(store)
	require.NoError(t, err)

	sched := tetris.NewScheduler(tetris.NewEngine(
		tetris.WithDifficulty(tetris.Easy),
		tetris.WithRandomizer(tetris.NewSequenceRandomizer(kinds...)),
	))
	t.Cleanup(sched.Close)

	return newModel(sched, make(chan struct{}), book, logrus.NewEntry(logger)), store
}

func press(m model, key string) model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(model)
}

func TestModelStartAndDrop(t *testing.T) {
	m, _ := testModel(t, tetris.I, tetris.T)

	assert.Contains(t, m.View(), "Press enter to start")

	m = press(m, "enter")
	snap := m.sched.Snapshot()
	require.Equal(t, tetris.Running, snap.State)
	require.Equal(t, tetris.I, snap.Active.Kind)

	m = press(m, "space")
	snap = m.sched.Snapshot()
	assert.Equal(t, 36, snap.Score)
	assert.Equal(t, tetris.T, snap.Active.Kind)
	assert.Equal(t, 1, m.tracker.Summary().Pieces())
}

func TestModelPause(t *testing.T) {
	m, _ := testModel(t, tetris.O)
	m = press(m, "enter")
	m = press(m, "p")
	assert.Equal(t, tetris.Paused, m.sched.Snapshot().State)
	assert.Contains(t, m.View(), "Paused")

	m = press(m, "p")
	assert.Equal(t, tetris.Running, m.sched.Snapshot().State)
}

func TestModelRecordsGameOver(t *testing.T) {
	m, store := testModel(t, tetris.I)
	m = press(m, "enter")

	m.sched.Do(func(e *tetris.Engine) {
		for y := 2; y < e.Board().Height(); y++ {
			for x := 1; x < e.Board().Width(); x++ {
				_ = e.Board().Set(x, y, tetris.O.Cell())
			}
		}
	})
	m = press(m, "space")

	require.Equal(t, tetris.GameOver, m.sched.Snapshot().State)
	assert.Equal(t, 1, m.rank)
	assert.Equal(t, 1, store.Saves())
	view := m.View()
	assert.Contains(t, view, "Game over")
	assert.Contains(t, view, "HIGH SCORES")

	m = press(m, "enter")
	assert.Equal(t, tetris.Running, m.sched.Snapshot().State)
	assert.Zero(t, m.rank)
}

func TestModelQuit(t *testing.T) {
	m, _ := testModel(t, tetris.T)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderBoard(t *testing.T) {
	e := tetris.NewEngine(tetris.WithBoardSize(4, 3), tetris.WithRandomizer(tetris.NewSequenceRandomizer(tetris.O)))
	require.True(t, e.Start())

	out := renderBoard(e.Snapshot())
	lines := strings.Split(out, "\n")
	// Three rows plus the border.
	assert.Len(t, lines, 5)
	assert.Equal(t, 4, strings.Count(out, blockGlyph))
	assert.Equal(t, 2, strings.Count(out, ghostGlyph))
}
