package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/tetris"
)

func fillRows(t *testing.T, b *tetris.Board, from, hole int) {
	t.Helper()
	for y := from; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if x != hole {
				require.NoError(t, b.Set(x, y, tetris.O.Cell()))
			}
		}
	}
}

func TestMeasure(t *testing.T) {
	b := tetris.NewBoard(4, 6)
	// Column heights 2, 0, 3, 1 with one hole under column 2.
	require.NoError(t, b.Set(0, 4, tetris.T.Cell()))
	require.NoError(t, b.Set(0, 5, tetris.T.Cell()))
	require.NoError(t, b.Set(2, 3, tetris.T.Cell()))
	require.NoError(t, b.Set(2, 5, tetris.T.Cell()))
	require.NoError(t, b.Set(3, 5, tetris.T.Cell()))

	f := Measure(b)
	assert.Equal(t, 6, f.AggregateHeight)
	assert.Equal(t, 1, f.Holes)
	assert.Equal(t, 2+3+2, f.Bumpiness)
	assert.Equal(t, 3, f.MaxHeight)
}

func TestPlanIdle(t *testing.T) {
	e := tetris.NewEngine()
	assert.Nil(t, NewPlanner().Plan(e.Snapshot()))
}

func TestPlanFillsTheWell(t *testing.T) {
	e := tetris.NewEngine(tetris.WithRandomizer(tetris.NewSequenceRandomizer(tetris.I, tetris.O)))
	require.True(t, e.Start())
	fillRows(t, e.Board(), 16, 9)

	best, ok := NewPlanner().Best(e.Snapshot())
	require.True(t, ok)
	assert.False(t, best.Hold)
	assert.Equal(t, 4, best.Lines)

	cmds := best.Commands
	require.NotEmpty(t, cmds)
	assert.Equal(t, tetris.CmdHardDrop, cmds[len(cmds)-1])

	for _, c := range cmds {
		require.True(t, e.Apply(c), c.String())
	}
	assert.Equal(t, 4, e.Lines())
	for x := 0; x < 10; x++ {
		assert.False(t, e.Board().Occupied(x, 19))
	}
}

func TestPlanUsesHold(t *testing.T) {
	// Only an I fits the well; the active O should be swapped for it.
	e := tetris.NewEngine(tetris.WithRandomizer(tetris.NewSequenceRandomizer(tetris.O, tetris.I)))
	require.True(t, e.Start())
	fillRows(t, e.Board(), 16, 0)

	best, ok := NewPlanner().Best(e.Snapshot())
	require.True(t, ok)
	assert.True(t, best.Hold)
	assert.Equal(t, tetris.CmdHold, best.Commands[0])
	assert.Equal(t, tetris.I, best.Piece.Kind)
	assert.Equal(t, 4, best.Lines)
}

func TestPlanCommandsMatchPlacement(t *testing.T) {
	for _, kind := range []tetris.Kind{tetris.T, tetris.S, tetris.Z, tetris.J, tetris.L, tetris.I, tetris.O} {
		t.Run(kind.String(), func(t *testing.T) {
			e := tetris.NewEngine(tetris.WithRandomizer(tetris.NewSequenceRandomizer(kind)))
			require.True(t, e.Start())
			require.NoError(t, e.Board().Set(0, 19, tetris.Z.Cell()))
			require.NoError(t, e.Board().Set(7, 19, tetris.Z.Cell()))

			best, ok := NewPlanner().Best(e.Snapshot())
			require.True(t, ok)

			for _, c := range best.Commands[:len(best.Commands)-1] {
				require.True(t, e.Apply(c), c.String())
			}
			p, _ := e.Active()
			assert.Equal(t, best.Piece.X, p.X)
			assert.Equal(t, best.Piece.Rotation, p.Rotation)
			assert.Equal(t, best.Piece.Y, e.GhostY())
		})
	}
}

func TestPlayerSurvives(t *testing.T) {
	e := tetris.NewEngine(tetris.WithRandomizer(tetris.NewBagRandomizer(3)))
	player := NewPlayer(NewPlanner())
	require.True(t, e.Start())

	for i := 0; i < 200; i++ {
		require.True(t, player.PlayPiece(e), "piece %d", i)
		e.DrainEvents(func(tetris.Event) {})
	}
	assert.Equal(t, tetris.Running, e.State())
	assert.Greater(t, e.Lines(), 50)
}

func TestPlayerStep(t *testing.T) {
	e := tetris.NewEngine(tetris.WithRandomizer(tetris.NewBagRandomizer(11)))
	player := NewPlayer(NewPlanner())

	assert.Equal(t, tetris.CmdNone, player.Step(e))

	require.True(t, e.Start())
	drops := 0
	for i := 0; i < 500; i++ {
		if player.Step(e) == tetris.CmdHardDrop {
			drops++
		}
	}
	assert.Greater(t, drops, 20)
	assert.Equal(t, tetris.Running, e.State())
}
