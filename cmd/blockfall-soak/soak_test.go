package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
)

func testSettings() runSettings {
	return runSettings{Think: 2, MaxDuration: 3 * time.Minute, Weights: bot.DefaultWeights}
}

func seededEngine(seed uint64) *tetris.Engine {
	return tetris.NewEngine(
		tetris.WithDifficulty(tetris.Hard),
		tetris.WithRandomizer(tetris.NewBagRandomizer(seed)),
	)
}

func TestPlayGame(t *testing.T) {
	res := playGame(seededEngine(7), testSettings())

	assert.Positive(t, res.Frames)
	assert.Positive(t, res.Pieces)
	assert.Positive(t, res.Lines)
	assert.LessOrEqual(t, res.Duration, 3*time.Minute)
	assert.Equal(t, time.Duration(res.Frames)*frameDelta, res.Duration)
}

func TestPlayGameIsDeterministic(t *testing.T) {
	a := playGame(seededEngine(42), testSettings())
	b := playGame(seededEngine(42), testSettings())

	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Lines, b.Lines)
	assert.Equal(t, a.Pieces, b.Pieces)
	assert.Equal(t, a.Frames, b.Frames)
}

func TestPlayGameStopsAtTopOut(t *testing.T) {
	// Gravity alone stacks O pieces in the middle columns until they top out.
	e := tetris.NewEngine(
		tetris.WithBoardSize(4, 4),
		tetris.WithRandomizer(tetris.NewSequenceRandomizer(tetris.O)),
	)
	res := playGame(e, runSettings{Think: 1 << 20, MaxDuration: time.Hour})

	assert.True(t, res.ToppedOut)
	assert.Less(t, res.Duration, time.Hour)
	assert.Equal(t, tetris.GameOver, e.State())
}

func TestStatsFinalize(t *testing.T) {
	s := Stats[int]{Samples: []int{4, 10, 1}}
	s.Finalize()
	assert.Equal(t, 1, s.Min)
	assert.Equal(t, 10, s.Max)
	assert.Equal(t, 5, s.Avg)

	d := Stats[time.Duration]{}
	d.Finalize()
	assert.Zero(t, d.Avg)
}

func TestReport(t *testing.T) {
	r := &Report{Games: 2, Difficulty: "hard", Randomizer: "bag", Seed: 9, Think: 4, MaxDuration: time.Minute}
	r.Add(Result{Game: 1, Seed: 9, Score: 100, Lines: 2, Duration: 20 * time.Second, ToppedOut: true})
	r.Add(Result{Game: 2, Seed: 10, Score: 300, Lines: 6, Level: 1, Tetrises: 1, Duration: time.Minute})
	r.Finalize()

	assert.Equal(t, 1, r.ToppedOut)
	assert.Equal(t, 2, r.Best.Game)
	assert.Equal(t, 200, r.Score.Avg)
	assert.Equal(t, 40*time.Second, r.Duration.Avg)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Blockfall Soak Report")
	assert.Contains(t, out, "**Topped Out:** 1 of 2")
	assert.Contains(t, out, "**Score:** avg 200, min 100, max 300")
	assert.Contains(t, out, "**Game:** 2 (seed 10)")
}

func TestWriteArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soak.parquet")
	results := []Result{
		{Game: 1, Seed: 3, Score: 40, Lines: 1, Duration: 1500 * time.Millisecond, ToppedOut: true},
		{Game: 2, Seed: 4, Score: 1200, Lines: 4, Tetrises: 1},
	}
	require.NoError(t, writeArchive(path, results))

	rows, err := scores.ReadRows[resultRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, toRow(results[0]), rows[0])
	assert.Equal(t, int64(1500), rows[0].DurationMS)
	assert.Equal(t, int64(1200), rows[1].Score)
}
