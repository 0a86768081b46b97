package debugui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/tetris"
)

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(4)
	assert.Zero(t, h.Average())

	h.Record(10 * time.Millisecond)
	h.Record(20 * time.Millisecond)
	assert.InDelta(t, 15, h.Average(), 0.001)

	for _, ms := range []int{30, 40, 50} {
		h.Record(time.Duration(ms) * time.Millisecond)
	}
	assert.Equal(t, []float32{20, 30, 40, 50}, h.Ordered())
	assert.InDelta(t, 35, h.Average(), 0.001)
}

func TestOverlaySystem(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	Register(registry)

	setup := func() (*ecs.Storage, *ecs.Scheduler, *[]string) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&OverlaySystem{Capture: func() (bool, bool) { return false, true }})

		var rendered []string
		storage.Spawn(Item{Render: func() { rendered = append(rendered, "window") }})
		return storage, scheduler, &rendered
	}

	t.Run("visible overlay renders after the frame", func(t *testing.T) {
		storage, scheduler, rendered := setup()
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) {
			assert.Empty(t, *rendered, "items render after every system")
		}))

		scheduler.Once(time.Millisecond)
		assert.Equal(t, []string{"window"}, *rendered)

		input := ecs.NewSingleton[InputState](storage).Get()
		require.NotNil(t, input)
		assert.True(t, input.WantCaptureKeyboard)
		assert.False(t, input.WantCaptureMouse)
	})

	t.Run("hidden overlay renders nothing and captures nothing", func(t *testing.T) {
		storage, scheduler, rendered := setup()
		storage.AddSingleton(InputState{WantCaptureKeyboard: true, Hidden: true})

		scheduler.Once(time.Millisecond)
		assert.Empty(t, *rendered)
		assert.Equal(t, InputState{Hidden: true}, *ecs.NewSingleton[InputState](storage).Get())
	})
}

func TestBoardLines(t *testing.T) {
	e := tetris.NewEngine(
		tetris.WithBoardSize(6, 5),
		tetris.WithRandomizer(tetris.NewSequenceRandomizer(tetris.O, tetris.T)),
	)
	require.True(t, e.Start())
	require.NoError(t, e.Board().Set(0, 4, tetris.Z.Cell()))

	assert.Equal(t, []string{
		"..OO..",
		"..OO..",
		"......",
		"..::..",
		"Z.::..",
	}, BoardLines(e.Snapshot()))
}
