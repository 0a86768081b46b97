package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue(t *testing.T) {
	t.Run("unbounded", func(t *testing.T) {
		q := newEventQueue(0)
		for i := 0; i < 1000; i++ {
			q.push(Event{Type: EventMoved, Score: i})
		}
		assert.Equal(t, 1000, q.Len())
		assert.Zero(t, q.Dropped())
	})

	t.Run("drops the oldest when full", func(t *testing.T) {
		q := newEventQueue(3)
		for i := 0; i < 5; i++ {
			q.push(Event{Type: EventSoftDropped, Score: i})
		}
		assert.Equal(t, 3, q.Len())
		assert.Equal(t, 2, q.Dropped())

		var scores []int
		q.Flush(func(ev Event) { scores = append(scores, ev.Score) })
		assert.Equal(t, []int{2, 3, 4}, scores)
		assert.Zero(t, q.Len())
	})

	t.Run("events pushed while flushing are kept", func(t *testing.T) {
		q := newEventQueue(0)
		q.push(Event{Type: EventLocked, Score: 1})

		var seen []int
		q.Flush(func(ev Event) {
			seen = append(seen, ev.Score)
			q.push(Event{Type: EventSpawned, Score: 2})
		})
		assert.Equal(t, []int{1}, seen)
		require.Equal(t, 1, q.Len())

		q.Flush(func(ev Event) { seen = append(seen, ev.Score) })
		assert.Equal(t, []int{1, 2}, seen)
		assert.Zero(t, q.Len())
	})
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "lines_cleared", EventLinesCleared.String())
	assert.Equal(t, "game_over", EventGameOver.String())
	assert.Equal(t, "unknown", EventType(200).String())
}
