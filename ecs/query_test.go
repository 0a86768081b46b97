package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/ecs"
)

func TestQuery(t *testing.T) {
	t.Run("required and optional fields", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		moving := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
		still := storage.Spawn(Position{X: 2})
		storage.Spawn(Velocity{DX: 3})

		q := ecs.NewQuery[struct {
			Id ecs.EntityId
			*Position
			Velocity *Velocity `ecs:"optional"`
		}](storage)
		q.Execute()
		require.Equal(t, 2, q.Len())

		seen := map[ecs.EntityId]bool{}
		for id, item := range q.Iter() {
			assert.Equal(t, id, item.Id)
			seen[id] = item.Velocity != nil
		}
		assert.Equal(t, map[ecs.EntityId]bool{moving: true, still: false}, seen)
	})

	t.Run("execute picks up new archetypes", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		q := ecs.NewQuery[struct{ *Health }](storage)

		q.Execute()
		assert.Equal(t, 0, q.Len())

		storage.Spawn(Health{Current: 5}, Tag("boss"))
		q.Execute()
		require.Equal(t, 1, q.Len())
		for item := range q.Values() {
			item.Health.Current--
		}

		q.Execute()
		for item := range q.Values() {
			assert.Equal(t, 4, item.Health.Current)
		}
	})

	t.Run("iter before execute panics", func(t *testing.T) {
		q := ecs.NewQuery[struct{ *Tag }](ecs.NewStorage(newRegistry()))
		assert.Panics(t, func() { q.Iter() })
	})

	t.Run("invalid view structs panic", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		assert.Panics(t, func() { ecs.NewView[struct{ Position }](storage) })
		assert.Panics(t, func() {
			ecs.NewView[struct {
				P *Position `ecs:"maybe"`
			}](storage)
		})
	})

	t.Run("view get", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		id := storage.Spawn(Position{X: 3})
		view := ecs.NewView[struct{ *Position }](storage)

		require.NotNil(t, view.Get(id))
		assert.Equal(t, 3, view.Get(id).X)

		storage.Delete(id)
		assert.Nil(t, view.Get(id))
	})
}
