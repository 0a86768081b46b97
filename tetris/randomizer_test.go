package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomizers(t *testing.T) {
	t.Run("bag deals every kind once per seven", func(t *testing.T) {
		r := NewBagRandomizer(42)
		for bag := 0; bag < 10; bag++ {
			seen := map[Kind]int{}
			for i := 0; i < int(KindCount); i++ {
				seen[r.Next()]++
			}
			assert.Len(t, seen, int(KindCount))
		}
	})

	t.Run("uniform is reproducible", func(t *testing.T) {
		a, b := NewUniformRandomizer(7), NewUniformRandomizer(7)
		for i := 0; i < 100; i++ {
			k := a.Next()
			assert.True(t, k.Valid())
			assert.Equal(t, k, b.Next())
		}
	})

	t.Run("sequence cycles", func(t *testing.T) {
		r := NewSequenceRandomizer(S, Z)
		assert.Equal(t, []Kind{S, Z, S, Z}, []Kind{r.Next(), r.Next(), r.Next(), r.Next()})
	})
}
