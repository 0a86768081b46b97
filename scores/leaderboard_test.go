package scores

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scoresOf(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestLeaderboardInsert(t *testing.T) {
	lb := &Leaderboard{}
	assert.Equal(t, 0, lb.HighScore())

	assert.Equal(t, 1, lb.Insert(Entry{Score: 500}))
	assert.Equal(t, 1, lb.Insert(Entry{Score: 900}))
	assert.Equal(t, 3, lb.Insert(Entry{Score: 100}))
	assert.Equal(t, 2, lb.Insert(Entry{Score: 700}))

	assert.Equal(t, []int{900, 700, 500, 100}, scoresOf(lb.Entries()))
	assert.Equal(t, 900, lb.HighScore())
}

func TestLeaderboardTiesKeepInsertionOrder(t *testing.T) {
	lb := &Leaderboard{}
	lb.Insert(Entry{Name: "first", Score: 300})
	assert.Equal(t, 2, lb.Insert(Entry{Name: "second", Score: 300}))

	entries := lb.Entries()
	assert.Equal(t, "first", entries[0].Name)
	assert.Equal(t, "second", entries[1].Name)
}

func TestLeaderboardCapacity(t *testing.T) {
	lb := &Leaderboard{}
	for i := 1; i <= Capacity; i++ {
		assert.NotZero(t, lb.Insert(Entry{Score: i * 100}))
	}
	assert.Equal(t, Capacity, lb.Len())

	assert.False(t, lb.Qualifies(100))
	assert.Equal(t, 0, lb.Insert(Entry{Score: 100}), "ties with the last entry do not rank")
	assert.Equal(t, 0, lb.Insert(Entry{Score: 50}))

	assert.True(t, lb.Qualifies(150))
	assert.Equal(t, Capacity, lb.Insert(Entry{Score: 150}))
	assert.Equal(t, Capacity, lb.Len())
	assert.Equal(t, 150, lb.Entries()[Capacity-1].Score)

	assert.Equal(t, 1, lb.Insert(Entry{Score: 5000}))
	assert.Equal(t, Capacity, lb.Len())
	assert.Equal(t, 200, lb.Entries()[Capacity-1].Score)
}

func TestNewLeaderboardSorts(t *testing.T) {
	lb := NewLeaderboard([]Entry{{Score: 10}, {Score: 30}, {Score: 20}})
	assert.Equal(t, []int{30, 20, 10}, scoresOf(lb.Entries()))
}

func TestEntriesIsACopy(t *testing.T) {
	lb := NewLeaderboard([]Entry{{Score: 10}})
	entries := lb.Entries()
	entries[0].Score = 99
	assert.Equal(t, 10, lb.HighScore())
}
