package scores

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	loadErr, saveErr error
}

func (s failingStore) Load() ([]Entry, error) { return nil, s.loadErr }
func (s failingStore) Save([]Entry) error     { return s.saveErr }

func TestBookRecord(t *testing.T) {
	store := NewMemoryStore(Entry{Score: 300}, Entry{Score: 100})
	book, err := Open(store)
	require.NoError(t, err)
	assert.Equal(t, 300, book.Leaderboard().HighScore())

	rank, err := book.Record(Entry{Score: 200})
	require.NoError(t, err)
	assert.Equal(t, 2, rank)
	assert.Equal(t, 1, store.Saves())

	saved, _ := store.Load()
	assert.Equal(t, []int{300, 200, 100}, scoresOf(saved))
}

func TestBookSkipsSaveWhenUnranked(t *testing.T) {
	var full []Entry
	for i := 0; i < Capacity; i++ {
		full = append(full, Entry{Score: 1000})
	}
	store := NewMemoryStore(full...)
	book, err := Open(store)
	require.NoError(t, err)

	rank, err := book.Record(Entry{Score: 10})
	require.NoError(t, err)
	assert.Zero(t, rank)
	assert.Zero(t, store.Saves())
}

func TestBookErrors(t *testing.T) {
	boom := errors.New("disk full")

	_, err := Open(failingStore{loadErr: boom})
	assert.ErrorIs(t, err, boom)

	book, err := Open(failingStore{saveErr: boom})
	require.NoError(t, err)
	rank, err := book.Record(Entry{Score: 10})
	assert.Equal(t, 1, rank)
	assert.ErrorIs(t, err, boom)
}

func TestBookReopensParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.parquet")

	book, err := Open(NewParquetStore(path, testLog()))
	require.NoError(t, err)
	_, err = book.Record(Entry{Name: "ada", Score: 4200})
	require.NoError(t, err)

	reopened, err := Open(NewParquetStore(path, testLog()))
	require.NoError(t, err)
	assert.Equal(t, 4200, reopened.Leaderboard().HighScore())
}
