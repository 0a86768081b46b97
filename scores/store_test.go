package scores

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func TestParquetStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.parquet")
	store := NewParquetStore(path, testLog())

	played := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	entries := []Entry{
		{Name: "ada", Score: 12400, Lines: 52, Level: 6, Difficulty: "hard", Duration: 4*time.Minute + 12*time.Second, PlayedAt: played},
		{Name: "bob", Score: 800, Lines: 4, Level: 1, Difficulty: "normal", Duration: 45 * time.Second, PlayedAt: played.Add(time.Hour)},
	}
	require.NoError(t, store.Save(entries))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist), "temporary file is renamed away")

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "ada", loaded[0].Name)
	assert.Equal(t, 12400, loaded[0].Score)
	assert.Equal(t, 52, loaded[0].Lines)
	assert.Equal(t, 6, loaded[0].Level)
	assert.Equal(t, "hard", loaded[0].Difficulty)
	assert.Equal(t, 4*time.Minute+12*time.Second, loaded[0].Duration)
	assert.True(t, played.Equal(loaded[0].PlayedAt))
	assert.Equal(t, 800, loaded[1].Score)
}

func TestParquetStoreMissingFile(t *testing.T) {
	store := NewParquetStore(filepath.Join(t.TempDir(), "none.parquet"), testLog())
	entries, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParquetStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.parquet")
	require.NoError(t, os.WriteFile(path, []byte("not a parquet file"), 0o644))

	_, err := NewParquetStore(path, testLog()).Load()
	assert.Error(t, err)
}

func TestParquetStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.parquet")
	store := NewParquetStore(path, testLog())

	require.NoError(t, store.Save([]Entry{{Score: 1}, {Score: 2}, {Score: 3}}))
	require.NoError(t, store.Save([]Entry{{Score: 4}}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []int{4}, scoresOf(loaded))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Entry{Score: 5})
	entries, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []int{5}, scoresOf(entries))

	require.NoError(t, store.Save([]Entry{{Score: 7}, {Score: 6}}))
	entries, _ = store.Load()
	assert.Equal(t, []int{7, 6}, scoresOf(entries))
	assert.Equal(t, 1, store.Saves())
}
