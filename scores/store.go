package scores

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/sirupsen/logrus"
)

// Store loads and saves leaderboard entries.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// MemoryStore keeps entries in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	saves   int
}

func NewMemoryStore(entries ...Entry) *MemoryStore {
	return &MemoryStore{entries: entries}
}

func (s *MemoryStore) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...), nil
}

func (s *MemoryStore) Save(entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]Entry(nil), entries...)
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// entryRow is the on-disk layout of an Entry.
type entryRow struct {
	Name       string `parquet:"name,dict"`
	Score      int64  `parquet:"score"`
	Lines      int32  `parquet:"lines"`
	Level      int32  `parquet:"level"`
	Difficulty string `parquet:"difficulty,dict"`
	DurationMS int64  `parquet:"duration_ms"`
	PlayedAtMS int64  `parquet:"played_at_ms"`
}

func toRow(e Entry) entryRow {
	return entryRow{
		Name:       e.Name,
		Score:      int64(e.Score),
		Lines:      int32(e.Lines),
		Level:      int32(e.Level),
		Difficulty: e.Difficulty,
		DurationMS: e.Duration.Milliseconds(),
		PlayedAtMS: e.PlayedAt.UnixMilli(),
	}
}

func fromRow(r entryRow) Entry {
	return Entry{
		Name:       r.Name,
		Score:      int(r.Score),
		Lines:      int(r.Lines),
		Level:      int(r.Level),
		Difficulty: r.Difficulty,
		Duration:   time.Duration(r.DurationMS) * time.Millisecond,
		PlayedAt:   time.UnixMilli(r.PlayedAtMS),
	}
}

// SchemaName is written to the file metadata.
const SchemaName = "blockfall_scores_v1"

// ParquetStore persists entries to a zstd compressed parquet file. Writes go
// to a temporary file that is renamed over the target.
type ParquetStore struct {
	path string
	log  *logrus.Entry
}

func NewParquetStore(path string, log *logrus.Entry) *ParquetStore {
	return &ParquetStore{path: path, log: log.WithField("path", path)}
}

func (s *ParquetStore) Path() string { return s.path }

// Load reads every entry. A missing file holds no entries.
func (s *ParquetStore) Load() ([]Entry, error) {
	rows, err := ReadRows[entryRow](s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("no leaderboard file yet")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = fromRow(r)
	}
	s.log.WithField("entries", len(entries)).Debug("leaderboard loaded")
	return entries, nil
}

func (s *ParquetStore) Save(entries []Entry) error {
	rows := make([]entryRow, len(entries))
	for i, e := range entries {
		rows[i] = toRow(e)
	}
	if err := WriteRows(s.path, SchemaName, rows); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	s.log.WithField("entries", len(entries)).Debug("leaderboard saved")
	return nil
}

// WriteRows atomically replaces path with a parquet file holding rows.
func WriteRows[T any](path, schema string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadRows reads every row of a parquet file written by WriteRows.
func ReadRows[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, err
	}

	reader := parquet.NewGenericReader[T](pf)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	read := 0
	for read < len(rows) {
		n, err := reader.Read(rows[read:])
		read += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return rows[:read], nil
}
