package main

import "github.com/plus3/blockfall/scores"

const archiveSchema = "blockfall_soak_v1"

type resultRow struct {
	Game        int64  `parquet:"game"`
	Seed        uint64 `parquet:"seed"`
	Score       int64  `parquet:"score"`
	Lines       int64  `parquet:"lines"`
	Level       int32  `parquet:"level"`
	Pieces      int64  `parquet:"pieces"`
	Tetrises    int64  `parquet:"tetrises"`
	Unlocked    int32  `parquet:"unlocked"`
	Frames      int64  `parquet:"frames"`
	DurationMS  int64  `parquet:"duration_ms"`
	FrameTimeNS int64  `parquet:"frame_time_ns"`
	ToppedOut   bool   `parquet:"topped_out"`
}

func toRow(r Result) resultRow {
	return resultRow{
		Game:        int64(r.Game),
		Seed:        r.Seed,
		Score:       int64(r.Score),
		Lines:       int64(r.Lines),
		Level:       int32(r.Level),
		Pieces:      int64(r.Pieces),
		Tetrises:    int64(r.Tetrises),
		Unlocked:    int32(r.Unlocked),
		Frames:      int64(r.Frames),
		DurationMS:  r.Duration.Milliseconds(),
		FrameTimeNS: r.FrameTime.Nanoseconds(),
		ToppedOut:   r.ToppedOut,
	}
}

// writeArchive stores one row per game at path.
func writeArchive(path string, results []Result) error {
	rows := make([]resultRow, len(results))
	for i, r := range results {
		rows[i] = toRow(r)
	}
	return scores.WriteRows(path, archiveSchema, rows)
}
