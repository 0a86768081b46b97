package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Games       int
	Difficulty  string
	Randomizer  string
	Seed        uint64
	Think       int
	MaxDuration time.Duration

	// Results
	TotalTime     time.Duration
	ToppedOut     int
	Score         Stats[int]
	Lines         Stats[int]
	Pieces        Stats[int]
	Duration      Stats[time.Duration]
	FrameTime     Stats[time.Duration]
	Best          Result
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats[T ~int | ~int64] struct {
	Min     T
	Max     T
	Avg     T
	Samples []T
}

func (s *Stats[T]) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total T
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / T(len(s.Samples))
}

// Add folds one game into the report.
func (r *Report) Add(res Result) {
	r.Score.Samples = append(r.Score.Samples, res.Score)
	r.Lines.Samples = append(r.Lines.Samples, res.Lines)
	r.Pieces.Samples = append(r.Pieces.Samples, res.Pieces)
	r.Duration.Samples = append(r.Duration.Samples, res.Duration)
	r.FrameTime.Samples = append(r.FrameTime.Samples, res.FrameTime)
	if res.ToppedOut {
		r.ToppedOut++
	}
	if len(r.Score.Samples) == 1 || res.Score > r.Best.Score {
		r.Best = res
	}
}

func (r *Report) Finalize() {
	r.Score.Finalize()
	r.Lines.Finalize()
	r.Pieces.Finalize()
	r.Duration.Finalize()
	r.FrameTime.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Soak Report

## Configuration
- **Games:** {{.Games}}
- **Difficulty:** {{.Difficulty}}
- **Randomizer:** {{.Randomizer}}
- **Base Seed:** {{.Seed}}
- **Bot Think Frames:** {{.Think}}
- **Game Cap:** {{.MaxDuration}}

## Results
- **Total Run Time:** {{.TotalTime}}
- **Topped Out:** {{.ToppedOut}} of {{len .Score.Samples}}
- **Score:** avg {{.Score.Avg}}, min {{.Score.Min}}, max {{.Score.Max}}
- **Lines:** avg {{.Lines.Avg}}, min {{.Lines.Min}}, max {{.Lines.Max}}
- **Pieces:** avg {{.Pieces.Avg}}, min {{.Pieces.Min}}, max {{.Pieces.Max}}
- **Game Length (simulated):** avg {{.Duration.Avg}}, min {{.Duration.Min}}, max {{.Duration.Max}}
- **Frame Time:** avg {{.FrameTime.Avg}}, min {{.FrameTime.Min}}, max {{.FrameTime.Max}}

## Best Game
- **Game:** {{.Best.Game}} (seed {{.Best.Seed}})
- **Score:** {{.Best.Score}} at level {{.Best.Level}}
- **Lines:** {{.Best.Lines}} with {{.Best.Tetrises}} tetrises

## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
