// Command blockfall-tui plays the game in a terminal.
package main

import (
	"flag"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	flags := config.RegisterFlags(fs)
	logFile := fs.String("log-file", "", "Write logs to this file instead of discarding them")
	if err := fs.Parse(os.Args[1:]); err != nil {
		logrus.Fatalf("flag parse: %v", err)
	}

	cfg, err := flags.Resolve()
	if err != nil {
		logrus.Fatal(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		logrus.Fatal(err)
	}

	// The terminal belongs to the UI.
	logger.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logrus.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}
	log := logger.WithField("component", "blockfall-tui")

	var store scores.Store = scores.NewMemoryStore()
	if cfg.ScoresPath != "" {
		store = scores.NewParquetStore(cfg.ScoresPath, log.WithField("component", "scores"))
	}
	book, err := scores.Open(store)
	if err != nil {
		logrus.Fatalf("open leaderboard: %v", err)
	}

	ticks := make(chan struct{}, 1)
	sched := tetris.NewScheduler(tetris.NewEngine(cfg.EngineOptions()...), tetris.WithTickObserver(func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}))
	defer sched.Close()

	p := tea.NewProgram(newModel(sched, ticks, book, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("ui failed")
		logrus.Fatal(err)
	}

	st := sched.Stats()
	log.WithFields(logrus.Fields{
		"ticks":       st.Ticks,
		"discarded":   st.Discarded,
		"avg_latency": st.AvgLatency,
		"max_latency": st.MaxLatency,
	}).Info("gravity stopped")
}
