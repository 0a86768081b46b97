// Command blockfall-soak plays bot games headlessly on simulated time and
// reports how they went.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	flags := config.RegisterFlags(fs)
	games := fs.Int("games", 20, "Number of games to play")
	think := fs.Int("think", 4, "Frames between bot commands")
	maxDuration := fs.Duration("max-duration", 30*time.Minute, "Simulated time cap per game")
	archivePath := fs.String("archive", "", "Write per-game results to this parquet file")
	record := fs.Bool("record", false, "Add finished games to the leaderboard")
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
	log := logger.WithField("component", "blockfall-soak")

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	var book *scores.Book
	if *record && cfg.ScoresPath != "" {
		book, err = scores.Open(scores.NewParquetStore(cfg.ScoresPath, log.WithField("component", "scores")))
		if err != nil {
			log.WithError(err).Fatal("failed to open leaderboard")
		}
	}

	settings := runSettings{Think: *think, MaxDuration: *maxDuration, Weights: bot.DefaultWeights}
	report := &Report{
		Games:       *games,
		Difficulty:  cfg.Difficulty,
		Randomizer:  cfg.Randomizer,
		Seed:        cfg.Seed,
		Think:       *think,
		MaxDuration: *maxDuration,
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	log.WithFields(logrus.Fields{"games": *games, "seed": cfg.Seed}).Info("starting soak run")

	startTime := time.Now()
	results := make([]Result, 0, *games)
	for i := range *games {
		gameCfg := cfg
		gameCfg.Seed = cfg.Seed + uint64(i)

		res := playGame(tetris.NewEngine(gameCfg.EngineOptions()...), settings)
		res.Game = i + 1
		res.Seed = gameCfg.Seed
		results = append(results, res)
		report.Add(res)

		log.WithFields(logrus.Fields{
			"game":       res.Game,
			"score":      res.Score,
			"lines":      res.Lines,
			"topped_out": res.ToppedOut,
		}).Debug("game finished")

		if book != nil && res.ToppedOut {
			entry := scores.Entry{
				Name:       "bot",
				Score:      res.Score,
				Lines:      res.Lines,
				Level:      res.Level,
				Difficulty: cfg.Difficulty,
				Duration:   res.Duration,
				PlayedAt:   time.Now(),
			}
			if _, err := book.Record(entry); err != nil {
				log.WithError(err).Error("failed to save leaderboard")
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if *archivePath != "" {
		if err := writeArchive(*archivePath, results); err != nil {
			log.WithError(err).Fatal("failed to write archive")
		}
		log.WithField("path", *archivePath).Info("wrote archive")
	}

	fmt.Println("\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}
