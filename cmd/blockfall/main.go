// Command blockfall is the desktop version of the game.
package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/scores"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	flags := config.RegisterFlags(fs)
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
	log := logger.WithField("component", "blockfall")

	book, err := openBook(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open leaderboard")
	}

	var sound *soundBank
	if cfg.Sound {
		sound = newSoundBank()
	}
	game := newGame(cfg, log, book, sound)

	width, height := screenSize(cfg.Board.Width, cfg.Board.Height)
	if cfg.Debug {
		// The overlay needs more room than the board.
		game.attachOverlay(width+720, max(height, 720))
	} else {
		ebiten.SetWindowTitle("Blockfall")
		ebiten.SetWindowSize(width, height)
	}

	log.WithFields(logrus.Fields{
		"difficulty": cfg.Difficulty,
		"randomizer": cfg.Randomizer,
		"board":      [2]int{cfg.Board.Width, cfg.Board.Height},
	}).Info("starting")

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game loop failed")
	}
}

func openBook(cfg config.Config, log *logrus.Entry) (*scores.Book, error) {
	if cfg.ScoresPath == "" {
		return scores.Open(scores.NewMemoryStore())
	}
	return scores.Open(scores.NewParquetStore(cfg.ScoresPath, log.WithField("component", "scores")))
}
