// Package config loads game settings from an optional YAML file and
// command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/plus3/blockfall/tetris"
)

const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// Board limits accepted by Validate.
const (
	MinBoardSize   = 4
	MaxBoardWidth  = 40
	MaxBoardHeight = 60
)

type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config holds every setting a front end needs to build an engine and its
// collaborators.
type Config struct {
	Difficulty string        `yaml:"difficulty"`
	LockDelay  time.Duration `yaml:"lock_delay"`
	Randomizer string        `yaml:"randomizer"`
	// Seed 0 picks a time based seed.
	Seed  uint64      `yaml:"seed"`
	Board BoardConfig `yaml:"board"`

	ScoresPath string `yaml:"scores_path"`
	Sound      bool   `yaml:"sound"`
	Debug      bool   `yaml:"debug"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Difficulty: tetris.Normal.String(),
		LockDelay:  tetris.DefaultLockDelay,
		Randomizer: RandomizerUniform,
		Board: BoardConfig{
			Width:  tetris.DefaultWidth,
			Height: tetris.DefaultHeight,
		},
		ScoresPath: "blockfall-scores.parquet",
		Sound:      true,
		LogLevel:   logrus.InfoLevel.String(),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ValidationError lists every invalid setting found by Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	var problems []string

	if _, err := tetris.ParseDifficulty(c.Difficulty); err != nil {
		problems = append(problems, err.Error())
	}
	if c.LockDelay <= 0 {
		problems = append(problems, fmt.Sprintf("lock_delay must be positive, got %s", c.LockDelay))
	}
	switch c.Randomizer {
	case RandomizerUniform, RandomizerBag:
	default:
		problems = append(problems, fmt.Sprintf("unknown randomizer %q", c.Randomizer))
	}
	if c.Board.Width < MinBoardSize || c.Board.Width > MaxBoardWidth {
		problems = append(problems, fmt.Sprintf("board.width must be within [%d, %d], got %d", MinBoardSize, MaxBoardWidth, c.Board.Width))
	}
	if c.Board.Height < MinBoardSize || c.Board.Height > MaxBoardHeight {
		problems = append(problems, fmt.Sprintf("board.height must be within [%d, %d], got %d", MinBoardSize, MaxBoardHeight, c.Board.Height))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// EngineOptions converts the settings to engine options. The config must be
// valid.
func (c Config) EngineOptions() []tetris.Option {
	difficulty, _ := tetris.ParseDifficulty(c.Difficulty)

	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	var randomizer tetris.Randomizer
	if c.Randomizer == RandomizerBag {
		randomizer = tetris.NewBagRandomizer(seed)
	} else {
		randomizer = tetris.NewUniformRandomizer(seed)
	}

	return []tetris.Option{
		tetris.WithBoardSize(c.Board.Width, c.Board.Height),
		tetris.WithDifficulty(difficulty),
		tetris.WithLockDelay(c.LockDelay),
		tetris.WithRandomizer(randomizer),
	}
}

// NewLogger builds the logger shared by a command and its collaborators.
func (c Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger, nil
}

// Flags binds command-line overrides for a Config.
type Flags struct {
	fs   *flag.FlagSet
	path string
	over Config
}

// RegisterFlags defines the config flags on fs. Call Resolve after parsing.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()

	fs.StringVar(&f.path, "config", "", "Path to a YAML config file")
	fs.StringVar(&f.over.Difficulty, "difficulty", d.Difficulty, "Difficulty: easy, normal or hard")
	fs.DurationVar(&f.over.LockDelay, "lock-delay", d.LockDelay, "Time a grounded piece rests before locking")
	fs.StringVar(&f.over.Randomizer, "randomizer", d.Randomizer, "Piece randomizer: uniform or bag")
	fs.Uint64Var(&f.over.Seed, "seed", d.Seed, "Randomizer seed, 0 for a time based seed")
	fs.IntVar(&f.over.Board.Width, "width", d.Board.Width, "Board width in cells")
	fs.IntVar(&f.over.Board.Height, "height", d.Board.Height, "Board height in cells")
	fs.StringVar(&f.over.ScoresPath, "scores", d.ScoresPath, "Leaderboard file, empty to keep scores in memory")
	fs.BoolVar(&f.over.Sound, "sound", d.Sound, "Play sound effects")
	fs.BoolVar(&f.over.Debug, "debug", d.Debug, "Show the debug overlay")
	fs.StringVar(&f.over.LogLevel, "log-level", d.LogLevel, "Log level")
	return f
}

// Resolve loads the config file named by -config, applies every flag that
// was set explicitly on top of it and validates the result.
func (f *Flags) Resolve() (Config, error) {
	cfg, err := Load(f.path)
	if err != nil {
		return cfg, err
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "difficulty":
			cfg.Difficulty = f.over.Difficulty
		case "lock-delay":
			cfg.LockDelay = f.over.LockDelay
		case "randomizer":
			cfg.Randomizer = f.over.Randomizer
		case "seed":
			cfg.Seed = f.over.Seed
		case "width":
			cfg.Board.Width = f.over.Board.Width
		case "height":
			cfg.Board.Height = f.over.Board.Height
		case "scores":
			cfg.ScoresPath = f.over.ScoresPath
		case "sound":
			cfg.Sound = f.over.Sound
		case "debug":
			cfg.Debug = f.over.Debug
		case "log-level":
			cfg.LogLevel = f.over.LogLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
