package tetris

import (
	"fmt"
	"strings"
	"time"
)

var clearPoints = [5]int{0, 40, 100, 300, 1200}

const (
	comboPoints   = 50
	softDropPoint = 1
	hardDropPoint = 2
	linesPerLevel = 10
)

// Award is the score breakdown of a single lock.
type Award struct {
	Lines int
	// Clear holds the line clear points, including the back-to-back multiplier.
	Clear      int
	Combo      int
	ComboCount int
	BackToBack bool
}

func (a Award) Total() int {
	return a.Clear + a.Combo
}

// scoreLock computes the award for clearing n lines at the given level and
// returns the updated combo counter and back-to-back flag.
func scoreLock(n, level, combo int, backToBack bool) (Award, int, bool) {
	if n <= 0 {
		return Award{}, 0, false
	}
	if n > 4 {
		n = 4
	}

	combo++
	award := Award{
		Lines:      n,
		Clear:      clearPoints[n] * level,
		ComboCount: combo,
	}
	if n == 4 && backToBack {
		award.Clear = award.Clear * 3 / 2
		award.BackToBack = true
	}
	if combo > 1 {
		award.Combo = comboPoints * combo * level
	}

	return award, combo, n == 4
}

func levelForLines(lines int) int {
	return lines/linesPerLevel + 1
}

// Difficulty selects the base gravity interval.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
)

var difficultyNames = [...]string{"easy", "normal", "hard"}

var baseIntervals = [...]time.Duration{
	Easy:   1000 * time.Millisecond,
	Normal: 800 * time.Millisecond,
	Hard:   500 * time.Millisecond,
}

const (
	MinDropInterval = 50 * time.Millisecond
	levelSpeedup    = 50 * time.Millisecond
)

func (d Difficulty) String() string {
	if int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

// BaseInterval returns the level 1 drop interval of the difficulty.
func (d Difficulty) BaseInterval() time.Duration {
	if int(d) < len(baseIntervals) {
		return baseIntervals[d]
	}
	return baseIntervals[Normal]
}

// ParseDifficulty accepts the names returned by Difficulty.String.
func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(name, s) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// DropInterval returns the gravity interval for a level at a difficulty.
func DropInterval(d Difficulty, level int) time.Duration {
	interval := d.BaseInterval() - time.Duration(level-1)*levelSpeedup
	return max(interval, MinDropInterval)
}
