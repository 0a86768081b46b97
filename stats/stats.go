// Package stats tracks per game statistics and achievements from engine
// events.
package stats

import (
	"fmt"

	"github.com/kamstrup/intmap"

	"github.com/plus3/blockfall/tetris"
)

type Achievement uint8

const (
	FirstClear Achievement = iota
	Tetris
	BackToBack
	Combo3
	Combo5
	Level5
	Level10
	Score10000
	Pieces100

	achievementCount
)

var achievementNames = [achievementCount]string{
	FirstClear: "first_clear",
	Tetris:     "tetris",
	BackToBack: "back_to_back",
	Combo3:     "combo_3",
	Combo5:     "combo_5",
	Level5:     "level_5",
	Level10:    "level_10",
	Score10000: "score_10000",
	Pieces100:  "pieces_100",
}

func (a Achievement) String() string {
	if a < achievementCount {
		return achievementNames[a]
	}
	return fmt.Sprintf("Achievement(%d)", uint8(a))
}

// Achievements lists every achievement in unlock check order.
func Achievements() []Achievement {
	all := make([]Achievement, achievementCount)
	for i := range all {
		all[i] = Achievement(i)
	}
	return all
}

// counter keys pack a category in the high byte and an index in the low one.
type counterKey uint32

const (
	catLocked counterKey = iota << 8
	catClears
	catMisc
)

const (
	keyLines = catMisc | iota
	keySoftDropCells
	keyHardDropCells
	keyHolds
	keyBestCombo
	keyBackToBacks
)

// Summary is a copy of the tracker counters for one game.
type Summary struct {
	Games int

	Locked [tetris.KindCount]int
	// Clears counts line clears by size, index 1 through 4.
	Clears [5]int

	Lines         int
	SoftDropCells int
	HardDropCells int
	Holds         int
	BestCombo     int
	BackToBacks   int
	Level         int
	Score         int

	Unlocked []Achievement
}

// Pieces returns the number of locked pieces.
func (s Summary) Pieces() int {
	n := 0
	for _, c := range s.Locked {
		n += c
	}
	return n
}

// Tetrises returns the number of four line clears.
func (s Summary) Tetrises() int { return s.Clears[4] }

// Tracker accumulates statistics for the current game. Achievements survive
// across games and are reported once, the first time they are reached.
type Tracker struct {
	counts   *intmap.Map[counterKey, int]
	unlocked *intmap.Map[Achievement, int]
	order    []Achievement

	games int
	level int
	score int
}

func NewTracker() *Tracker {
	return &Tracker{
		counts:   intmap.New[counterKey, int](32),
		unlocked: intmap.New[Achievement, int](int(achievementCount)),
		level:    1,
	}
}

func (t *Tracker) get(k counterKey) int {
	v, _ := t.counts.Get(k)
	return v
}

func (t *Tracker) add(k counterKey, n int) {
	t.counts.Put(k, t.get(k)+n)
}

// Observe folds one event into the counters and returns the achievements it
// unlocked.
func (t *Tracker) Observe(ev tetris.Event) []Achievement {
	switch ev.Type {
	case tetris.EventStarted:
		t.counts.Clear()
		t.games++
		t.level = 1
		t.score = 0
		return nil
	case tetris.EventLocked:
		t.add(catLocked|counterKey(ev.Kind), 1)
	case tetris.EventSoftDropped:
		t.add(keySoftDropCells, ev.Cells)
		t.score = ev.Score
	case tetris.EventHardDropped:
		t.add(keyHardDropCells, ev.Cells)
		t.score = ev.Score
	case tetris.EventHeld:
		t.add(keyHolds, 1)
	case tetris.EventLinesCleared:
		t.add(catClears|counterKey(ev.Award.Lines), 1)
		t.add(keyLines, ev.Award.Lines)
		if ev.Award.BackToBack {
			t.add(keyBackToBacks, 1)
		}
		if ev.Award.ComboCount > t.get(keyBestCombo) {
			t.counts.Put(keyBestCombo, ev.Award.ComboCount)
		}
		t.score = ev.Score
	case tetris.EventLevelUp:
		t.level = ev.Level
	default:
		return nil
	}
	return t.unlock()
}

func (t *Tracker) reached(a Achievement) bool {
	switch a {
	case FirstClear:
		return t.get(keyLines) > 0
	case Tetris:
		return t.get(catClears|4) > 0
	case BackToBack:
		return t.get(keyBackToBacks) > 0
	case Combo3:
		return t.get(keyBestCombo) >= 3
	case Combo5:
		return t.get(keyBestCombo) >= 5
	case Level5:
		return t.level >= 5
	case Level10:
		return t.level >= 10
	case Score10000:
		return t.score >= 10000
	case Pieces100:
		locked := 0
		for k := tetris.Kind(0); k < tetris.KindCount; k++ {
			locked += t.get(catLocked | counterKey(k))
		}
		return locked >= 100
	}
	return false
}

func (t *Tracker) unlock() []Achievement {
	var fresh []Achievement
	for a := Achievement(0); a < achievementCount; a++ {
		if _, done := t.unlocked.Get(a); done || !t.reached(a) {
			continue
		}
		t.unlocked.Put(a, len(t.order))
		t.order = append(t.order, a)
		fresh = append(fresh, a)
	}
	return fresh
}

// Unlocked reports whether a has been reached in any game.
func (t *Tracker) Unlocked(a Achievement) bool {
	_, ok := t.unlocked.Get(a)
	return ok
}

// Summary returns a copy of the counters.
func (t *Tracker) Summary() Summary {
	s := Summary{
		Games:         t.games,
		Lines:         t.get(keyLines),
		SoftDropCells: t.get(keySoftDropCells),
		HardDropCells: t.get(keyHardDropCells),
		Holds:         t.get(keyHolds),
		BestCombo:     t.get(keyBestCombo),
		BackToBacks:   t.get(keyBackToBacks),
		Level:         t.level,
		Score:         t.score,
		Unlocked:      append([]Achievement(nil), t.order...),
	}
	for k := tetris.Kind(0); k < tetris.KindCount; k++ {
		s.Locked[k] = t.get(catLocked | counterKey(k))
	}
	for n := 1; n <= 4; n++ {
		s.Clears[n] = t.get(catClears | counterKey(n))
	}
	return s
}
