// Package scores keeps the high score table and persists it.
package scores

import (
	"time"
)

// Capacity is the number of entries kept on a leaderboard.
const Capacity = 10

// Entry is one finished game.
type Entry struct {
	Name       string
	Score      int
	Lines      int
	Level      int
	Difficulty string
	Duration   time.Duration
	PlayedAt   time.Time
}

// Leaderboard holds the best entries ordered by score, highest first. Ties
// keep insertion order.
type Leaderboard struct {
	entries []Entry
}

// NewLeaderboard builds a leaderboard from entries in any order.
func NewLeaderboard(entries []Entry) *Leaderboard {
	lb := &Leaderboard{}
	for _, e := range entries {
		lb.Insert(e)
	}
	return lb
}

// Insert adds e if it ranks and returns its 1-based rank, or 0 when it does
// not make the table.
func (lb *Leaderboard) Insert(e Entry) int {
	pos := len(lb.entries)
	for i, existing := range lb.entries {
		if e.Score > existing.Score {
			pos = i
			break
		}
	}
	if pos >= Capacity {
		return 0
	}

	lb.entries = append(lb.entries, Entry{})
	copy(lb.entries[pos+1:], lb.entries[pos:])
	lb.entries[pos] = e
	if len(lb.entries) > Capacity {
		lb.entries = lb.entries[:Capacity]
	}
	return pos + 1
}

// Qualifies reports whether score would enter the table.
func (lb *Leaderboard) Qualifies(score int) bool {
	return len(lb.entries) < Capacity || score > lb.entries[len(lb.entries)-1].Score
}

// HighScore returns the best score, or 0 for an empty table.
func (lb *Leaderboard) HighScore() int {
	if len(lb.entries) == 0 {
		return 0
	}
	return lb.entries[0].Score
}

// Entries returns a copy of the table.
func (lb *Leaderboard) Entries() []Entry {
	return append([]Entry(nil), lb.entries...)
}

func (lb *Leaderboard) Len() int { return len(lb.entries) }
