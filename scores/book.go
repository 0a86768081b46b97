package scores

import (
	"fmt"
)

// Book is a leaderboard backed by a store. Every ranking entry is saved
// right away.
type Book struct {
	store Store
	board *Leaderboard
}

// Open loads the leaderboard from store.
func Open(store Store) (*Book, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Book{store: store, board: NewLeaderboard(entries)}, nil
}

// Record inserts e and saves the table when it ranks. It returns the rank,
// or 0 when e did not make the table.
func (b *Book) Record(e Entry) (int, error) {
	rank := b.board.Insert(e)
	if rank == 0 {
		return 0, nil
	}
	if err := b.store.Save(b.board.Entries()); err != nil {
		return rank, fmt.Errorf("record score %d: %w", e.Score, err)
	}
	return rank, nil
}

func (b *Book) Leaderboard() *Leaderboard { return b.board }
