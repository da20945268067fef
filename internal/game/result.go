package game

import (
	"github.com/google/uuid"

	"github.com/lox/headsup/poker"
)

// HandResult is the record of a finished hand. It shares no state with the
// table that produced it.
type HandResult struct {
	ID            uuid.UUID
	Number        int
	Dealer        int
	Blinds        Blinds
	Names         [NumSeats]string
	StartStacks   [NumSeats]int
	Posted        [NumSeats]int
	Hole          [NumSeats][]poker.Card
	Board         []poker.Card
	Log           *ActionLog
	Contributions [NumSeats]int
	Payouts       [NumSeats]int
	Net           [NumSeats]int
	Street        Street // round the hand ended in, Showdown if not folded
	Folded        int    // seat that folded, or -1
	Showdown      *Showdown
}

func newHandID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func (t *Table) result(contrib, payout [NumSeats]int, sd *Showdown) *HandResult {
	r := &HandResult{
		ID:            newHandID(),
		Number:        t.hand,
		Dealer:        t.dealer,
		Blinds:        t.blinds,
		StartStacks:   t.start,
		Posted:        t.posted,
		Board:         t.Board(),
		Log:           t.log.Clone(),
		Contributions: contrib,
		Payouts:       payout,
		Street:        t.street,
		Folded:        t.folded,
		Showdown:      sd,
	}
	for s, p := range t.players {
		r.Names[s] = p.Name
		r.Hole[s] = append([]poker.Card(nil), p.Cards...)
		r.Net[s] = p.Stack - t.start[s]
	}
	return r
}

// Pot returns the total chips contested.
func (r *HandResult) Pot() int {
	return r.Contributions[0] + r.Contributions[1]
}

// WentToShowdown reports whether the hand was decided by comparing cards.
func (r *HandResult) WentToShowdown() bool {
	return r.Showdown != nil
}

// Winner returns the seat that won the pot, or -1 for a split.
func (r *HandResult) Winner() int {
	if r.Folded >= 0 {
		return 1 - r.Folded
	}
	if r.Showdown != nil {
		return r.Showdown.Outcome.Winner()
	}
	return -1
}

// WinnerName returns the winner's name, or "split".
func (r *HandResult) WinnerName() string {
	if w := r.Winner(); w >= 0 {
		return r.Names[w]
	}
	return "split"
}
