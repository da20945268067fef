package game

import (
	"fmt"
	"strings"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

// NumRounds is the number of betting rounds in a hand.
const NumRounds = 4

// NumSeats is the number of seats at a heads-up table.
const NumSeats = 2

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// ParseStreet parses a street name, or its round number 0-4.
func ParseStreet(s string) (Street, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for st := Preflop; st <= Showdown; st++ {
		if name == st.String() || name == fmt.Sprint(int(st)) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRound, s)
}

// Blinds are the forced bets posted before preflop action.
type Blinds struct {
	Small int `json:"small"`
	Big   int `json:"big"`
}

// DefaultBlinds are used when a table is created without WithBlinds.
var DefaultBlinds = Blinds{Small: 10, Big: 20}

// For returns the blind owed by seat. The dealer posts the big blind.
func (b Blinds) For(seat, dealer int) int {
	if seat == dealer {
		return b.Big
	}
	return b.Small
}

// Agreement reports whether betting in round is over. Both seats must have
// acted in the round. A fold always ends it; otherwise the most recent
// action has to close the action of the other seat: a call of a wager, a
// check behind a check or a call, or any passive turn once a seat is frozen.
func Agreement(log *ActionLog, round Street) bool {
	if log.Count(round, 0) == 0 || log.Count(round, 1) == 0 {
		return false
	}
	a, _ := log.Last(round, 0)
	b, _ := log.Last(round, 1)
	if a.Kind == Fold || b.Kind == Fold {
		return true
	}

	latest, _ := log.Latest(round)
	other := a
	if latest.Seat == 0 {
		other = b
	}
	return closes(other.Kind, latest.Action.Kind)
}

// closes reports whether last answers prev without reopening the action.
func closes(prev, last ActionKind) bool {
	switch last {
	case Call:
		return prev.IsAggressive() || prev == Null
	case Check:
		return prev == Check || prev == Call || prev == Null
	case AllIn:
		return prev == AllIn
	case Null:
		return !prev.IsAggressive()
	}
	return false
}

// SplitPot returns each seat's total contribution to the pot: the blind it
// owed as dealer or non-dealer plus every amount it put in by action.
func SplitPot(log *ActionLog, dealer int, blinds Blinds) (int, int) {
	return blinds.For(0, dealer) + log.Total(0), blinds.For(1, dealer) + log.Total(1)
}
