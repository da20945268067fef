package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSeat  = errors.New("invalid seat")
	ErrInvalidRound = errors.New("invalid betting round")
)

// Entry is one recorded action in hand order.
type Entry struct {
	Round  Street `json:"round"`
	Seat   int    `json:"seat"`
	Action Action `json:"action"`
}

// ActionLog records the actions of one hand, per round and per seat, and
// keeps the interleaved order in which they were taken.
type ActionLog struct {
	rounds [NumRounds][NumSeats][]Action
	seq    []Entry
}

// NewActionLog returns an empty log.
func NewActionLog() *ActionLog {
	return &ActionLog{}
}

func checkSlot(round Street, seat int) error {
	if round < Preflop || round > River {
		return fmt.Errorf("%w: %d", ErrInvalidRound, round)
	}
	if seat < 0 || seat >= NumSeats {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	return nil
}

// Record appends a to the seat's actions for round.
func (l *ActionLog) Record(round Street, seat int, a Action) error {
	if err := checkSlot(round, seat); err != nil {
		return err
	}
	l.rounds[round][seat] = append(l.rounds[round][seat], a)
	l.seq = append(l.seq, Entry{Round: round, Seat: seat, Action: a})
	return nil
}

// Actions returns a copy of the seat's actions in round.
func (l *ActionLog) Actions(round Street, seat int) []Action {
	if checkSlot(round, seat) != nil {
		return nil
	}
	return append([]Action(nil), l.rounds[round][seat]...)
}

// Last returns the seat's most recent action in round.
func (l *ActionLog) Last(round Street, seat int) (Action, bool) {
	if checkSlot(round, seat) != nil {
		return Action{}, false
	}
	acts := l.rounds[round][seat]
	if len(acts) == 0 {
		return Action{}, false
	}
	return acts[len(acts)-1], true
}

// Latest returns the most recent entry of round, whichever seat made it.
func (l *ActionLog) Latest(round Street) (Entry, bool) {
	for i := len(l.seq) - 1; i >= 0; i-- {
		if l.seq[i].Round == round {
			return l.seq[i], true
		}
	}
	return Entry{}, false
}

// Count returns the number of actions the seat took in round.
func (l *ActionLog) Count(round Street, seat int) int {
	if checkSlot(round, seat) != nil {
		return 0
	}
	return len(l.rounds[round][seat])
}

// RoundTotal sums the chips the seat committed by action in round.
// Blinds are not actions and are not included.
func (l *ActionLog) RoundTotal(round Street, seat int) int {
	if checkSlot(round, seat) != nil {
		return 0
	}
	total := 0
	for _, a := range l.rounds[round][seat] {
		total += a.Amount
	}
	return total
}

// Total sums the chips the seat committed by action over the whole hand.
func (l *ActionLog) Total(seat int) int {
	total := 0
	for r := Preflop; r <= River; r++ {
		total += l.RoundTotal(r, seat)
	}
	return total
}

// AllInBefore reports whether either seat went all-in in a round earlier
// than round.
func (l *ActionLog) AllInBefore(round Street) bool {
	for _, e := range l.seq {
		if e.Round < round && e.Action.Kind == AllIn {
			return true
		}
	}
	return false
}

// Round returns the entries of one round in the order they were taken.
func (l *ActionLog) Round(round Street) []Entry {
	var out []Entry
	for _, e := range l.seq {
		if e.Round == round {
			out = append(out, e)
		}
	}
	return out
}

// Sequence returns a copy of every entry in hand order.
func (l *ActionLog) Sequence() []Entry {
	return append([]Entry(nil), l.seq...)
}

// Len returns the number of recorded entries.
func (l *ActionLog) Len() int {
	return len(l.seq)
}

// Clone returns a deep copy that shares nothing with l.
func (l *ActionLog) Clone() *ActionLog {
	c := &ActionLog{seq: l.Sequence()}
	for r := range l.rounds {
		for s := range l.rounds[r] {
			c.rounds[r][s] = append([]Action(nil), l.rounds[r][s]...)
		}
	}
	return c
}

// Reset empties the log for a new hand.
func (l *ActionLog) Reset() {
	*l = ActionLog{}
}
