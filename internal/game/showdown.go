package game

import (
	"fmt"

	"github.com/lox/headsup/poker"
)

// Outcome is the three-way result of comparing two hands.
type Outcome int8

const (
	SeatZero Outcome = iota
	SeatOne
	Split
)

func (o Outcome) String() string {
	switch o {
	case SeatZero:
		return "seat 0"
	case SeatOne:
		return "seat 1"
	case Split:
		return "split"
	}
	return "unknown"
}

// Winner returns the winning seat, or -1 for a split.
func (o Outcome) Winner() int {
	if o == Split {
		return -1
	}
	return int(o)
}

// Showdown holds both evaluated hands and who won.
type Showdown struct {
	Outcome Outcome                    `json:"outcome"`
	Hands   [NumSeats]poker.Evaluation `json:"hands"`
}

// CompareHands evaluates each player's hole cards with the board. Equal
// strength and tie-break split the pot.
func CompareHands(p0, p1 *Player, board []poker.Card) (Showdown, error) {
	var sd Showdown
	for i, p := range []*Player{p0, p1} {
		ev, err := poker.EvaluateHand(p.Cards, board)
		if err != nil {
			return Showdown{}, fmt.Errorf("evaluate seat %d: %w", p.ID, err)
		}
		sd.Hands[i] = ev
	}
	switch poker.Compare(sd.Hands[0], sd.Hands[1]) {
	case 1:
		sd.Outcome = SeatZero
	case -1:
		sd.Outcome = SeatOne
	default:
		sd.Outcome = Split
	}
	return sd, nil
}

// settle divides the pot. Chips one seat put in beyond what the other
// matched are returned to it first. A fold gives the other seat everything;
// a split returns each seat its matched share.
func settle(contrib [NumSeats]int, folded int, outcome Outcome) [NumSeats]int {
	matched := min(contrib[0], contrib[1])
	var payout [NumSeats]int
	for s := range payout {
		payout[s] = contrib[s] - matched
	}
	switch {
	case folded >= 0:
		winner := 1 - folded
		payout = [NumSeats]int{}
		payout[winner] = contrib[0] + contrib[1]
	case outcome == Split:
		payout[0] += matched
		payout[1] += matched
	default:
		payout[outcome.Winner()] += 2 * matched
	}
	return payout
}
