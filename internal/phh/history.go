package phh

import (
	"fmt"
	"time"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

// Variant is the PHH code for no-limit Texas hold'em.
const Variant = "NT"

// playerOrder maps PHH player index to table seat: p1 is the non-dealer.
func playerOrder(dealer int) [game.NumSeats]int {
	return [game.NumSeats]int{1 - dealer, dealer}
}

// FromHand builds the PHH record of a finished hand.
func FromHand(r *game.HandResult, table string, at time.Time) *HandHistory {
	order := playerOrder(r.Dealer)
	h := &HandHistory{
		Variant:           Variant,
		Table:             table,
		SeatCount:         game.NumSeats,
		Seats:             make([]int, game.NumSeats),
		Antes:             make([]int, game.NumSeats),
		BlindsOrStraddles: make([]int, game.NumSeats),
		MinBet:            r.Blinds.Big,
		StartingStacks:    make([]int, game.NumSeats),
		FinishingStacks:   make([]int, game.NumSeats),
		Winnings:          make([]int, game.NumSeats),
		Players:           make([]string, game.NumSeats),
		HandID:            r.ID.String(),
		Timestamp:         at,
	}
	index := [game.NumSeats]int{}
	for pos, seat := range order {
		index[seat] = pos
		h.Seats[pos] = seat + 1
		h.BlindsOrStraddles[pos] = r.Posted[seat]
		h.StartingStacks[pos] = r.StartStacks[seat]
		h.FinishingStacks[pos] = r.StartStacks[seat] + r.Net[seat]
		h.Winnings[pos] = r.Payouts[seat]
		h.Players[pos] = r.Names[seat]
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", pos+1, poker.FormatCards(r.Hole[seat])))
	}

	for round := game.Preflop; round <= game.River; round++ {
		entries := r.Log.Round(round)
		if round > game.Preflop {
			board := streetCards(r.Board, round)
			if len(board) == 0 {
				break
			}
			h.Actions = append(h.Actions, "d db "+poker.FormatCards(board))
		}

		var committed [game.NumSeats]int
		if round == game.Preflop {
			committed = r.Posted
		}
		for _, e := range entries {
			committed[e.Seat] += e.Action.Amount
			a := e.Action
			// an all-in that does not exceed the bet is a call
			if a.Kind == game.AllIn && committed[e.Seat] <= committed[1-e.Seat] {
				a.Kind = game.Call
			}
			if s, ok := FormatAction(index[e.Seat], a, committed[e.Seat]); ok {
				h.Actions = append(h.Actions, s)
			}
		}
	}

	if r.WentToShowdown() {
		for pos, seat := range order {
			h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", pos+1, poker.FormatCards(r.Hole[seat])))
		}
	}
	h.populateTimeFields()
	return h
}

func streetCards(board []poker.Card, round game.Street) []poker.Card {
	var lo, hi int
	switch round {
	case game.Flop:
		lo, hi = 0, 3
	case game.Turn:
		lo, hi = 3, 4
	case game.River:
		lo, hi = 4, 5
	default:
		return nil
	}
	if len(board) < hi {
		return nil
	}
	return board[lo:hi]
}
