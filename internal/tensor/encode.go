// Package tensor encodes cards and betting history as fixed-shape float32
// arrays for a learned agent. Shapes:
//
//	HoleGrid     13 ranks x 4 suits
//	BoardGrid    3 streets x 13 ranks x 4 suits (flop, turn, river)
//	ActionVec    5 kinds: check, bet, call, raise, all-in
//	RoundPlanes  6 actions x 5 kinds x 2 seats, one per betting round
//
// Ranks run deuce to ace and suits hearts, clubs, spades, diamonds.
package tensor

import (
	"errors"
	"fmt"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

const (
	BoardStreets = 3
	ActionKinds  = 5
	RoundActions = game.MaxActionsPerRound
)

var (
	ErrHoleCardCount   = errors.New("hole encoding needs exactly 2 cards")
	ErrBoardCardCount  = errors.New("board encoding needs 0, 3, 4 or 5 cards")
	ErrDuplicateCard   = errors.New("duplicate card")
	ErrHistoryOverflow = errors.New("too many actions in a round")
)

type (
	HoleGrid    [poker.NumRanks][poker.NumSuits]float32
	BoardGrid   [BoardStreets][poker.NumRanks][poker.NumSuits]float32
	ActionVec   [ActionKinds]float32
	RoundPlanes [RoundActions][ActionKinds][game.NumSeats]float32
	History     [game.NumRounds]RoundPlanes
)

// Count returns the number of set cells.
func (g HoleGrid) Count() int {
	n := 0
	for _, row := range g {
		for _, x := range row {
			if x != 0 {
				n++
			}
		}
	}
	return n
}

func checkCards(cards []poker.Card) error {
	seen := make(map[poker.Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: %v", poker.ErrInvalidCard, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = true
	}
	return nil
}

// EncodeHole sets one cell per hole card.
func EncodeHole(cards []poker.Card) (HoleGrid, error) {
	var g HoleGrid
	if len(cards) != 2 {
		return g, fmt.Errorf("%w: got %d", ErrHoleCardCount, len(cards))
	}
	if err := checkCards(cards); err != nil {
		return g, err
	}
	for _, c := range cards {
		g[c.Rank][c.Suit] = 1
	}
	return g, nil
}

// boardStreet maps a board position to its street plane.
func boardStreet(i int) int {
	switch {
	case i < 3:
		return 0
	case i == 3:
		return 1
	}
	return 2
}

// EncodeBoard places the flop in plane 0, the turn in plane 1 and the
// river in plane 2. An empty board encodes to zeros.
func EncodeBoard(cards []poker.Card) (BoardGrid, error) {
	var g BoardGrid
	switch len(cards) {
	case 0, 3, 4, 5:
	default:
		return g, fmt.Errorf("%w: got %d", ErrBoardCardCount, len(cards))
	}
	if err := checkCards(cards); err != nil {
		return g, err
	}
	for i, c := range cards {
		g[boardStreet(i)][c.Rank][c.Suit] = 1
	}
	return g, nil
}

// Count returns the number of set cells in plane.
func (g BoardGrid) Count(plane int) int {
	n := 0
	for _, row := range g[plane] {
		for _, x := range row {
			if x != 0 {
				n++
			}
		}
	}
	return n
}

// kindSlot returns the vector slot of kind, or -1 for kinds that are not
// encoded. Folds end the hand and null turns carry no decision.
func kindSlot(kind game.ActionKind) int {
	switch kind {
	case game.Check:
		return 0
	case game.Bet:
		return 1
	case game.Call:
		return 2
	case game.Raise:
		return 3
	case game.AllIn:
		return 4
	}
	return -1
}

// EncodeAction marks a check with 1 and a wager with its amount.
func EncodeAction(a game.Action) ActionVec {
	var v ActionVec
	slot := kindSlot(a.Kind)
	switch {
	case slot < 0:
	case a.Kind == game.Check:
		v[slot] = 1
	default:
		v[slot] = float32(a.Amount)
	}
	return v
}

// EncodeHistory encodes every round of the log with seat 0 in the first
// seat column.
func EncodeHistory(log *game.ActionLog) (History, error) {
	return EncodeHistoryFrom(log, 0)
}

// EncodeHistoryFrom encodes the log with seat in the first seat column, so
// an agent always sees its own actions in the same place.
func EncodeHistoryFrom(log *game.ActionLog, seat int) (History, error) {
	var h History
	if seat < 0 || seat >= game.NumSeats {
		return h, fmt.Errorf("%w: %d", game.ErrInvalidSeat, seat)
	}
	for r := game.Preflop; r <= game.River; r++ {
		for s := range game.NumSeats {
			col := s
			if seat == 1 {
				col = 1 - s
			}
			acts := log.Actions(r, s)
			if len(acts) > RoundActions {
				return h, fmt.Errorf("%w: %s seat %d has %d", ErrHistoryOverflow, r, s, len(acts))
			}
			for i, a := range acts {
				v := EncodeAction(a)
				for k := range v {
					h[r][i][k][col] = v[k]
				}
			}
		}
	}
	return h, nil
}

// Observation is everything an agent needs to decide, in encoded form.
type Observation struct {
	Hand          int                `json:"hand"`
	Seat          int                `json:"seat"`
	Round         game.Street        `json:"round"`
	Hole          HoleGrid           `json:"hole"`
	Board         BoardGrid          `json:"board"`
	History       History            `json:"history"`
	Pot           int                `json:"pot"`
	Stack         int                `json:"stack"`
	OpponentStack int                `json:"opponent_stack"`
	ToCall        int                `json:"to_call"`
	MinRaise      int                `json:"min_raise"`
	Legal         []game.ValidAction `json:"legal"`
}

// Observe encodes a strategy view from the acting seat's perspective.
func Observe(v game.View) (Observation, error) {
	hole, err := EncodeHole(v.Hole)
	if err != nil {
		return Observation{}, fmt.Errorf("hole: %w", err)
	}
	board, err := EncodeBoard(v.Board)
	if err != nil {
		return Observation{}, fmt.Errorf("board: %w", err)
	}
	var hist History
	if v.Log != nil {
		if hist, err = EncodeHistoryFrom(v.Log, v.Seat); err != nil {
			return Observation{}, fmt.Errorf("history: %w", err)
		}
	}
	return Observation{
		Hand:          v.Hand,
		Seat:          v.Seat,
		Round:         v.Round,
		Hole:          hole,
		Board:         board,
		History:       hist,
		Pot:           v.Pot,
		Stack:         v.Stack,
		OpponentStack: v.OpponentStack,
		ToCall:        v.Bet.ToCall,
		MinRaise:      v.Bet.MinRaise,
		Legal:         v.Legal,
	}, nil
}
