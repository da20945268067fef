package game

import (
	"context"

	"github.com/lox/headsup/poker"
)

// Strategy chooses an action for the seat described by a View. Decide may
// block, for example while a remote agent thinks, and should return when
// ctx is done.
type Strategy interface {
	Decide(ctx context.Context, v View) (Action, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(ctx context.Context, v View) (Action, error)

// Decide calls f(ctx, v).
func (f StrategyFunc) Decide(ctx context.Context, v View) (Action, error) {
	return f(ctx, v)
}

// View is the read-only state offered to a strategy. It holds copies, so a
// strategy may keep it after Decide returns.
type View struct {
	Hand          int           `json:"hand"`
	Seat          int           `json:"seat"`
	Hole          []poker.Card  `json:"hole"`
	Board         []poker.Card  `json:"board"`
	Pot           int           `json:"pot"`
	Log           *ActionLog    `json:"-"`
	Round         Street        `json:"round"`
	Stack         int           `json:"stack"`
	OpponentStack int           `json:"opponent_stack"`
	Blinds        Blinds        `json:"blinds"`
	Dealer        int           `json:"dealer"`
	Bet           BetContext    `json:"bet"`
	Legal         []ValidAction `json:"legal"`
}

// Opponent returns the seat across the table.
func (v View) Opponent() int {
	return 1 - v.Seat
}

// CanCheck reports whether checking is legal.
func (v View) CanCheck() bool {
	return v.Bet.ToCall <= 0
}

// Find returns the menu entry for kind.
func (v View) Find(kind ActionKind) (ValidAction, bool) {
	for _, va := range v.Legal {
		if va.Kind == kind {
			return va, true
		}
	}
	return ValidAction{}, false
}

// HandObserver is implemented by strategies that want the full record of
// each finished hand, for example to remember the opponent's play.
type HandObserver interface {
	ObserveHand(r *HandResult)
}
