package strategy

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/game"
)

// Random makes uniform random legal actions.
type Random struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a Random strategy drawing from rng.
func NewRandom(rng *rand.Rand, logger *log.Logger) *Random {
	if rng == nil {
		panic("rng is required for the random strategy")
	}
	return &Random{rng: rng, logger: logger}
}

func (r *Random) Decide(_ context.Context, v game.View) (game.Action, error) {
	if len(v.Legal) == 0 {
		return game.FoldAction(), nil
	}

	// Pick random valid action
	choice := v.Legal[r.rng.IntN(len(v.Legal))]

	// For wagers, pick random amount between min and max
	amount := choice.MinAmount
	if choice.MaxAmount > choice.MinAmount {
		amount += r.rng.IntN(choice.MaxAmount - choice.MinAmount + 1)
	}

	a := game.Action{Kind: choice.Kind, Amount: amount}
	r.logger.Debug("Random decision", "seat", v.Seat, "round", v.Round, "action", a)
	return a, nil
}
