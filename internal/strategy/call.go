package strategy

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/game"
)

// Call is a calling station: it checks when it can and calls otherwise,
// never folding and never raising.
type Call struct {
	logger *log.Logger
}

// NewCall creates a Call strategy.
func NewCall(logger *log.Logger) *Call {
	return &Call{logger: logger}
}

func (c *Call) Decide(_ context.Context, v game.View) (game.Action, error) {
	a := passive(v)
	c.logger.Debug("Call decision", "seat", v.Seat, "round", v.Round, "action", a, "toCall", v.Bet.ToCall)
	return a, nil
}
