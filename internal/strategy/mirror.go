package strategy

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/game"
)

// Mirror copies the opponent's most recent action: from this round if the
// opponent has acted in it, otherwise from the latest earlier round. With
// nothing to copy it checks or calls.
type Mirror struct {
	logger *log.Logger
}

// NewMirror creates a Mirror strategy.
func NewMirror(logger *log.Logger) *Mirror {
	return &Mirror{logger: logger}
}

func (m *Mirror) Decide(_ context.Context, v game.View) (game.Action, error) {
	want, found := lastOpponentAction(v)
	a := passive(v)
	if found {
		a = fit(v, want)
	}
	m.logger.Debug("Mirror decision", "seat", v.Seat, "round", v.Round, "copied", want, "action", a)
	return a, nil
}

func lastOpponentAction(v game.View) (game.Action, bool) {
	if v.Log == nil {
		return game.Action{}, false
	}
	for r := v.Round; r >= game.Preflop; r-- {
		if a, ok := v.Log.Last(r, v.Opponent()); ok && a.Kind != game.Null {
			return a, true
		}
	}
	return game.Action{}, false
}
