package strategy

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/game"
)

// Lagged replays the opponent's play one hand late: its n-th decision in a
// round is whatever the opponent did as its n-th action of that round in
// the previous hand. Where the previous hand offers nothing it checks or
// calls.
type Lagged struct {
	logger *log.Logger

	mu   sync.Mutex
	prev *game.HandResult
}

// NewLagged creates a Lagged strategy.
func NewLagged(logger *log.Logger) *Lagged {
	return &Lagged{logger: logger}
}

// ObserveHand stores the finished hand for the next one.
func (l *Lagged) ObserveHand(r *game.HandResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prev = r
}

func (l *Lagged) Decide(_ context.Context, v game.View) (game.Action, error) {
	l.mu.Lock()
	prev := l.prev
	l.mu.Unlock()

	a := passive(v)
	if prev != nil && v.Log != nil {
		slot := v.Log.Count(v.Round, v.Seat)
		acts := prev.Log.Actions(v.Round, v.Opponent())
		if slot < len(acts) && acts[slot].Kind != game.Null {
			a = fit(v, acts[slot])
		}
	}
	l.logger.Debug("Lagged decision", "seat", v.Seat, "round", v.Round, "action", a)
	return a, nil
}
