// Package strategy provides decision policies for game.Player seats.
package strategy

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/game"
)

// ErrUnknownStrategy is returned by New for an unregistered name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Spec names a strategy and its settings, as read from a match config.
type Spec struct {
	Name    string
	URL     string        // remote only
	Timeout time.Duration // remote only; zero means no per-decision limit
}

// Names lists the registered strategy names.
var Names = []string{"random", "call", "mirror", "lagged", "remote"}

// New builds the strategy named by spec. The rng is used by strategies that
// randomise; logger may be nil.
func New(spec Spec, rng *rand.Rand, logger *log.Logger) (game.Strategy, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	switch strings.ToLower(spec.Name) {
	case "random":
		return NewRandom(rng, logger), nil
	case "call":
		return NewCall(logger), nil
	case "mirror":
		return NewMirror(logger), nil
	case "lagged":
		return NewLagged(logger), nil
	case "remote":
		if spec.URL == "" {
			return nil, fmt.Errorf("remote strategy needs a url")
		}
		return NewRemote(spec.URL, logger, WithTimeout(spec.Timeout)), nil
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownStrategy, spec.Name, strings.Join(Names, ", "))
}

// passive checks when possible and otherwise calls.
func passive(v game.View) game.Action {
	if va, ok := v.Find(game.Check); ok {
		return game.Action{Kind: va.Kind}
	}
	if va, ok := v.Find(game.Call); ok {
		return game.CallAction(va.MinAmount)
	}
	return game.FoldAction()
}

// fit maps a wished-for action onto the legal menu. Wagers keep their size
// clamped into the legal range; aggression that is not on the menu falls
// back to checking or calling.
func fit(v game.View, want game.Action) game.Action {
	switch want.Kind {
	case game.Fold:
		if v.CanCheck() {
			return game.CheckAction()
		}
		return game.FoldAction()
	case game.Check, game.Call, game.Null:
		return passive(v)
	}

	for _, kind := range []game.ActionKind{want.Kind, game.Bet, game.Raise, game.AllIn} {
		va, ok := v.Find(kind)
		if !ok {
			continue
		}
		amount := min(max(want.Amount, va.MinAmount), va.MaxAmount)
		return game.Action{Kind: va.Kind, Amount: amount}
	}
	return passive(v)
}
