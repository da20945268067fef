package game

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

// scripted plays its actions in order, then checks or calls.
type scripted struct {
	actions []Action
	views   []View
}

func script(actions ...Action) *scripted {
	return &scripted{actions: actions}
}

func (s *scripted) Decide(_ context.Context, v View) (Action, error) {
	s.views = append(s.views, v)
	if len(s.views) <= len(s.actions) {
		return s.actions[len(s.views)-1], nil
	}
	return passive(v), nil
}

func passive(v View) Action {
	if v.CanCheck() {
		return CheckAction()
	}
	return CallAction(v.Bet.ToCall)
}

// randomLegal picks uniformly from the legal menu.
type randomLegal struct {
	rng *rand.Rand
}

func (r randomLegal) Decide(_ context.Context, v View) (Action, error) {
	va := v.Legal[r.rng.IntN(len(v.Legal))]
	amount := va.MinAmount
	if va.MaxAmount > va.MinAmount {
		amount += r.rng.IntN(va.MaxAmount - va.MinAmount + 1)
	}
	return Action{Kind: va.Kind, Amount: amount}, nil
}

// mustNotDecide fails the test if consulted.
func mustNotDecide(t *testing.T) Strategy {
	return StrategyFunc(func(context.Context, View) (Action, error) {
		t.Error("strategy consulted for a frozen seat")
		return NullAction(), nil
	})
}

// deal lists cards in dealing order: seat dealt first, the other seat,
// first seat again, the other seat, then five board cards.
func deal(hole0, hole1, board string) []poker.Card {
	a, b := poker.MustParseCards(hole0), poker.MustParseCards(hole1)
	order := []poker.Card{a[0], b[0], a[1], b[1]}
	return append(order, poker.MustParseCards(board)...)
}

func newTestTable(t *testing.T, s0, s1 Strategy, stacks [2]int, opts ...TableOption) *Table {
	t.Helper()
	p0 := NewPlayer(0, "alice", s0, stacks[0])
	p1 := NewPlayer(1, "bob", s1, stacks[1])
	return NewTable(randutil.New(1), p0, p1, opts...)
}
