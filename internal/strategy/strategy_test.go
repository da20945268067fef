package strategy

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

var quiet = log.New(io.Discard)

// facingRaise is the big blind facing a raise to 60 with 200-chip stacks.
func facingRaise() game.View {
	l := game.NewActionLog()
	_ = l.Record(game.Preflop, 0, game.RaiseAction(50))
	bet := game.BetContext{ToCall: 40, Committed: 20, Stack: 180, OpponentStack: 140, MinRaise: 40, BigBlind: 20}
	return game.View{
		Seat: 1, Hole: poker.MustParseCards("AhKh"), Log: l, Round: game.Preflop,
		Stack: 180, OpponentStack: 140, Dealer: 1, Pot: 80, Blinds: game.DefaultBlinds,
		Bet: bet, Legal: game.LegalActions(bet),
	}
}

// checkedTo is the first decision on the flop.
func checkedTo() game.View {
	bet := game.BetContext{Stack: 160, OpponentStack: 160, MinRaise: 20, BigBlind: 20}
	return game.View{
		Seat: 0, Hole: poker.MustParseCards("7c7d"), Board: poker.MustParseCards("2s9hKd"),
		Log: game.NewActionLog(), Round: game.Flop, Stack: 160, OpponentStack: 160, Dealer: 1,
		Pot: 80, Blinds: game.DefaultBlinds, Bet: bet, Legal: game.LegalActions(bet),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	rng := randutil.New(1)
	for _, name := range []string{"random", "call", "mirror", "lagged", "Random"} {
		s, err := New(Spec{Name: name}, rng, nil)
		require.NoError(t, err, name)
		assert.NotNil(t, s)
	}

	s, err := New(Spec{Name: "remote", URL: "ws://localhost:1"}, rng, quiet)
	require.NoError(t, err)
	assert.IsType(t, &Remote{}, s)

	_, err = New(Spec{Name: "remote"}, rng, quiet)
	assert.Error(t, err)

	_, err = New(Spec{Name: "gto"}, rng, quiet)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestFit(t *testing.T) {
	t.Parallel()
	facing, open := facingRaise(), checkedTo()
	tests := []struct {
		name string
		view game.View
		want game.Action
		got  game.Action
	}{
		{"raise kept in range", facing, game.RaiseAction(100), game.RaiseAction(100)},
		{"raise lifted to minimum", facing, game.RaiseAction(10), game.RaiseAction(80)},
		{"bet becomes a raise", facing, game.BetAction(120), game.RaiseAction(120)},
		{"raise capped below all-in", facing, game.RaiseAction(500), game.RaiseAction(179)},
		{"all-in copied", facing, game.AllInAction(90), game.AllInAction(180)},
		{"check facing a raise calls", facing, game.CheckAction(), game.CallAction(40)},
		{"fold facing a raise", facing, game.FoldAction(), game.FoldAction()},
		{"fold when free checks", open, game.FoldAction(), game.CheckAction()},
		{"call when free checks", open, game.CallAction(40), game.CheckAction()},
		{"raise when unopened bets", open, game.RaiseAction(60), game.BetAction(60)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.got, fit(tt.view, tt.want))
		})
	}
}

func TestCall(t *testing.T) {
	t.Parallel()
	c := NewCall(quiet)
	a, err := c.Decide(context.Background(), facingRaise())
	require.NoError(t, err)
	assert.Equal(t, game.CallAction(40), a)

	a, err = c.Decide(context.Background(), checkedTo())
	require.NoError(t, err)
	assert.Equal(t, game.CheckAction(), a)
}

func TestRandomStaysOnMenu(t *testing.T) {
	t.Parallel()
	r := NewRandom(randutil.New(9), quiet)
	seen := map[game.ActionKind]bool{}
	for range 500 {
		v := facingRaise()
		a, err := r.Decide(context.Background(), v)
		require.NoError(t, err)
		auth := game.Authorize(a, v.Bet)
		require.Equal(t, game.Legal, auth.Verdict, "%v: %s", a, auth.Reason)
		seen[a.Kind] = true
	}
	assert.Len(t, seen, 4, "fold, call, raise and all-in all drawn")
	assert.Panics(t, func() { NewRandom(nil, quiet) })
}

func TestMirror(t *testing.T) {
	t.Parallel()
	m := NewMirror(quiet)

	a, err := m.Decide(context.Background(), facingRaise())
	require.NoError(t, err)
	assert.Equal(t, game.RaiseAction(80), a, "re-raise, lifted to the minimum")

	// nothing from the opponent yet: falls back to the previous round
	v := checkedTo()
	require.NoError(t, v.Log.Record(game.Preflop, 1, game.RaiseAction(60)))
	a, err = m.Decide(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, game.BetAction(60), a)

	a, err = m.Decide(context.Background(), checkedTo())
	require.NoError(t, err)
	assert.Equal(t, game.CheckAction(), a, "no history")
}

func TestLaggedReplaysPreviousHand(t *testing.T) {
	t.Parallel()
	l := NewLagged(quiet)

	a, err := l.Decide(context.Background(), checkedTo())
	require.NoError(t, err)
	assert.Equal(t, game.CheckAction(), a, "first hand has no memory")

	prev := game.NewActionLog()
	require.NoError(t, prev.Record(game.Flop, 1, game.BetAction(40)))
	require.NoError(t, prev.Record(game.Flop, 0, game.CallAction(40)))
	l.ObserveHand(&game.HandResult{Log: prev})

	a, err = l.Decide(context.Background(), checkedTo())
	require.NoError(t, err)
	assert.Equal(t, game.BetAction(40), a, "opponent's first flop action last hand")

	v := checkedTo()
	require.NoError(t, v.Log.Record(game.Flop, 0, game.CheckAction()))
	a, err = l.Decide(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, game.CheckAction(), a, "no second action to replay")
}

func TestStrategiesPlayFullHands(t *testing.T) {
	t.Parallel()
	rng := randutil.New(5)
	for _, names := range [][2]string{{"random", "mirror"}, {"lagged", "random"}, {"call", "mirror"}} {
		s0, err := New(Spec{Name: names[0]}, rng, quiet)
		require.NoError(t, err)
		s1, err := New(Spec{Name: names[1]}, rng, quiet)
		require.NoError(t, err)

		p0 := game.NewPlayer(0, names[0], s0, 200)
		p1 := game.NewPlayer(1, names[1], s1, 200)
		tbl := game.NewTable(rng, p0, p1)
		for range 100 {
			p0.Cash(200)
			p1.Cash(200)
			_, err := tbl.PlayHand(context.Background())
			require.NoError(t, err, "%s vs %s", names[0], names[1])
		}
	}
}
