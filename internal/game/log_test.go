package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionLogRecord(t *testing.T) {
	t.Parallel()
	l := NewActionLog()
	require.NoError(t, l.Record(Preflop, 0, RaiseAction(50)))
	require.NoError(t, l.Record(Preflop, 1, CallAction(40)))
	require.NoError(t, l.Record(Flop, 0, BetAction(30)))

	last, ok := l.Last(Preflop, 1)
	require.True(t, ok)
	assert.Equal(t, CallAction(40), last)

	_, ok = l.Last(Turn, 0)
	assert.False(t, ok)

	latest, ok := l.Latest(Preflop)
	require.True(t, ok)
	assert.Equal(t, 1, latest.Seat)

	assert.Equal(t, 1, l.Count(Flop, 0))
	assert.Equal(t, 50, l.RoundTotal(Preflop, 0))
	assert.Equal(t, 80, l.Total(0))
	assert.Equal(t, 40, l.Total(1))
	assert.Equal(t, 3, l.Len())
	assert.Len(t, l.Round(Preflop), 2)
}

func TestActionLogRejectsBadSlots(t *testing.T) {
	t.Parallel()
	l := NewActionLog()
	assert.True(t, errors.Is(l.Record(Showdown, 0, CheckAction()), ErrInvalidRound))
	assert.True(t, errors.Is(l.Record(Flop, 2, CheckAction()), ErrInvalidSeat))
	assert.Zero(t, l.Len())
	assert.Nil(t, l.Actions(Flop, -1))
}

func TestActionLogCloneIsIndependent(t *testing.T) {
	t.Parallel()
	l := NewActionLog()
	require.NoError(t, l.Record(Preflop, 0, CallAction(10)))

	c := l.Clone()
	require.NoError(t, c.Record(Preflop, 1, CheckAction()))
	acts := c.Actions(Preflop, 0)
	acts[0] = FoldAction()

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, l.Count(Preflop, 1))
	assert.Equal(t, CallAction(10), l.Actions(Preflop, 0)[0])
	assert.Equal(t, 2, c.Len())
}

func TestActionLogAllInBefore(t *testing.T) {
	t.Parallel()
	l := NewActionLog()
	require.NoError(t, l.Record(Flop, 0, AllInAction(150)))
	assert.False(t, l.AllInBefore(Preflop))
	assert.False(t, l.AllInBefore(Flop))
	assert.True(t, l.AllInBefore(Turn))
	assert.True(t, l.AllInBefore(River))

	l.Reset()
	assert.Zero(t, l.Len())
	assert.False(t, l.AllInBefore(River))
}
