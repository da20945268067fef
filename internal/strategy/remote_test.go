package strategy

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/tensor"
)

func agentServer(t *testing.T, decide DecideFunc) string {
	t.Helper()
	srv := httptest.NewServer(NewAgentHandler(decide, quiet))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestRemoteDecide(t *testing.T) {
	t.Parallel()
	seen := make(chan tensor.Observation, 3)
	url := agentServer(t, func(_ context.Context, obs tensor.Observation) (game.Action, error) {
		seen <- obs
		return game.RaiseAction(100), nil
	})

	r := NewRemote(url, quiet)
	defer r.Close()

	for range 3 {
		a, err := r.Decide(context.Background(), facingRaise())
		require.NoError(t, err)
		assert.Equal(t, game.RaiseAction(100), a)
	}
	got := <-seen
	assert.Equal(t, 1, got.Seat)
	assert.Equal(t, 40, got.ToCall)
	assert.Equal(t, 2, got.Hole.Count())
	assert.Equal(t, float32(50), got.History[game.Preflop][0][3][1], "opponent raise in the second seat column")
	assert.Len(t, got.Legal, 4)
}

func TestRemoteAgentError(t *testing.T) {
	t.Parallel()
	url := agentServer(t, func(context.Context, tensor.Observation) (game.Action, error) {
		return game.Action{}, errors.New("model not loaded")
	})
	r := NewRemote(url, quiet)
	defer r.Close()

	_, err := r.Decide(context.Background(), facingRaise())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAgent))
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestRemoteTimeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	url := agentServer(t, func(context.Context, tensor.Observation) (game.Action, error) {
		<-release
		return game.CheckAction(), nil
	})
	t.Cleanup(func() { close(release) })

	r := NewRemote(url, quiet, WithTimeout(50*time.Millisecond))
	defer r.Close()

	start := time.Now()
	_, err := r.Decide(context.Background(), facingRaise())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRemoteCancelled(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	url := agentServer(t, func(context.Context, tensor.Observation) (game.Action, error) {
		<-release
		return game.CheckAction(), nil
	})
	t.Cleanup(func() { close(release) })

	r := NewRemote(url, quiet)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	_, err := r.Decide(ctx, facingRaise())
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestRemoteDialFailure(t *testing.T) {
	t.Parallel()
	r := NewRemote("ws://127.0.0.1:1/", quiet)
	_, err := r.Decide(context.Background(), facingRaise())
	assert.Error(t, err)
}

func TestRemotePlaysHands(t *testing.T) {
	t.Parallel()
	url := agentServer(t, PassiveAgent)
	remote := NewRemote(url, quiet)
	defer remote.Close()

	rng := randutil.New(21)
	p0 := game.NewPlayer(0, "agent", remote, 200)
	p1 := game.NewPlayer(1, "random", NewRandom(rng, quiet), 200)
	tbl := game.NewTable(rng, p0, p1)
	for range 25 {
		p0.Cash(200)
		p1.Cash(200)
		res, err := tbl.PlayHand(context.Background())
		require.NoError(t, err)
		assert.NotEqual(t, 0, res.Folded, "a passive agent never folds")
	}
}
