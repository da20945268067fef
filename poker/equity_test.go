package poker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pair(a, b string) [2][]Card {
	return [2][]Card{MustParseCards(a), MustParseCards(b)}
}

func TestEquityRiver(t *testing.T) {
	t.Parallel()
	r, err := Equity(context.Background(), pair("AhAd", "KcKs"), MustParseCards("2h7c9d3sJh"), 1000, 1)
	require.NoError(t, err)
	assert.True(t, r.Exact)
	assert.Equal(t, 1, r.Samples)
	assert.Equal(t, [2]int{1, 0}, r.Wins)
	assert.Equal(t, 1.0, r.Equity(0))
}

func TestEquityTurnEnumerates(t *testing.T) {
	t.Parallel()
	r, err := Equity(context.Background(), pair("AhAd", "KcKs"), MustParseCards("2h7c9d3s"), 1000, 1)
	require.NoError(t, err)
	assert.True(t, r.Exact)
	assert.Equal(t, 44, r.Samples)
	assert.Equal(t, [2]int{42, 2}, r.Wins, "two kings left")
	assert.Zero(t, r.Ties)
	assert.InDelta(t, 2.0/44, r.Equity(1), 1e-9)
}

func TestEquitySplitBoard(t *testing.T) {
	t.Parallel()
	r, err := Equity(context.Background(), pair("2c3d", "4h5s"), MustParseCards("AsKsQsJsTs"), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Ties)
	assert.Equal(t, 0.5, r.Equity(0))
	assert.Equal(t, 0.5, r.Equity(1))
}

func TestEquityPreflopSamples(t *testing.T) {
	t.Parallel()
	r, err := Equity(context.Background(), pair("AhAd", "KcKs"), nil, 20000, 42)
	require.NoError(t, err)
	assert.False(t, r.Exact)
	assert.Equal(t, 20000, r.Samples)
	assert.Equal(t, r.Samples, r.Wins[0]+r.Wins[1]+r.Ties)
	assert.InDelta(t, 0.82, r.Equity(0), 0.03)
	assert.InDelta(t, 1.0, r.Equity(0)+r.Equity(1), 1e-9)

	again, err := Equity(context.Background(), pair("AhAd", "KcKs"), nil, 20000, 42)
	require.NoError(t, err)
	assert.Equal(t, r, again, "seeded runs repeat")
}

func TestEquityErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := Equity(ctx, pair("AhAd", "AhKs"), nil, 100, 1)
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = Equity(ctx, pair("AhAd", "KcKs"), MustParseCards("Ad2c3c"), 100, 1)
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = Equity(ctx, [2][]Card{MustParseCards("AhAdAc"), MustParseCards("KcKs")}, nil, 100, 1)
	assert.ErrorIs(t, err, ErrInvalidCardCount)

	_, err = Equity(ctx, pair("AhAd", "KcKs"), MustParseCards("2c3c4c5c6c7c"), 100, 1)
	assert.ErrorIs(t, err, ErrInvalidCardCount)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Equity(cancelled, pair("AhAd", "KcKs"), nil, 20000, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBinomial(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, binomial(44, 0))
	assert.Equal(t, 44, binomial(44, 1))
	assert.Equal(t, 990, binomial(45, 2))
	assert.Equal(t, 1712304, binomial(48, 5))
	assert.Zero(t, binomial(3, 5))
}
