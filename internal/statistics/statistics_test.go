package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Error(t, stats.Validate())
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{
		NetBB:          2.5,
		Dealer:         true,
		WentToShowdown: true,
		FinalPotSize:   100,
		BigBlind:       20,
		StreetReached:  "showdown",
	})

	assert.Equal(t, 1, stats.Hands)
	assert.Equal(t, 2.5, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Equal(t, 2.5, stats.Median())
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Zero(t, stats.NonShowdownWins)
	assert.Equal(t, 1, stats.Streets["showdown"])
	assert.True(t, stats.IsLedgerBalanced())
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	results := []HandResult{
		{NetBB: 1.0, Dealer: false, FinalPotSize: 4},
		{NetBB: -2.0, Dealer: true, WentToShowdown: true, FinalPotSize: 8},
		{NetBB: 3.0, Dealer: false, WentToShowdown: true, FinalPotSize: 12},
		{NetBB: 0.0, Dealer: true, WentToShowdown: true, Split: true, FinalPotSize: 2},
		{NetBB: -1.0, Dealer: true, FinalPotSize: 6},
	}
	for _, result := range results {
		stats.Add(result)
	}

	assert.Equal(t, 5, stats.Hands)
	assert.InDelta(t, 0.2, stats.Mean(), 1e-9)

	// sorted values: -2, -1, 0, 1, 3
	assert.Zero(t, stats.Median())

	assert.Equal(t, 1, stats.ShowdownWins, "only the +3.0 hand")
	assert.Equal(t, 1, stats.NonShowdownWins, "only the +1.0 hand")
	assert.Equal(t, 1, stats.Splits)
	assert.InDelta(t, 1.0, stats.ShowdownBB, 1e-9)
	assert.InDelta(t, 0.0, stats.NonShowdownBB, 1e-9)

	assert.Equal(t, 2, stats.PositionResults[0].Hands)
	assert.Equal(t, 3, stats.PositionResults[1].Hands)
	assert.True(t, stats.IsLedgerBalanced())
	require.NoError(t, stats.Validate())
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
		{0.1, 1.4},
	}
	for _, test := range tests {
		assert.InDelta(t, test.expected, stats.Percentile(test.percentile), 1e-9, "percentile %.2f", test.percentile)
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	low, high := stats.ConfidenceInterval95()
	assert.InDelta(t, stats.Mean(), (low+high)/2, 1e-9, "symmetric around the mean")
	assert.Greater(t, high-low, 0.0)
	assert.InDelta(t, 1.96*stats.StdError(), high-stats.Mean(), 1e-9)
	assert.InDelta(t, 300.0, stats.BBPer100(), 1e-9)
}

func TestStatistics_PositionAnalysis(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.0, Dealer: true})
	stats.Add(HandResult{NetBB: 3.0, Dealer: true})
	stats.Add(HandResult{NetBB: -1.0})
	stats.Add(HandResult{NetBB: 1.0})

	assert.InDelta(t, 2.5, stats.PositionMean(true), 1e-9)
	assert.InDelta(t, 0.0, stats.PositionMean(false), 1e-9)

	empty := &Statistics{}
	assert.Zero(t, empty.PositionMean(true))
}

func TestStatistics_PotSizeTracking(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1.0, FinalPotSize: 200, BigBlind: 20})  // 10bb pot
	stats.Add(HandResult{NetBB: 5.0, FinalPotSize: 2000, BigBlind: 20}) // 100bb pot (big pot)
	stats.Add(HandResult{NetBB: -1.0, FinalPotSize: 40, BigBlind: 20})  // 2bb pot

	assert.Equal(t, 2000, stats.MaxPotChips)
	assert.InDelta(t, 100.0, stats.MaxPotBB, 1e-9)
	assert.Equal(t, 1, stats.BigPots)
	assert.InDelta(t, 5.0, stats.BigPotsBB, 1e-9)
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}

	// sample variance of [1, 3, 5] is 4
	for _, v := range []float64{1, 3, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	assert.InDelta(t, 4.0, stats.Variance(), 1e-9)
	assert.InDelta(t, 2.0, stats.StdDev(), 1e-9)
}

func TestStatistics_Validate(t *testing.T) {
	tests := []struct {
		name  string
		stats Statistics
		want  string
	}{
		{
			name: "ledger mismatch",
			stats: Statistics{
				Hands: 1, Values: []float64{1.0},
				AllBB: 1.0, ShowdownBB: 0.5, NonShowdownBB: 0.6,
				PositionResults: [2]PositionStats{{Hands: 1}},
			},
			want: "ledger mismatch",
		},
		{
			name:  "invalid hands count",
			stats: Statistics{},
			want:  "invalid hands count",
		},
		{
			name: "values mismatch",
			stats: Statistics{
				Hands: 2, Values: []float64{1.0},
				AllBB: 1.0, NonShowdownBB: 1.0,
			},
			want: "values array length",
		},
		{
			name: "too many wins",
			stats: Statistics{
				Hands: 2, Values: []float64{1.0, 1.0},
				AllBB: 2.0, ShowdownBB: 1.0, NonShowdownBB: 1.0,
				ShowdownWins: 2, NonShowdownWins: 1,
				PositionResults: [2]PositionStats{{Hands: 1}, {Hands: 1}},
			},
			want: "exceed total hands",
		},
		{
			name: "position mismatch",
			stats: Statistics{
				Hands: 2, Values: []float64{1.0, 1.0},
				AllBB: 2.0, ShowdownBB: 1.0, NonShowdownBB: 1.0,
				PositionResults: [2]PositionStats{{Hands: 1}},
			},
			want: "position hands total",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFromHand(t *testing.T) {
	folded := &game.HandResult{
		Dealer:        1,
		Blinds:        game.DefaultBlinds,
		Contributions: [2]int{10, 20},
		Net:           [2]int{-10, 10},
		Street:        game.Preflop,
		Folded:        0,
	}
	r0 := FromHand(folded, 0)
	assert.InDelta(t, -0.5, r0.NetBB, 1e-9)
	assert.False(t, r0.Dealer)
	assert.False(t, r0.WentToShowdown)
	assert.Equal(t, 30, r0.FinalPotSize)
	assert.Equal(t, "preflop", r0.StreetReached)

	r1 := FromHand(folded, 1)
	assert.InDelta(t, 0.5, r1.NetBB, 1e-9)
	assert.True(t, r1.Dealer)

	split := &game.HandResult{
		Dealer:        0,
		Blinds:        game.DefaultBlinds,
		Contributions: [2]int{200, 200},
		Street:        game.Showdown,
		Folded:        -1,
		Showdown:      &game.Showdown{Outcome: game.Split},
	}
	rs := FromHand(split, 0)
	assert.True(t, rs.WentToShowdown)
	assert.True(t, rs.Split)
	assert.Equal(t, 400, rs.FinalPotSize)

	var stats Statistics
	stats.Add(r0)
	stats.Add(rs)
	assert.Equal(t, 1, stats.Splits)
	assert.Zero(t, stats.ShowdownWins+stats.NonShowdownWins)
	require.NoError(t, stats.Validate())
}
