package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/headsup/internal/game"
)

// HandResult represents the outcome of a single hand from one seat's view
type HandResult struct {
	NetBB          float64 // Net big blinds won/lost for the tracked seat
	Dealer         bool    // Tracked seat held the button (and posted the big blind)
	WentToShowdown bool    // Did hand go to showdown?
	Split          bool    // Showdown ended in a tie
	FinalPotSize   int     // Final pot size in chips
	BigBlind       int     // Big blind in chips, for pot sizes in bb
	StreetReached  string  // Street the hand ended on
}

// FromHand converts a finished hand to seat's HandResult.
func FromHand(r *game.HandResult, seat int) HandResult {
	bb := max(r.Blinds.Big, 1)
	return HandResult{
		NetBB:          float64(r.Net[seat]) / float64(bb),
		Dealer:         r.Dealer == seat,
		WentToShowdown: r.WentToShowdown(),
		Split:          r.WentToShowdown() && r.Showdown.Outcome == game.Split,
		FinalPotSize:   r.Pot(),
		BigBlind:       bb,
		StreetReached:  r.Street.String(),
	}
}

// PositionStats tracks statistics for one side of the button
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics tracks match statistics for one seat
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	// Detailed analytics - track ALL results, not just wins
	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won without showdown (fold equity)
	Splits          int     // Showdowns that tied
	ShowdownBB      float64 // BB from showdown (wins AND losses)
	NonShowdownBB   float64 // BB from fold equity (wins AND losses)
	AllBB           float64 // Total BB for sanity check

	// Index 0 is the non-dealer (small blind), 1 the dealer (big blind)
	PositionResults [2]PositionStats

	// Hands by the street they ended on
	Streets map[string]int

	// Pot size analytics
	MaxPotChips int     // Largest pot observed (in chips)
	MaxPotBB    float64 // Largest pot observed (in bb)
	BigPots     int     // Pots >= 50bb (high action hands)
	BigPotsBB   float64 // BB from big pots
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// BBPer100 returns the win rate in big blinds per hundred hands
func (s *Statistics) BBPer100() float64 {
	return s.Mean() * 100
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	// Track showdown vs non-showdown wins
	switch {
	case result.Split:
		s.Splits++
	case netBB > 0 && result.WentToShowdown:
		s.ShowdownWins++
	case netBB > 0:
		s.NonShowdownWins++
	}

	// Track ALL results (wins and losses) in appropriate buckets
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	pos := 0
	if result.Dealer {
		pos = 1
	}
	s.PositionResults[pos].Hands++
	s.PositionResults[pos].SumBB += netBB
	s.PositionResults[pos].SumBB2 += netBB * netBB

	if result.StreetReached != "" {
		if s.Streets == nil {
			s.Streets = make(map[string]int)
		}
		s.Streets[result.StreetReached]++
	}

	potChips := result.FinalPotSize
	potBB := float64(potChips) / float64(max(result.BigBlind, 1))
	if potChips > s.MaxPotChips {
		s.MaxPotChips = potChips
		s.MaxPotBB = potBB
	}

	// Track big pots (>= 50bb)
	if potBB >= 50 {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result as dealer (true) or non-dealer
func (s *Statistics) PositionMean(dealer bool) float64 {
	ps := s.PositionResults[0]
	if dealer {
		ps = s.PositionResults[1]
	}
	if ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	totalWins := s.ShowdownWins + s.NonShowdownWins + s.Splits
	if totalWins > s.Hands {
		return fmt.Errorf("total wins and splits (%d) exceed total hands (%d)", totalWins, s.Hands)
	}

	if n := s.PositionResults[0].Hands + s.PositionResults[1].Hands; n != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", n, s.Hands)
	}

	return nil
}
