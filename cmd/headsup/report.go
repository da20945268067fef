package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/headsup/internal/match"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	loseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tieStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func signed(v float64, format string) string {
	s := fmt.Sprintf(format, v)
	switch {
	case v > 0:
		return winStyle.Render("+" + s)
	case v < 0:
		return loseStyle.Render(s)
	}
	return tieStyle.Render(s)
}

func printSummary(w io.Writer, s *match.Summary) {
	stats := s.Stats[0]
	fmt.Fprintf(w, "\n%s\n", headerStyle.Render(fmt.Sprintf("=== %s: %s (%s) vs %s (%s) ===",
		s.Name, s.Seats[0], s.Strategies[0], s.Seats[1], s.Strategies[1])))
	fmt.Fprintf(w, "Hands played: %d (seed %d)\n", s.Hands, s.Seed)
	if s.Hands > 0 && s.Duration > 0 {
		fmt.Fprintf(w, "Total time: %v, %.1f hands/sec\n",
			s.Duration.Round(time.Millisecond), float64(s.Hands)/s.Duration.Seconds())
	}
	switch {
	case s.Stopped:
		fmt.Fprintln(w, tieStyle.Render("Stopped before the last hand"))
	case s.Busted >= 0:
		fmt.Fprintf(w, "%s busted\n", nameStyle.Render(s.Seats[s.Busted]))
	}
	if s.Hands == 0 {
		return
	}

	for seat, name := range s.Seats {
		fmt.Fprintf(w, "%s: %s chips, %s bb/100\n", nameStyle.Render(name),
			signed(float64(s.Net[seat]), "%.0f"), signed(s.Stats[seat].BBPer100(), "%.2f"))
	}

	low, high := stats.ConfidenceInterval95()
	fmt.Fprintf(w, "\n%s %s\n", headerStyle.Render("Results for"), nameStyle.Render(s.Seats[0]))
	fmt.Fprintf(w, "Mean: %.4f bb/hand, median %.4f\n", stats.Mean(), stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f bb, Std Error: %.4f bb\n", stats.StdDev(), stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "Wins: %d at showdown, %d without, %d split pots (%d showdowns)\n",
		stats.ShowdownWins, stats.NonShowdownWins, stats.Splits, s.Showdowns)
	fmt.Fprintf(w, "Showdown: %.3f bb/hand, non-showdown: %.3f bb/hand\n",
		stats.ShowdownBB/float64(stats.Hands), stats.NonShowdownBB/float64(stats.Hands))
	fmt.Fprintf(w, "Dealer: %.3f bb/hand, non-dealer: %.3f bb/hand\n",
		stats.PositionMean(true), stats.PositionMean(false))
	fmt.Fprintf(w, "Max pot: %d chips (%.1f bb), big pots (>=50bb): %d\n",
		stats.MaxPotChips, stats.MaxPotBB, stats.BigPots)
	if s.HistoryFile != "" {
		fmt.Fprintf(w, "%s\n", dimStyle.Render("Hand histories: "+s.HistoryFile))
	}
}

func printTotals(w io.Writer, summaries []*match.Summary) {
	var hands int
	var net [2]int
	for _, s := range summaries {
		if s == nil {
			continue
		}
		hands += s.Hands
		net[0] += s.Net[0]
		net[1] += s.Net[1]
	}
	fmt.Fprintf(w, "\n%s\n", headerStyle.Render(fmt.Sprintf("=== TOTAL over %d matches ===", len(summaries))))
	fmt.Fprintf(w, "Hands played: %d\n", hands)
	fmt.Fprintf(w, "Net chips: %s / %s\n", signed(float64(net[0]), "%.0f"), signed(float64(net[1]), "%.0f"))
}
