package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/headsup/internal/phh"
)

// HistoryCmd summarises a PHHS file written by "headsup play".
type HistoryCmd struct {
	File  string `arg:"" type:"existingfile" help:"Path to a .phhs file"`
	Hands bool   `help:"List every hand"`
	Limit int    `help:"Maximum number of hands to list (0 = all)"`
}

// loadHistory decodes a sectioned PHH file in section order.
func loadHistory(path string) ([]phh.HandHistory, error) {
	sections := make(map[string]phh.HandHistory)
	if _, err := toml.DecodeFile(filepath.Clean(path), &sections); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ai, errA := strconv.Atoi(keys[i])
		bi, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return ai < bi
		}
		return keys[i] < keys[j]
	})
	hands := make([]phh.HandHistory, 0, len(keys))
	for _, k := range keys {
		hands = append(hands, sections[k])
	}
	return hands, nil
}

type playerTotals struct {
	hands int
	won   int
	net   int
}

func (cmd *HistoryCmd) Run(_ *Globals) error {
	hands, err := loadHistory(cmd.File)
	if err != nil {
		return err
	}
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", cmd.File)
	}
	summariseHistory(os.Stdout, hands, cmd.Hands, cmd.Limit)
	return nil
}

func summariseHistory(w io.Writer, hands []phh.HandHistory, list bool, limit int) {
	totals := map[string]*playerTotals{}
	var order []string
	showdowns := 0

	if limit <= 0 || limit > len(hands) {
		limit = len(hands)
	}
	for i, h := range hands {
		net := make([]int, len(h.Players))
		for p, name := range h.Players {
			t, ok := totals[name]
			if !ok {
				t = &playerTotals{}
				totals[name] = t
				order = append(order, name)
			}
			if p < len(h.FinishingStacks) && p < len(h.StartingStacks) {
				net[p] = h.FinishingStacks[p] - h.StartingStacks[p]
			}
			t.hands++
			t.net += net[p]
			if net[p] > 0 {
				t.won++
			}
		}
		showdown := false
		for _, a := range h.Actions {
			if strings.Contains(a, " sm ") {
				showdown = true
				break
			}
		}
		if showdown {
			showdowns++
		}
		if list && i < limit {
			fmt.Fprintf(w, "%s\n", handLine(i+1, h, net, showdown))
		}
	}

	fmt.Fprintf(w, "\n%s\n", headerStyle.Render(fmt.Sprintf("=== %d hands, %d showdowns ===", len(hands), showdowns)))
	for _, name := range order {
		t := totals[name]
		fmt.Fprintf(w, "%s: %s chips, won %d of %d\n",
			nameStyle.Render(name), signed(float64(t.net), "%.0f"), t.won, t.hands)
	}
}

func handLine(n int, h phh.HandHistory, net []int, showdown bool) string {
	var dealt, board []string
	for _, a := range h.Actions {
		switch {
		case strings.HasPrefix(a, "d dh "):
			dealt = append(dealt, strings.TrimPrefix(a, "d dh "))
		case strings.HasPrefix(a, "d db "):
			board = append(board, strings.TrimPrefix(a, "d db "))
		}
	}
	result := "split"
	for p, v := range net {
		if v > 0 && p < len(h.Players) {
			result = fmt.Sprintf("%s +%d", h.Players[p], v)
		}
	}
	end := "fold"
	if showdown {
		end = "showdown"
	}
	return fmt.Sprintf("#%-4d %s | %s | %s (%s)", n,
		strings.Join(dealt, ", "), dimStyle.Render(strings.Join(board, " ")), result, end)
}
