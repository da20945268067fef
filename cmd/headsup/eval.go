package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

// EvalCmd evaluates one hand, or compares two with equity over the
// missing board cards.
type EvalCmd struct {
	Hands   []string `arg:"" help:"Hole cards, e.g. 'AhKh' or 'AhKh 7c7d'"`
	Board   string   `short:"b" help:"Community cards, e.g. 'Td7s8h'"`
	Samples int      `short:"s" default:"100000" help:"Monte Carlo runouts when the board is incomplete (0 = enumerate)"`
	Seed    int64    `default:"0" help:"RNG seed (0 for random)"`
}

func (cmd *EvalCmd) Run(g *Globals) error {
	var board []poker.Card
	if cmd.Board != "" {
		var err error
		if board, err = poker.ParseCards(cmd.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	var holes [][]poker.Card
	for i, h := range cmd.Hands {
		cards, err := poker.ParseCards(strings.ReplaceAll(h, " ", ""))
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		holes = append(holes, cards)
	}

	switch len(holes) {
	case 1:
		e, err := poker.EvaluateHand(holes[0], board)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", nameStyle.Render(poker.FormatCards(holes[0])+poker.FormatCards(board)), e.Label)
		fmt.Printf("%s\n", dimStyle.Render(fmt.Sprintf("class %s, strength %d", e.Class, e.Strength)))
		return nil
	case 2:
		return cmd.compare([2][]poker.Card{holes[0], holes[1]}, board, g)
	}
	return fmt.Errorf("need one or two hands, got %d", len(holes))
}

func (cmd *EvalCmd) compare(hands [2][]poker.Card, board []poker.Card, g *Globals) error {
	seed := randutil.Seed(cmd.Seed)
	g.Logger().Debug("Estimating equity", "samples", cmd.Samples, "seed", seed)

	res, err := poker.Equity(context.Background(), hands, board, cmd.Samples, seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s\n", headerStyle.Render("=== EQUITY ==="))
	if len(board) > 0 {
		fmt.Printf("Board: %s\n", poker.FormatCards(board))
	}
	for i, h := range hands {
		line := fmt.Sprintf("%s %s", nameStyle.Render(poker.FormatCards(h)),
			winStyle.Render(fmt.Sprintf("%6.2f%%", res.Equity(i)*100)))
		if len(board) == poker.BoardSize {
			if e, err := poker.EvaluateHand(h, board); err == nil {
				line += " " + e.Label
			}
		}
		fmt.Println(line)
	}
	fmt.Printf("%s\n", tieStyle.Render(fmt.Sprintf("Ties: %.2f%%", float64(res.Ties)/float64(max(res.Samples, 1))*100)))
	mode := "sampled"
	if res.Exact {
		mode = "exact"
	}
	fmt.Printf("%s\n", dimStyle.Render(fmt.Sprintf("%d runouts (%s)", res.Samples, mode)))
	return nil
}
