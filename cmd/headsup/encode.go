package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/tensor"
	"github.com/lox/headsup/poker"
)

// EncodeCmd prints the tensors an agent would receive for a position.
type EncodeCmd struct {
	Hole    string   `required:"" help:"Hole cards of the acting seat, e.g. 'AhKh'"`
	Board   string   `short:"b" help:"Community cards (0, 3, 4 or 5)"`
	Action  []string `short:"a" help:"Logged action as round:seat:kind[:amount], e.g. 'preflop:0:raise:50' (repeatable)"`
	Seat    int      `default:"0" help:"Acting seat, placed first on the history seat axis"`
	Compact bool     `help:"Print JSON on one line"`
}

type encoded struct {
	Hole    tensor.HoleGrid  `json:"hole"`
	Board   tensor.BoardGrid `json:"board"`
	History tensor.History   `json:"history"`
}

func parseLogged(s string) (game.Street, int, game.Action, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return 0, 0, game.Action{}, fmt.Errorf("action %q: want round:seat:kind[:amount]", s)
	}
	round, err := game.ParseStreet(parts[0])
	if err != nil {
		return 0, 0, game.Action{}, err
	}
	seat, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, game.Action{}, fmt.Errorf("action %q: seat: %w", s, err)
	}
	kind, err := game.ParseActionKind(parts[2])
	if err != nil {
		return 0, 0, game.Action{}, err
	}
	a := game.Action{Kind: kind}
	if len(parts) == 4 {
		if a.Amount, err = strconv.Atoi(parts[3]); err != nil {
			return 0, 0, game.Action{}, fmt.Errorf("action %q: amount: %w", s, err)
		}
	}
	return round, seat, a, nil
}

func (cmd *EncodeCmd) encode() (*encoded, error) {
	hole, err := poker.ParseCards(cmd.Hole)
	if err != nil {
		return nil, fmt.Errorf("hole: %w", err)
	}
	var board []poker.Card
	if cmd.Board != "" {
		if board, err = poker.ParseCards(cmd.Board); err != nil {
			return nil, fmt.Errorf("board: %w", err)
		}
	}

	log := game.NewActionLog()
	for _, s := range cmd.Action {
		round, seat, a, err := parseLogged(s)
		if err != nil {
			return nil, err
		}
		if err := log.Record(round, seat, a); err != nil {
			return nil, fmt.Errorf("action %q: %w", s, err)
		}
	}

	var out encoded
	if out.Hole, err = tensor.EncodeHole(hole); err != nil {
		return nil, err
	}
	if out.Board, err = tensor.EncodeBoard(board); err != nil {
		return nil, err
	}
	if out.History, err = tensor.EncodeHistoryFrom(log, cmd.Seat); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cmd *EncodeCmd) Run(_ *Globals) error {
	out, err := cmd.encode()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	if !cmd.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
