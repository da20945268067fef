package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/headsup/internal/match"
)

// PlayCmd runs matches from an HCL file or from flags.
type PlayCmd struct {
	Config     string `short:"c" type:"existingfile" help:"HCL match file; flags below are ignored when set"`
	Hands      int    `short:"n" default:"1000" help:"Hands per match"`
	Seed       int64  `default:"0" help:"RNG seed (0 for random)"`
	Stack      int    `default:"0" help:"Starting stack in chips (0 for 100 big blinds)"`
	SmallBlind int    `default:"10" help:"Small blind"`
	BigBlind   int    `default:"20" help:"Big blind"`
	Hero       string `default:"random" help:"Strategy for seat 0 (random, call, mirror, lagged, remote)"`
	Villain    string `default:"call" help:"Strategy for seat 1"`
	URL        string `help:"Agent URL for remote seats"`
	Timeout    string `default:"5s" help:"Per-decision timeout for remote seats"`
	Carry      bool   `help:"Carry stacks between hands and stop when a seat busts"`
	HistoryDir string `help:"Write PHH hand histories to this directory"`
	Repeat     int    `default:"1" help:"Play the match this many times with derived seeds"`
	Parallel   int    `default:"0" help:"Maximum matches in flight (0 for all)"`
}

func (cmd *PlayCmd) configs() ([]match.Config, error) {
	if cmd.Config != "" {
		return match.LoadConfig(cmd.Config)
	}

	seat := func(name, strategy string) match.SeatConfig {
		sc := match.SeatConfig{Name: name, Strategy: strategy}
		if strategy == "remote" {
			sc.URL, sc.Timeout = cmd.URL, cmd.Timeout
		}
		return sc
	}
	cfg := match.Config{
		Name:          "headsup",
		Hands:         cmd.Hands,
		Seed:          cmd.Seed,
		StartingStack: cmd.Stack,
		SmallBlind:    cmd.SmallBlind,
		BigBlind:      cmd.BigBlind,
		ResetStacks:   !cmd.Carry,
		HistoryDir:    cmd.HistoryDir,
		Seats:         []match.SeatConfig{seat("hero", cmd.Hero), seat("villain", cmd.Villain)},
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return match.Replicate(cfg, cmd.Repeat), nil
}

func (cmd *PlayCmd) Run(g *Globals) error {
	configs, err := cmd.configs()
	if err != nil {
		return err
	}
	logger := g.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting matches", "matches", len(configs), "parallel", cmd.Parallel)
	summaries, err := match.RunAll(ctx, configs, cmd.Parallel, match.WithLogger(logger))
	for _, s := range summaries {
		if s != nil {
			printSummary(os.Stdout, s)
		}
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return errors.New("interrupted")
	}
	if len(summaries) > 1 {
		printTotals(os.Stdout, summaries)
	}
	fmt.Println()
	return nil
}
