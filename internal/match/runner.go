// Package match runs heads-up matches: many hands between two strategies
// at one table, with statistics and optional hand histories.
package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/headsup/internal/fileutil"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/phh"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/statistics"
	"github.com/lox/headsup/internal/strategy"
)

// DefaultProgressEvery is how many hands pass between progress logs.
const DefaultProgressEvery = 1000

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock used for timestamps and durations.
func WithClock(c quartz.Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithLogger sets the logger. The table logs under the match name.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithStrategies seats the given strategies instead of building them from
// the seat configs.
func WithStrategies(s0, s1 game.Strategy) Option {
	return func(r *Runner) {
		r.strategies = [game.NumSeats]game.Strategy{s0, s1}
	}
}

// WithTableOptions passes extra options to the table.
func WithTableOptions(opts ...game.TableOption) Option {
	return func(r *Runner) {
		r.tableOpts = append(r.tableOpts, opts...)
	}
}

// WithProgressEvery logs progress every n hands; zero disables it.
func WithProgressEvery(n int) Option {
	return func(r *Runner) {
		r.progressEvery = n
	}
}

// Summary is the outcome of a match.
type Summary struct {
	Name        string
	Seed        int64
	Seats       [game.NumSeats]string
	Strategies  [game.NumSeats]string
	Hands       int
	Net         [game.NumSeats]int // chips
	Stacks      [game.NumSeats]int // at the end of the match
	Showdowns   int
	Busted      int  // seat that ran out of chips, or -1
	Stopped     bool // cancelled before all hands were played
	Stats       [game.NumSeats]*statistics.Statistics
	HistoryFile string
	Start       time.Time
	Duration    time.Duration
}

// Leader returns the seat ahead on chips, or -1 when even.
func (s *Summary) Leader() int {
	switch {
	case s.Net[0] > s.Net[1]:
		return 0
	case s.Net[1] > s.Net[0]:
		return 1
	}
	return -1
}

// Runner plays one match. It owns its table, so distinct runners may run
// concurrently.
type Runner struct {
	cfg           Config
	seed          int64
	clock         quartz.Clock
	logger        *log.Logger
	strategies    [game.NumSeats]game.Strategy
	tableOpts     []game.TableOption
	progressEvery int

	players [game.NumSeats]*game.Player
	table   *game.Table
	hands   []*phh.HandHistory
}

// NewRunner validates cfg and seats the players. A zero seed is replaced by
// a time-based one, reported in the Summary.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:           cfg,
		seed:          randutil.Seed(cfg.Seed),
		clock:         quartz.NewReal(),
		logger:        log.New(io.Discard),
		progressEvery: DefaultProgressEvery,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix(cfg.Name)

	for seat, sc := range cfg.Seats {
		if r.strategies[seat] != nil {
			continue
		}
		spec, err := sc.Spec()
		if err != nil {
			return nil, err
		}
		s, err := strategy.New(spec, r.seatRand(seat), r.logger.With("seat", sc.Name))
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", sc.Name, err)
		}
		r.strategies[seat] = s
	}

	for seat, sc := range cfg.Seats {
		r.players[seat] = game.NewPlayer(seat, sc.Name, r.strategies[seat], cfg.StartingStack)
	}
	tableOpts := append([]game.TableOption{
		game.WithBlinds(cfg.Blinds()),
		game.WithLogger(r.logger),
	}, r.tableOpts...)
	r.table = game.NewTable(randutil.New(r.seed), r.players[0], r.players[1], tableOpts...)
	return r, nil
}

func (r *Runner) seatRand(seat int) *rand.Rand {
	return randutil.New(randutil.Derive(r.seed, seat))
}

// Table returns the runner's table.
func (r *Runner) Table() *game.Table {
	return r.table
}

// Run plays up to cfg.Hands hands. It stops early when a seat busts (only
// possible without reset_stacks) or when ctx is cancelled; a cancelled
// match still returns its summary with Stopped set.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	s := &Summary{
		Name:   r.cfg.Name,
		Seed:   r.seed,
		Busted: -1,
		Start:  r.clock.Now(),
	}
	for seat, sc := range r.cfg.Seats {
		s.Seats[seat] = sc.Name
		s.Strategies[seat] = sc.Strategy
		s.Stats[seat] = &statistics.Statistics{}
	}
	r.hands = r.hands[:0]

	r.logger.Info("Match started",
		"hands", r.cfg.Hands, "seed", r.seed,
		"seats", fmt.Sprintf("%s (%s) vs %s (%s)", s.Seats[0], s.Strategies[0], s.Seats[1], s.Strategies[1]),
		"stack", r.cfg.StartingStack, "blinds", fmt.Sprintf("%d/%d", r.cfg.SmallBlind, r.cfg.BigBlind))

	for _, p := range r.players {
		p.Cash(r.cfg.StartingStack)
	}
	for i := 0; i < r.cfg.Hands; i++ {
		if ctx.Err() != nil {
			s.Stopped = true
			break
		}
		if r.cfg.ResetStacks {
			for _, p := range r.players {
				p.Cash(r.cfg.StartingStack)
			}
		}

		res, err := r.table.PlayHand(ctx)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				s.Stopped = true
				break
			}
			return s, fmt.Errorf("match %s: %w", r.cfg.Name, err)
		}
		r.record(s, res)

		if r.progressEvery > 0 && s.Hands%r.progressEvery == 0 {
			lo, hi := s.Stats[0].ConfidenceInterval95()
			r.logger.Info("Progress",
				"hands", s.Hands, "net", s.Net[0],
				"bb100", fmt.Sprintf("%.2f", s.Stats[0].BBPer100()),
				"ci95", fmt.Sprintf("[%.3f, %.3f]", lo, hi))
		}

		if !r.cfg.ResetStacks {
			if bust := r.bustSeat(); bust >= 0 {
				s.Busted = bust
				r.logger.Info("Player busted", "player", s.Seats[bust], "hand", s.Hands)
				break
			}
		}
	}

	for seat, p := range r.players {
		s.Stacks[seat] = p.Stack
	}
	s.Duration = r.clock.Since(s.Start)

	if s.Hands > 0 {
		if err := s.Stats[0].Validate(); err != nil {
			return s, fmt.Errorf("match %s statistics: %w", r.cfg.Name, err)
		}
	}
	if err := r.writeHistory(s); err != nil {
		return s, err
	}

	r.logger.Info("Match complete",
		"hands", s.Hands, "net", fmt.Sprintf("%d/%d", s.Net[0], s.Net[1]),
		"showdowns", s.Showdowns, "stopped", s.Stopped, "duration", s.Duration)
	return s, nil
}

func (r *Runner) record(s *Summary, res *game.HandResult) {
	s.Hands++
	for seat := range s.Net {
		s.Net[seat] += res.Net[seat]
		s.Stats[seat].Add(statistics.FromHand(res, seat))
	}
	if res.WentToShowdown() {
		s.Showdowns++
	}
	if r.cfg.HistoryDir != "" {
		r.hands = append(r.hands, phh.FromHand(res, r.cfg.Name, r.clock.Now()))
	}
}

func (r *Runner) bustSeat() int {
	for seat, p := range r.players {
		if p.Stack <= 0 {
			return seat
		}
	}
	return -1
}

func (r *Runner) writeHistory(s *Summary) error {
	path := r.cfg.HistoryFile()
	if path == "" || len(r.hands) == 0 {
		return nil
	}
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return phh.EncodeAll(w, r.hands)
	})
	if err != nil {
		return fmt.Errorf("write hand histories: %w", err)
	}
	s.HistoryFile = path
	r.logger.Debug("Hand histories written", "path", path, "hands", len(r.hands))
	return nil
}

// Close releases strategies that hold resources, such as remote agent
// connections.
func (r *Runner) Close() error {
	var errs []error
	for _, s := range r.strategies {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
