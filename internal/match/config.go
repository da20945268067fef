package match

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/strategy"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid match config")

// File is the top level of a match config file.
type File struct {
	Matches []Config `hcl:"match,block"`
}

// Config describes one heads-up match.
//
//	match "smoke" {
//	  hands          = 1000
//	  seed           = 42
//	  starting_stack = 2000
//	  small_blind    = 10
//	  big_blind      = 20
//	  reset_stacks   = true
//	  history_dir    = "hands"
//
//	  seat "hero" {
//	    strategy = "remote"
//	    url      = "ws://localhost:8765/"
//	    timeout  = "2s"
//	  }
//	  seat "villain" {
//	    strategy = "random"
//	  }
//	}
type Config struct {
	Name          string       `hcl:"name,label"`
	Hands         int          `hcl:"hands,optional"`
	Seed          int64        `hcl:"seed,optional"`
	StartingStack int          `hcl:"starting_stack,optional"`
	SmallBlind    int          `hcl:"small_blind,optional"`
	BigBlind      int          `hcl:"big_blind,optional"`
	ResetStacks   bool         `hcl:"reset_stacks,optional"` // re-cash both seats before every hand
	HistoryDir    string       `hcl:"history_dir,optional"`
	Seats         []SeatConfig `hcl:"seat,block"`
}

// SeatConfig binds a seat to a strategy.
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	URL      string `hcl:"url,optional"`
	Timeout  string `hcl:"timeout,optional"`
}

const (
	DefaultHands    = 1000
	DefaultStrategy = "random"
	// DefaultStackBB is the starting stack in big blinds.
	DefaultStackBB = 100
)

// DefaultConfig returns a random-vs-random match with re-cashed stacks.
func DefaultConfig() Config {
	cfg := Config{
		Name:        "default",
		ResetStacks: true,
		Seats: []SeatConfig{
			{Name: "seat0", Strategy: DefaultStrategy},
			{Name: "seat1", Strategy: DefaultStrategy},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Hands == 0 {
		c.Hands = DefaultHands
	}
	if c.SmallBlind == 0 && c.BigBlind == 0 {
		c.SmallBlind = game.DefaultBlinds.Small
		c.BigBlind = game.DefaultBlinds.Big
	}
	if c.StartingStack == 0 {
		c.StartingStack = c.BigBlind * DefaultStackBB
	}
	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = DefaultStrategy
		}
		if c.Seats[i].Name == "" {
			c.Seats[i].Name = fmt.Sprintf("seat%d", i)
		}
	}
}

// Validate checks the match can be played.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: match needs a name", ErrInvalidConfig)
	}
	if c.Hands < 1 {
		return fmt.Errorf("%w: %s: hands must be positive, got %d", ErrInvalidConfig, c.Name, c.Hands)
	}
	if c.SmallBlind < 1 || c.BigBlind < c.SmallBlind {
		return fmt.Errorf("%w: %s: invalid blinds %d/%d", ErrInvalidConfig, c.Name, c.SmallBlind, c.BigBlind)
	}
	if c.StartingStack < c.BigBlind {
		return fmt.Errorf("%w: %s: starting stack %d below the big blind", ErrInvalidConfig, c.Name, c.StartingStack)
	}
	if len(c.Seats) != game.NumSeats {
		return fmt.Errorf("%w: %s: need exactly %d seats, got %d", ErrInvalidConfig, c.Name, game.NumSeats, len(c.Seats))
	}
	if c.Seats[0].Name == c.Seats[1].Name {
		return fmt.Errorf("%w: %s: duplicate seat name %q", ErrInvalidConfig, c.Name, c.Seats[0].Name)
	}
	for _, s := range c.Seats {
		if _, err := s.Spec(); err != nil {
			return fmt.Errorf("%w: %s: seat %s: %v", ErrInvalidConfig, c.Name, s.Name, err)
		}
	}
	return nil
}

// Blinds returns the configured blinds.
func (c *Config) Blinds() game.Blinds {
	return game.Blinds{Small: c.SmallBlind, Big: c.BigBlind}
}

// HistoryFile returns the PHHS path for the match, or "" if histories
// are not written.
func (c *Config) HistoryFile() string {
	if c.HistoryDir == "" {
		return ""
	}
	return filepath.Join(c.HistoryDir, c.Name+".phhs")
}

// Spec converts the seat to a strategy spec.
func (s SeatConfig) Spec() (strategy.Spec, error) {
	spec := strategy.Spec{Name: strings.ToLower(s.Strategy), URL: s.URL}
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return spec, fmt.Errorf("invalid timeout: %w", err)
		}
		spec.Timeout = d
	}
	if !slices.Contains(strategy.Names, spec.Name) {
		return spec, fmt.Errorf("%w %q", strategy.ErrUnknownStrategy, spec.Name)
	}
	if spec.Name == "remote" && spec.URL == "" {
		return spec, fmt.Errorf("remote strategy needs a url")
	}
	return spec, nil
}

// Replicate returns n copies of cfg with derived seeds and numbered names,
// for running the same pairing as independent matches.
func Replicate(cfg Config, n int) []Config {
	if n <= 1 {
		return []Config{cfg}
	}
	seed := randutil.Seed(cfg.Seed)
	out := make([]Config, n)
	for i := range out {
		c := cfg
		c.Seats = append([]SeatConfig(nil), cfg.Seats...)
		c.Name = fmt.Sprintf("%s-%d", cfg.Name, i+1)
		c.Seed = randutil.Derive(seed, i)
		out[i] = c
	}
	return out
}

// LoadConfig loads match configurations from an HCL file.
func LoadConfig(filename string) ([]Config, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source, applies defaults and validates every match.
func ParseConfig(src []byte, filename string) ([]Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if len(f.Matches) == 0 {
		return nil, fmt.Errorf("%w: %s has no match blocks", ErrInvalidConfig, filename)
	}

	seen := make(map[string]bool, len(f.Matches))
	for i := range f.Matches {
		m := &f.Matches[i]
		m.ApplyDefaults()
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("%w: duplicate match name %q", ErrInvalidConfig, m.Name)
		}
		seen[m.Name] = true
	}
	return f.Matches, nil
}
