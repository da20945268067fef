package game

import (
	"context"
	"fmt"

	"github.com/lox/headsup/poker"
)

// Player is the per-seat state of a heads-up table. The stack, cards and
// flags are written only by the table and by Play.
type Player struct {
	ID       int
	Name     string
	Stack    int
	Cards    []poker.Card
	IsDealer bool
	IsAllIn  bool

	strategy Strategy
}

// NewPlayer seats a player with the strategy that makes its decisions.
func NewPlayer(id int, name string, strategy Strategy, stack int) *Player {
	if id < 0 || id >= NumSeats {
		panic("player id must be 0 or 1")
	}
	if strategy == nil {
		panic("strategy is required for player creation")
	}
	if name == "" {
		name = fmt.Sprintf("seat%d", id)
	}
	return &Player{ID: id, Name: name, Stack: stack, strategy: strategy}
}

// Strategy returns the player's decision policy.
func (p *Player) Strategy() Strategy {
	return p.strategy
}

// Cash sets the stack to v unconditionally.
func (p *Player) Cash(v int) {
	p.Stack = v
	p.IsAllIn = v <= 0
}

// Reset clears the hand state. The stack is kept.
func (p *Player) Reset() {
	p.Cards = p.Cards[:0]
	p.IsDealer = false
	p.IsAllIn = p.Stack <= 0
}

// TableView is what the table tells a player when it is its turn.
type TableView struct {
	Hand          int
	Board         []poker.Card
	Pot           int
	Log           *ActionLog
	Round         Street
	OpponentStack int
	Blinds        Blinds
	Dealer        int
	Bet           BetContext
}

// Decision is the outcome of one Play call.
type Decision struct {
	Action    Action
	Requested Action
	Verdict   Verdict
	Reason    string
	Frozen    bool
}

// frozen reports whether the seat can make no decision this turn.
func (p *Player) frozen(tv TableView) bool {
	if p.IsAllIn || p.Stack <= 0 {
		return true
	}
	if tv.Log.AllInBefore(tv.Round) {
		return true
	}
	return tv.Bet.OpponentAllIn && tv.Bet.ToCall <= 0
}

// Play asks the strategy for a decision, authorizes it and debits the stack
// by the committed amount. A frozen seat gets a null action and the
// strategy is not consulted. The log is not modified.
func (p *Player) Play(ctx context.Context, tv TableView) (Decision, error) {
	if p.frozen(tv) {
		return Decision{Action: NullAction(), Requested: NullAction(), Frozen: true}, nil
	}

	v := View{
		Hand:          tv.Hand,
		Seat:          p.ID,
		Hole:          append([]poker.Card(nil), p.Cards...),
		Board:         append([]poker.Card(nil), tv.Board...),
		Pot:           tv.Pot,
		Log:           tv.Log.Clone(),
		Round:         tv.Round,
		Stack:         p.Stack,
		OpponentStack: tv.OpponentStack,
		Blinds:        tv.Blinds,
		Dealer:        tv.Dealer,
		Bet:           tv.Bet,
		Legal:         LegalActions(tv.Bet),
	}
	requested, err := p.strategy.Decide(ctx, v)
	if err != nil {
		return Decision{}, fmt.Errorf("seat %d (%s) decide: %w", p.ID, p.Name, err)
	}

	auth := Authorize(requested, tv.Bet)
	if auth.Verdict == Rejected {
		return Decision{}, fmt.Errorf("%w: seat %d (%s) %s: %s", ErrIllegalAction, p.ID, p.Name, requested, auth.Reason)
	}

	p.Stack -= auth.Action.Amount
	if p.Stack == 0 {
		p.IsAllIn = true
	}
	return Decision{
		Action:    auth.Action,
		Requested: requested,
		Verdict:   auth.Verdict,
		Reason:    auth.Reason,
	}, nil
}
