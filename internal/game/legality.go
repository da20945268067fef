package game

import (
	"errors"
	"fmt"
)

// MaxActionsPerRound caps the actions a seat may take in one betting round.
// A seat on its last slot may call, check or fold but not reopen the betting.
const MaxActionsPerRound = 6

// ErrIllegalAction is returned when a strategy decision cannot be made legal.
var ErrIllegalAction = errors.New("illegal action")

// Verdict classifies a decision checked by Authorize.
type Verdict uint8

const (
	// Legal decisions are applied unchanged.
	Legal Verdict = iota
	// Clipped decisions were adjusted to the nearest legal action.
	Clipped
	// Rejected decisions have no legal counterpart.
	Rejected
)

func (v Verdict) String() string {
	return [...]string{"legal", "clipped", "rejected"}[v]
}

// BetContext is the wagering situation of the seat about to act.
type BetContext struct {
	ToCall           int  `json:"to_call"`
	Committed        int  `json:"committed"` // chips put in this round, blinds included
	Stack            int  `json:"stack"`
	OpponentStack    int  `json:"opponent_stack"`
	OpponentAllIn    bool `json:"opponent_all_in"`
	MinRaise         int  `json:"min_raise"`
	BigBlind         int  `json:"big_blind"`
	ActionsThisRound int  `json:"actions_this_round"`
}

// facingWager reports whether anyone has put chips in this round, in which
// case aggression is a raise rather than a bet.
func (c BetContext) facingWager() bool {
	return c.Committed+c.ToCall > 0
}

func (c BetContext) lastSlot() bool {
	return c.ActionsThisRound >= MaxActionsPerRound-1
}

func (c BetContext) canAggress() bool {
	return !c.lastSlot() && !c.OpponentAllIn && c.OpponentStack > 0 && c.Stack > c.ToCall
}

// minWager is the smallest amount that makes a full bet or raise.
func (c BetContext) minWager() int {
	if c.facingWager() {
		return c.ToCall + max(c.MinRaise, c.BigBlind)
	}
	return c.BigBlind
}

// passive is the call or check the seat falls back to.
func (c BetContext) passive() Action {
	if c.ToCall <= 0 {
		return CheckAction()
	}
	return CallAction(min(c.ToCall, c.Stack))
}

// Authorization is the outcome of checking one decision.
type Authorization struct {
	Verdict Verdict `json:"verdict"`
	Action  Action  `json:"action"`
	Reason  string  `json:"reason,omitempty"`
}

func judge(requested, applied Action, reason string) Authorization {
	if requested == applied {
		return Authorization{Verdict: Legal, Action: applied}
	}
	return Authorization{Verdict: Clipped, Action: applied, Reason: reason}
}

func reject(format string, args ...any) Authorization {
	return Authorization{Verdict: Rejected, Reason: fmt.Sprintf(format, args...)}
}

// Authorize checks a against the betting context and returns the action
// that should be applied.
func Authorize(a Action, c BetContext) Authorization {
	if a.Amount < 0 {
		return reject("negative amount %d", a.Amount)
	}
	switch a.Kind {
	case Fold:
		return judge(a, FoldAction(), "")
	case Check:
		if c.ToCall > 0 {
			return reject("cannot check facing %d", c.ToCall)
		}
		return judge(a, CheckAction(), "")
	case Call:
		if c.ToCall <= 0 {
			return judge(a, CheckAction(), "nothing to call")
		}
		return judge(a, c.passive(), "call is the amount owed")
	case Bet, Raise, AllIn:
		return authorizeWager(a, c)
	case Null:
		return reject("null is not a decision")
	}
	return reject("unknown action kind %d", a.Kind)
}

func authorizeWager(a Action, c BetContext) Authorization {
	if !c.canAggress() {
		if c.Stack <= c.ToCall && c.ToCall > 0 {
			return judge(a, CallAction(c.Stack), "stack covers only a call")
		}
		return judge(a, c.passive(), "betting cannot be reopened")
	}

	amount := a.Amount
	if a.Kind == AllIn {
		amount = c.Stack
	}
	if amount >= c.Stack {
		return judge(a, AllInAction(c.Stack), "wager exceeds stack")
	}
	if amount < c.minWager() {
		amount = c.minWager()
		if amount >= c.Stack {
			return judge(a, AllInAction(c.Stack), "minimum wager needs the whole stack")
		}
	}
	if c.facingWager() {
		return judge(a, RaiseAction(amount), "normalised to a raise")
	}
	return judge(a, BetAction(amount), "normalised to a bet")
}

// ValidAction represents an action that a player can legally take
type ValidAction struct {
	Kind      ActionKind `json:"kind"`
	MinAmount int        `json:"min_amount"`
	MaxAmount int        `json:"max_amount"`
}

// LegalActions returns the menu of actions available in c. Amounts are
// chips committed by the action.
func LegalActions(c BetContext) []ValidAction {
	if c.Stack <= 0 {
		return nil
	}
	actions := []ValidAction{{Kind: Fold}}
	passive := c.passive()
	actions = append(actions, ValidAction{Kind: passive.Kind, MinAmount: passive.Amount, MaxAmount: passive.Amount})
	if !c.canAggress() {
		return actions
	}

	lo := c.minWager()
	if lo < c.Stack {
		kind := Bet
		if c.facingWager() {
			kind = Raise
		}
		actions = append(actions, ValidAction{Kind: kind, MinAmount: lo, MaxAmount: c.Stack - 1})
	}
	return append(actions, ValidAction{Kind: AllIn, MinAmount: c.Stack, MaxAmount: c.Stack})
}
