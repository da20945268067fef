package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// preflopSB is the small blind's first decision with 10/20 blinds and
// 200-chip stacks.
var preflopSB = BetContext{
	ToCall:        10,
	Committed:     10,
	Stack:         190,
	OpponentStack: 180,
	MinRaise:      20,
	BigBlind:      20,
}

// flopFirst is the first decision on a fresh street.
var flopFirst = BetContext{
	Stack:         180,
	OpponentStack: 180,
	MinRaise:      20,
	BigBlind:      20,
}

func TestAuthorize(t *testing.T) {
	t.Parallel()
	shortStack := preflopSB
	shortStack.ToCall, shortStack.Stack = 50, 30

	facingAllIn := preflopSB
	facingAllIn.OpponentAllIn, facingAllIn.OpponentStack = true, 0

	lastSlot := flopFirst
	lastSlot.ActionsThisRound = MaxActionsPerRound - 1

	tests := []struct {
		name    string
		ctx     BetContext
		request Action
		verdict Verdict
		applied Action
	}{
		{"fold", preflopSB, FoldAction(), Legal, FoldAction()},
		{"exact call", preflopSB, CallAction(10), Legal, CallAction(10)},
		{"call amount normalised", preflopSB, CallAction(3), Clipped, CallAction(10)},
		{"call with nothing owed checks", flopFirst, CallAction(0), Clipped, CheckAction()},
		{"short call goes for the stack", shortStack, CallAction(50), Clipped, CallAction(30)},
		{"check facing a bet", preflopSB, CheckAction(), Rejected, Action{}},
		{"check", flopFirst, CheckAction(), Legal, CheckAction()},
		{"legal raise", preflopSB, RaiseAction(50), Legal, RaiseAction(50)},
		{"bet facing a wager is a raise", preflopSB, BetAction(50), Clipped, RaiseAction(50)},
		{"raise below minimum lifted", preflopSB, RaiseAction(15), Clipped, RaiseAction(30)},
		{"legal bet", flopFirst, BetAction(40), Legal, BetAction(40)},
		{"raise with nothing in is a bet", flopFirst, RaiseAction(40), Clipped, BetAction(40)},
		{"bet below big blind lifted", flopFirst, BetAction(5), Clipped, BetAction(20)},
		{"bet over stack is all-in", flopFirst, BetAction(500), Clipped, AllInAction(180)},
		{"all-in", flopFirst, AllInAction(180), Legal, AllInAction(180)},
		{"all-in amount taken from stack", flopFirst, AllInAction(1), Clipped, AllInAction(180)},
		{"all-in that only calls", shortStack, AllInAction(30), Clipped, CallAction(30)},
		{"no raise against all-in", facingAllIn, RaiseAction(60), Clipped, CallAction(10)},
		{"last slot cannot reopen", lastSlot, BetAction(40), Clipped, CheckAction()},
		{"null", flopFirst, NullAction(), Rejected, Action{}},
		{"negative amount", flopFirst, BetAction(-10), Rejected, Action{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Authorize(tt.request, tt.ctx)
			assert.Equal(t, tt.verdict, got.Verdict, got.Reason)
			assert.Equal(t, tt.applied, got.Action)
			if tt.verdict != Legal {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

func TestLegalActions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []ValidAction{
		{Kind: Fold},
		{Kind: Call, MinAmount: 10, MaxAmount: 10},
		{Kind: Raise, MinAmount: 30, MaxAmount: 189},
		{Kind: AllIn, MinAmount: 190, MaxAmount: 190},
	}, LegalActions(preflopSB))

	assert.Equal(t, []ValidAction{
		{Kind: Fold},
		{Kind: Check},
		{Kind: Bet, MinAmount: 20, MaxAmount: 179},
		{Kind: AllIn, MinAmount: 180, MaxAmount: 180},
	}, LegalActions(flopFirst))

	short := flopFirst
	short.Stack = 15
	assert.Equal(t, []ValidAction{
		{Kind: Fold},
		{Kind: Check},
		{Kind: AllIn, MinAmount: 15, MaxAmount: 15},
	}, LegalActions(short), "cannot make a full bet")

	facingAllIn := preflopSB
	facingAllIn.OpponentAllIn = true
	assert.Equal(t, []ValidAction{
		{Kind: Fold},
		{Kind: Call, MinAmount: 10, MaxAmount: 10},
	}, LegalActions(facingAllIn))

	broke := flopFirst
	broke.Stack = 0
	assert.Nil(t, LegalActions(broke))
}

func TestLegalMenuIsAuthorized(t *testing.T) {
	t.Parallel()
	for _, ctx := range []BetContext{preflopSB, flopFirst} {
		for _, va := range LegalActions(ctx) {
			for _, amount := range []int{va.MinAmount, va.MaxAmount} {
				a := Action{Kind: va.Kind, Amount: amount}
				got := Authorize(a, ctx)
				assert.Equal(t, Legal, got.Verdict, "%v should be legal: %s", a, got.Reason)
			}
		}
	}
}
