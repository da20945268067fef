package game

import (
	"fmt"
)

// ActionKind is the type of a wagering action.
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
	// Null marks a seat that did not act because an earlier all-in froze the hand.
	Null
)

var actionKindNames = [...]string{"fold", "check", "call", "bet", "raise", "allin", "null"}

func (k ActionKind) String() string {
	if int(k) >= len(actionKindNames) {
		return "unknown"
	}
	return actionKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k ActionKind) MarshalText() ([]byte, error) {
	if int(k) >= len(actionKindNames) {
		return nil, fmt.Errorf("unknown action kind %d", k)
	}
	return []byte(actionKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. "all in" and "all-in"
// are accepted as spellings of allin.
func (k *ActionKind) UnmarshalText(text []byte) error {
	kind, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseActionKind parses the text form of an action kind.
func ParseActionKind(s string) (ActionKind, error) {
	switch s {
	case "all in", "all-in", "all_in":
		return AllIn, nil
	}
	for i, name := range actionKindNames {
		if name == s {
			return ActionKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action kind %q", s)
}

// IsAggressive reports whether the action puts the opponent to a decision.
func (k ActionKind) IsAggressive() bool {
	return k == Bet || k == Raise || k == AllIn
}

// Action is an immutable wagering decision. Amount is the number of chips
// committed by this action alone; it is zero for fold, check and null.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Amount int        `json:"amount"`
}

func FoldAction() Action           { return Action{Kind: Fold} }
func CheckAction() Action          { return Action{Kind: Check} }
func CallAction(amount int) Action { return Action{Kind: Call, Amount: amount} }
func BetAction(amount int) Action  { return Action{Kind: Bet, Amount: amount} }
func RaiseAction(amount int) Action {
	return Action{Kind: Raise, Amount: amount}
}
func AllInAction(amount int) Action { return Action{Kind: AllIn, Amount: amount} }
func NullAction() Action            { return Action{Kind: Null} }

func (a Action) String() string {
	switch a.Kind {
	case Fold, Check, Null:
		return a.Kind.String()
	default:
		return fmt.Sprintf("%s %d", a.Kind, a.Amount)
	}
}

// Bucket returns the bet bucket of the action. Folds map to FoldBucket by kind.
func (a Action) Bucket() int {
	if a.Kind == Fold {
		return FoldBucket
	}
	return BucketFor(a.Amount)
}

// BetBucket is a closed range of chip amounts sharing one discrete id.
type BetBucket struct {
	Key int
	Min int
	Max int // inclusive; the all-in bucket is open ended
}

const (
	FoldBucket  = -1
	CheckBucket = 0
	AllInBucket = 14
)

// BetBuckets is the fixed table used to discretise wager sizes. Ranges are
// disjoint and cover every positive amount.
var BetBuckets = [...]BetBucket{
	{Key: FoldBucket, Min: -1, Max: -1},
	{Key: CheckBucket, Min: 0, Max: 0},
	{Key: 1, Min: 1, Max: 1},
	{Key: 2, Min: 2, Max: 2},
	{Key: 3, Min: 3, Max: 4},
	{Key: 4, Min: 5, Max: 6},
	{Key: 5, Min: 7, Max: 10},
	{Key: 6, Min: 11, Max: 15},
	{Key: 7, Min: 16, Max: 20},
	{Key: 8, Min: 21, Max: 25},
	{Key: 9, Min: 26, Max: 30},
	{Key: 10, Min: 31, Max: 40},
	{Key: 11, Min: 41, Max: 60},
	{Key: 12, Min: 61, Max: 80},
	{Key: 13, Min: 81, Max: 100},
	{Key: AllInBucket, Min: 101, Max: 200},
}

// BucketFor returns the key of the bucket holding amount. Non-positive
// amounts are checks and anything above 100 is the all-in bucket.
func BucketFor(amount int) int {
	if amount <= 0 {
		return CheckBucket
	}
	for _, b := range BetBuckets[2 : len(BetBuckets)-1] {
		if amount <= b.Max {
			return b.Key
		}
	}
	return AllInBucket
}
