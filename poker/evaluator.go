package poker

import (
	"errors"
	"fmt"
	"slices"
)

// HandClass enumerates the categories of poker hands ordered from weakest to strongest.
type HandClass uint8

const (
	HighCard HandClass = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Base returns the lowest strength score of the class. Classes are
// separated by hundreds so strength alone orders hands of different classes.
func (c HandClass) Base() int {
	return int(c) * 100
}

func (c HandClass) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

var (
	ErrInvalidCardCount = errors.New("invalid card count")
	ErrDuplicateCard    = errors.New("duplicate card")
)

// rankNames is indexed by card value (1..13).
var rankNames = [NumRanks + 1]string{
	"", "deuce", "three", "four", "five", "six", "seven",
	"eight", "nine", "ten", "jack", "queen", "king", "ace",
}

// RankName returns the spoken name of a card value, e.g. 1 -> "deuce".
func RankName(value int) string {
	if value < 1 || value > NumRanks {
		return "?"
	}
	return rankNames[value]
}

func pluralRankName(value int) string {
	name := RankName(value)
	if name == "six" {
		return "sixes"
	}
	return name + "s"
}

// Diagnostics carries raw features of the evaluated cards.
type Diagnostics struct {
	Values       []int // card values in input order
	SuitedMax    int   // most cards sharing one suit
	StraightHigh int   // top value of the best straight over all cards, 0 if none
	Gap          int   // value of the first card minus value of the second
}

// Evaluation is the ranked result of a 5 to 7 card hand. Comparing two
// evaluations by (Strength, TieBreak) lexicographically orders them the way
// their best five cards are ordered in poker.
type Evaluation struct {
	Class    HandClass
	Label    string
	Strength int
	TieBreak []int
	Raw      Diagnostics
}

func (e Evaluation) String() string {
	return e.Label
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 for an exact tie.
func Compare(a, b Evaluation) int {
	switch {
	case a.Strength > b.Strength:
		return 1
	case a.Strength < b.Strength:
		return -1
	}
	return slices.Compare(a.TieBreak, b.TieBreak)
}

// IsStraight returns the top value of the highest run of length consecutive
// values, or 0 if there is none. An Ace (13) also plays as 0 so the wheel
// A-2-3-4-5 is found with a top value of 4 (the five).
func IsStraight(values []int, length int) int {
	if length <= 0 {
		return 0
	}

	var present [NumRanks + 1]bool
	for _, v := range values {
		if v >= 1 && v <= NumRanks {
			present[v] = true
		}
	}
	present[0] = present[NumRanks]

	for low := NumRanks - length + 1; low >= 0; low-- {
		run := true
		for v := low; v < low+length; v++ {
			if !present[v] {
				run = false
				break
			}
		}
		if run {
			return low + length - 1
		}
	}
	return 0
}

// EvaluateHand evaluates hole cards together with the board.
func EvaluateHand(hole, board []Card) (Evaluation, error) {
	cards := make([]Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)
	return Evaluate(cards)
}

// Evaluate ranks 5 to 7 distinct cards.
func Evaluate(cards []Card) (Evaluation, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Evaluation{}, fmt.Errorf("%w: got %d cards, want 5 to 7", ErrInvalidCardCount, len(cards))
	}

	seen := make(map[Card]struct{}, len(cards))
	var counts [NumRanks + 1]int
	var suitCounts [NumSuits]int
	values := make([]int, len(cards))
	for i, c := range cards {
		if !c.Valid() {
			return Evaluation{}, fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		if _, dup := seen[c]; dup {
			return Evaluation{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = struct{}{}
		v := c.Value()
		values[i] = v
		counts[v]++
		suitCounts[c.Suit]++
	}

	raw := Diagnostics{
		Values:       values,
		StraightHigh: IsStraight(values, min(5, len(values))),
		Gap:          values[0] - values[1],
	}

	flushSuit := -1
	for s, n := range suitCounts {
		raw.SuitedMax = max(raw.SuitedMax, n)
		if n >= 5 {
			flushSuit = s
		}
	}

	var quads, trips, pairs []int
	for v := NumRanks; v >= 1; v-- {
		switch counts[v] {
		case 4:
			quads = append(quads, v)
		case 3:
			trips = append(trips, v)
		case 2:
			pairs = append(pairs, v)
		}
	}

	desc := slices.Clone(values)
	slices.Sort(desc)
	slices.Reverse(desc)

	// kickers returns the n highest values not in exclude.
	kickers := func(n int, exclude ...int) []int {
		out := make([]int, 0, n)
		for _, v := range desc {
			if len(out) == n {
				break
			}
			if !slices.Contains(exclude, v) {
				out = append(out, v)
			}
		}
		return out
	}

	eval := func(class HandClass, primary int, tieBreak []int, label string) (Evaluation, error) {
		if tieBreak == nil {
			tieBreak = []int{}
		}
		return Evaluation{
			Class:    class,
			Label:    label,
			Strength: class.Base() + primary,
			TieBreak: tieBreak,
			Raw:      raw,
		}, nil
	}

	var flushValues []int
	if flushSuit >= 0 {
		for _, c := range cards {
			if int(c.Suit) == flushSuit {
				flushValues = append(flushValues, c.Value())
			}
		}
		slices.Sort(flushValues)
		slices.Reverse(flushValues)

		if high := IsStraight(flushValues, 5); high > 0 {
			label := fmt.Sprintf("straight flush, %s high", RankName(high))
			if high == NumRanks {
				label = "royal flush"
			}
			return eval(StraightFlush, high, nil, label)
		}
	}

	switch {
	case len(quads) > 0:
		q := quads[0]
		return eval(FourOfAKind, q, kickers(1, q), "four "+pluralRankName(q))

	case len(trips) > 0 && (len(trips) > 1 || len(pairs) > 0):
		t := trips[0]
		p := 0
		if len(trips) > 1 {
			p = trips[1]
		}
		if len(pairs) > 0 {
			p = max(p, pairs[0])
		}
		return eval(FullHouse, t, []int{p},
			fmt.Sprintf("full house, %s full of %s", pluralRankName(t), pluralRankName(p)))

	case flushSuit >= 0:
		top := flushValues[:5]
		return eval(Flush, top[0], slices.Clone(top[1:]),
			fmt.Sprintf("flush, %s high", RankName(top[0])))

	case raw.StraightHigh > 0:
		return eval(Straight, raw.StraightHigh, nil,
			fmt.Sprintf("straight, %s high", RankName(raw.StraightHigh)))

	case len(trips) > 0:
		t := trips[0]
		return eval(ThreeOfAKind, t, kickers(2, t), "trip "+pluralRankName(t))

	case len(pairs) > 1:
		hi, lo := pairs[0], pairs[1]
		return eval(TwoPair, hi, append([]int{lo}, kickers(1, hi, lo)...),
			fmt.Sprintf("two pair, %s and %s", pluralRankName(hi), pluralRankName(lo)))

	case len(pairs) == 1:
		p := pairs[0]
		return eval(Pair, p, kickers(3, p), "pair of "+pluralRankName(p))
	}

	return eval(HighCard, desc[0], slices.Clone(desc[1:5]), "high card "+RankName(desc[0]))
}
