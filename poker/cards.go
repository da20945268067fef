package poker

import (
	"errors"
	"fmt"
	"strings"
)

// Suit represents a card suit. The order matches the suit axis of the
// encoded card grids.
type Suit uint8

const (
	Hearts Suit = iota
	Clubs
	Spades
	Diamonds
)

// NumSuits is the number of suits in a deck.
const NumSuits = 4

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "h"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	case Diamonds:
		return "d"
	default:
		return "?"
	}
}

// Rank represents a card rank from Two up to Ace.
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of ranks in a suit.
const NumRanks = 13

const rankChars = "23456789TJQKA"

func (r Rank) String() string {
	if int(r) >= len(rankChars) {
		return "?"
	}
	return rankChars[r : r+1]
}

// Card is an immutable (rank, suit) pair. Two cards are equal iff both
// fields match, so Card can be compared with == and used as a map key.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Value returns the 1-based position of the rank: Two is 1, Ace is 13.
func (c Card) Value() int {
	return int(c.Rank) + 1
}

// Valid reports whether the card has an in-range rank and suit.
func (c Card) Valid() bool {
	return c.Rank <= Ace && c.Suit <= Diamonds
}

// String returns the short notation, e.g. "Ah" or "Tc".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

var (
	ErrInvalidCard = errors.New("invalid card")
)

// ParseCard parses a card like "Ah", "td" or "10s".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rankPart := strings.ToUpper(s[:len(s)-1])
	if rankPart == "10" {
		rankPart = "T"
	}
	if len(rankPart) != 1 {
		return Card{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, s)
	}
	idx := strings.IndexByte(rankChars, rankPart[0])
	if idx < 0 {
		return Card{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 'h', 'H':
		suit = Hearts
	case 'c', 'C':
		suit = Clubs
	case 's', 'S':
		suit = Spades
	case 'd', 'D':
		suit = Diamonds
	default:
		return Card{}, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, s)
	}

	return NewCard(Rank(idx), suit), nil
}

// ParseCards parses a run of two-character cards such as "AhKd7c".
// Whitespace between cards is ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, "10", "T")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length card string %q", ErrInvalidCard, s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for tests and fixtures; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with no separator, e.g. "AhKd".
func FormatCards(cards []Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}
