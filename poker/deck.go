package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in a full deck.
const DeckSize = NumRanks * NumSuits

var (
	ErrDeckExhausted  = errors.New("deck exhausted")
	ErrIncompleteDeck = errors.New("deck is not a full 52-card deck")
)

// Deck is an ordered sequence of cards. Cards are dealt from the tail and
// are never returned; Populate restores the full deck.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a populated, unshuffled deck that shuffles with rng.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}
	d.Populate()
	return d
}

// Populate resets the deck to all 52 cards in canonical order
// (rank-major, suit-minor).
func (d *Deck) Populate() {
	d.cards = d.cards[:0]
	for rank := Two; rank <= Ace; rank++ {
		for suit := Hearts; suit <= Diamonds; suit++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
}

// Shuffle permutes the deck uniformly at random (Fisher-Yates).
// The deck must be fully populated.
func (d *Deck) Shuffle() error {
	if len(d.cards) != DeckSize {
		return ErrIncompleteDeck
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return nil
}

// Deal removes and returns the card at the tail of the deck.
func (d *Deck) Deal() (Card, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, nil
}

// DealN deals n cards in order. Nothing is dealt if fewer than n remain.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	out := make([]Card, 0, n)
	for range n {
		c, _ := d.Deal()
		out = append(out, c)
	}
	return out, nil
}

// Len returns the number of cards left.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in deck order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Arrange repopulates the deck so that order is dealt first, card by card.
// The remaining cards follow in canonical order.
func (d *Deck) Arrange(order []Card) error {
	seen := make(map[Card]bool, len(order))
	for _, c := range order {
		if !c.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: %v", ErrDuplicateCard, c)
		}
		seen[c] = true
	}
	d.Populate()
	rest := d.cards[:0]
	for _, c := range d.cards {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		rest = append(rest, order[i])
	}
	d.cards = rest
	return nil
}
