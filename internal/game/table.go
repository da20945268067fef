package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/poker"
)

var (
	ErrDealOrder       = errors.New("streets must be dealt in order")
	ErrRoundStalled    = errors.New("betting round did not close")
	ErrCardPartition   = errors.New("cards do not partition the deck")
	ErrChipsNotBalance = errors.New("chips not conserved")
)

// TableOption configures a Table during creation.
type TableOption func(*Table)

// WithBlinds sets the blind sizes. The default is DefaultBlinds.
func WithBlinds(b Blinds) TableOption {
	return func(t *Table) {
		t.blinds = b
	}
}

// WithLogger sets the logger used for hand and action events.
func WithLogger(l *log.Logger) TableOption {
	return func(t *Table) {
		t.logger = l
	}
}

// WithDeck uses d instead of a deck built from the table's rng.
func WithDeck(d *poker.Deck) TableOption {
	return func(t *Table) {
		t.deck = d
	}
}

// WithDealer pins the button to seat instead of flipping a coin each hand.
func WithDealer(seat int) TableOption {
	return func(t *Table) {
		t.pinnedDealer = seat
	}
}

// WithPresetDeals stacks the deck for the next hands, one order per hand,
// in dealing order: four hole cards then the board. Hands beyond the
// presets are shuffled as usual.
func WithPresetDeals(orders ...[]poker.Card) TableOption {
	return func(t *Table) {
		t.presets = append(t.presets, orders...)
	}
}

// Table runs heads-up hands between two players. It owns the deck, the
// board and the action log of the hand in flight.
type Table struct {
	players [NumSeats]*Player
	deck    *poker.Deck
	board   []poker.Card
	log     *ActionLog
	blinds  Blinds
	rng     *rand.Rand
	logger  *log.Logger

	hand         int
	dealer       int
	pinnedDealer int
	presets      [][]poker.Card
	posted       [NumSeats]int
	start        [NumSeats]int
	nextDeal     Street
	street       Street
	folded       int
}

// NewTable creates a table for p0 (seat 0) and p1 (seat 1). The rng flips
// the button and shuffles the deck; it is required.
func NewTable(rng *rand.Rand, p0, p1 *Player, opts ...TableOption) *Table {
	if rng == nil {
		panic("rng is required for table creation")
	}
	if p0 == nil || p1 == nil {
		panic("two players are required")
	}
	if p0.ID != 0 || p1.ID != 1 {
		panic("players must sit in seats 0 and 1")
	}

	t := &Table{
		players:      [NumSeats]*Player{p0, p1},
		log:          NewActionLog(),
		blinds:       DefaultBlinds,
		rng:          rng,
		logger:       log.New(io.Discard),
		pinnedDealer: -1,
		folded:       -1,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.deck == nil {
		t.deck = poker.NewDeck(rng)
	}
	if t.blinds.Small < 0 || t.blinds.Big < t.blinds.Small {
		panic("blinds must satisfy 0 <= small <= big")
	}
	return t
}

// Player returns the player in seat.
func (t *Table) Player(seat int) *Player {
	return t.players[seat]
}

// Dealer returns the seat holding the button.
func (t *Table) Dealer() int {
	return t.dealer
}

// Blinds returns the blind sizes.
func (t *Table) Blinds() Blinds {
	return t.blinds
}

// HandNumber returns the number of hands started, counting from 1.
func (t *Table) HandNumber() int {
	return t.hand
}

// Street returns the round in progress.
func (t *Table) Street() Street {
	return t.street
}

// Board returns a copy of the community cards.
func (t *Table) Board() []poker.Card {
	return append([]poker.Card(nil), t.board...)
}

// Log returns a copy of the action log of the current hand.
func (t *Table) Log() *ActionLog {
	return t.log.Clone()
}

// Deck returns the table's deck.
func (t *Table) Deck() *poker.Deck {
	return t.deck
}

// Contributions returns what each seat has put in the pot this hand.
func (t *Table) Contributions() [NumSeats]int {
	return [NumSeats]int{
		t.posted[0] + t.log.Total(0),
		t.posted[1] + t.log.Total(1),
	}
}

// Pot returns the chips in the middle.
func (t *Table) Pot() int {
	c := t.Contributions()
	return c[0] + c[1]
}

// SetDealer flips a coin for the button and returns the dealer seat.
// A table created WithDealer always returns the pinned seat.
func (t *Table) SetDealer() int {
	t.dealer = t.pinnedDealer
	if t.dealer < 0 || t.dealer >= NumSeats {
		t.dealer = t.rng.IntN(NumSeats)
	}
	for _, p := range t.players {
		p.IsDealer = p.ID == t.dealer
	}
	return t.dealer
}

// PostBlinds debits the blinds and returns the initial pot. The non-dealer
// posts the small blind and the dealer the big blind; a seat that cannot
// cover its blind posts its whole stack and is all-in.
func (t *Table) PostBlinds() int {
	pot := 0
	for _, p := range t.players {
		amount := min(t.blinds.For(p.ID, t.dealer), max(p.Stack, 0))
		p.Stack -= amount
		if p.Stack == 0 {
			p.IsAllIn = true
		}
		t.posted[p.ID] = amount
		pot += amount
	}
	return pot
}

// Deal deals the cards of round: two hole cards each preflop, dealer's
// opponent first, then three on the flop and one each on turn and river.
func (t *Table) Deal(round Street) error {
	if round != t.nextDeal || round > River {
		return fmt.Errorf("%w: dealing %s, next is %s", ErrDealOrder, round, t.nextDeal)
	}

	var err error
	switch round {
	case Preflop:
		first, second := t.players[1-t.dealer], t.players[t.dealer]
		for range 2 {
			if err = t.dealTo(&first.Cards); err != nil {
				break
			}
			if err = t.dealTo(&second.Cards); err != nil {
				break
			}
		}
	case Flop:
		for range 3 {
			if err = t.dealTo(&t.board); err != nil {
				break
			}
		}
	default:
		err = t.dealTo(&t.board)
	}
	if err != nil {
		return fmt.Errorf("deal %s: %w", round, err)
	}
	t.nextDeal = round + 1
	return nil
}

func (t *Table) dealTo(dst *[]poker.Card) error {
	c, err := t.deck.Deal()
	if err != nil {
		return err
	}
	*dst = append(*dst, c)
	return nil
}

// CheckCards verifies that the deck, both hands and the board hold every
// card exactly once.
func (t *Table) CheckCards() error {
	seen := make(map[poker.Card]bool, poker.DeckSize)
	groups := [][]poker.Card{t.deck.Cards(), t.players[0].Cards, t.players[1].Cards, t.board}
	for _, g := range groups {
		for _, c := range g {
			if seen[c] {
				return fmt.Errorf("%w: %s appears twice", ErrCardPartition, c)
			}
			seen[c] = true
		}
	}
	if len(seen) != poker.DeckSize {
		return fmt.Errorf("%w: %d cards accounted for", ErrCardPartition, len(seen))
	}
	return nil
}

// StartHand resets the table, deals hole cards and posts blinds.
func (t *Table) StartHand() error {
	t.hand++
	t.log.Reset()
	t.board = t.board[:0]
	t.posted = [NumSeats]int{}
	t.nextDeal = Preflop
	t.street = Preflop
	t.folded = -1

	for _, p := range t.players {
		p.Reset()
		t.start[p.ID] = p.Stack
	}

	if len(t.presets) > 0 {
		order := t.presets[0]
		t.presets = t.presets[1:]
		if err := t.deck.Arrange(order); err != nil {
			return fmt.Errorf("preset deal: %w", err)
		}
	} else {
		t.deck.Populate()
		if err := t.deck.Shuffle(); err != nil {
			return err
		}
	}

	t.SetDealer()
	pot := t.PostBlinds()
	if err := t.Deal(Preflop); err != nil {
		return err
	}

	t.logger.Debug("Hand started",
		"hand", t.hand,
		"dealer", t.players[t.dealer].Name,
		"pot", pot,
		"stacks", fmt.Sprintf("%d/%d", t.players[0].Stack, t.players[1].Stack))
	return nil
}

// betContext describes the wagering situation of seat in round by
// replaying the round from the posted blinds.
func (t *Table) betContext(seat int, round Street) BetContext {
	var committed [NumSeats]int
	high := 0
	if round == Preflop {
		committed = t.posted
		high = max(committed[0], committed[1])
	}
	minRaise := t.blinds.Big
	for _, e := range t.log.Round(round) {
		committed[e.Seat] += e.Action.Amount
		if committed[e.Seat] > high {
			minRaise = max(minRaise, committed[e.Seat]-high)
			high = committed[e.Seat]
		}
	}

	me, opp := t.players[seat], t.players[1-seat]
	return BetContext{
		ToCall:           max(committed[1-seat]-committed[seat], 0),
		Committed:        committed[seat],
		Stack:            me.Stack,
		OpponentStack:    opp.Stack,
		OpponentAllIn:    opp.IsAllIn || opp.Stack <= 0,
		MinRaise:         minRaise,
		BigBlind:         t.blinds.Big,
		ActionsThisRound: t.log.Count(round, seat),
	}
}

// PlayRound runs one betting round. The non-dealer acts first and the seats
// alternate until Agreement closes the round. It reports whether the hand
// ended with a fold.
func (t *Table) PlayRound(ctx context.Context, round Street) (bool, error) {
	t.street = round
	seat := 1 - t.dealer
	for turn := 0; turn < NumSeats*(MaxActionsPerRound+1); turn++ {
		p := t.players[seat]
		tv := TableView{
			Hand:          t.hand,
			Board:         t.board,
			Pot:           t.Pot(),
			Log:           t.log,
			Round:         round,
			OpponentStack: t.players[1-seat].Stack,
			Blinds:        t.blinds,
			Dealer:        t.dealer,
			Bet:           t.betContext(seat, round),
		}
		d, err := p.Play(ctx, tv)
		if err != nil {
			return false, fmt.Errorf("hand %d %s: %w", t.hand, round, err)
		}
		if err := t.log.Record(round, seat, d.Action); err != nil {
			return false, err
		}

		if d.Verdict == Clipped {
			t.logger.Warn("Action clipped",
				"hand", t.hand, "round", round, "player", p.Name,
				"requested", d.Requested, "applied", d.Action, "reason", d.Reason)
		}
		t.logger.Debug("Action",
			"hand", t.hand, "round", round, "player", p.Name,
			"action", d.Action, "stack", p.Stack, "pot", t.Pot())

		if d.Action.Kind == Fold {
			t.folded = seat
			return true, nil
		}
		if Agreement(t.log, round) {
			return false, nil
		}
		seat = 1 - seat
	}
	return false, fmt.Errorf("hand %d %s: %w", t.hand, round, ErrRoundStalled)
}

// PlayHand plays a complete hand, from blinds to fold or showdown, settles
// the pot and returns the result. Hole cards and board are cleared once the
// result is taken.
func (t *Table) PlayHand(ctx context.Context) (*HandResult, error) {
	if err := t.StartHand(); err != nil {
		return nil, err
	}

	for round := Preflop; round <= River; round++ {
		if round > Preflop {
			if err := t.Deal(round); err != nil {
				return nil, err
			}
		}
		folded, err := t.PlayRound(ctx, round)
		if err != nil {
			return nil, err
		}
		if folded {
			break
		}
	}
	if err := t.CheckCards(); err != nil {
		return nil, err
	}

	var sd *Showdown
	outcome := Split
	if t.folded < 0 {
		t.street = Showdown
		s, err := CompareHands(t.players[0], t.players[1], t.board)
		if err != nil {
			return nil, err
		}
		sd, outcome = &s, s.Outcome
	}

	contrib := t.Contributions()
	payout := settle(contrib, t.folded, outcome)
	for s, p := range t.players {
		p.Stack += payout[s]
	}
	if t.start[0]+t.start[1] != t.players[0].Stack+t.players[1].Stack {
		return nil, fmt.Errorf("hand %d: %w", t.hand, ErrChipsNotBalance)
	}

	res := t.result(contrib, payout, sd)
	t.logger.Debug("Hand complete",
		"hand", t.hand, "id", res.ID, "street", res.Street, "pot", res.Pot(),
		"winner", res.WinnerName(), "net", res.Net[0])

	for _, p := range t.players {
		p.Cards = nil
		p.IsDealer = false
		if o, ok := p.strategy.(HandObserver); ok {
			o.ObserveHand(res)
		}
	}
	t.board = nil
	return res, nil
}
