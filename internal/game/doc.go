// Package game implements heads-up No-Limit Texas Hold'em hand play.
//
// A Table owns two Players, the deck, the board and the ActionLog of the
// hand in flight. Each betting round the non-dealer acts first and seats
// alternate until Agreement reports the round closed:
//
//	rng := randutil.New(42)
//	p0 := game.NewPlayer(0, "alice", strategy.NewCall(), 200)
//	p1 := game.NewPlayer(1, "bob", strategy.NewRandom(rng), 200)
//	t := game.NewTable(rng, p0, p1, game.WithBlinds(game.Blinds{Small: 10, Big: 20}))
//	result, err := t.PlayHand(ctx)
//
// # Conventions
//
// The dealer posts the big blind and the non-dealer the small blind. Once
// either seat is all-in, neither seat is asked for further decisions; the
// frozen seat's turn is recorded as a null action.
//
// Every decision returned by a Strategy passes through Authorize before a
// chip is moved. Oversized wagers are clipped to all-in, mislabelled ones
// are normalised, and impossible ones (checking into a bet) abort the hand
// with ErrIllegalAction.
//
// # Concurrency
//
// A Table is not safe for concurrent use. Run independent tables in
// separate goroutines instead.
package game
