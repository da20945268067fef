package poker

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/headsup/internal/randutil"
)

// BoardSize is the number of community cards at showdown.
const BoardSize = 5

// EquityResult counts showdown outcomes for two hands over board runouts.
type EquityResult struct {
	Samples int
	Wins    [2]int
	Ties    int
	Exact   bool // every runout was enumerated
}

// Equity returns hand i's share of the pot, counting ties as half.
func (r EquityResult) Equity(i int) float64 {
	if r.Samples == 0 {
		return 0
	}
	return (float64(r.Wins[i]) + float64(r.Ties)/2) / float64(r.Samples)
}

func (r *EquityResult) add(o EquityResult) {
	r.Samples += o.Samples
	r.Wins[0] += o.Wins[0]
	r.Wins[1] += o.Wins[1]
	r.Ties += o.Ties
}

// Equity estimates the showdown equity of two hole-card pairs given a
// partial board of 0 to 5 cards. When samples is not positive, or the
// remaining runouts number no more than samples, they are all enumerated;
// otherwise samples random runouts are drawn, split across workers seeded
// from seed.
func Equity(ctx context.Context, hands [2][]Card, board []Card, samples int, seed int64) (EquityResult, error) {
	if len(board) > BoardSize {
		return EquityResult{}, fmt.Errorf("%w: board has %d cards", ErrInvalidCardCount, len(board))
	}
	used := make(map[Card]bool, 4+len(board))
	for i, h := range hands {
		if len(h) != 2 {
			return EquityResult{}, fmt.Errorf("%w: hand %d has %d cards, want 2", ErrInvalidCardCount, i+1, len(h))
		}
	}
	for _, c := range append(append(append([]Card(nil), hands[0]...), hands[1]...), board...) {
		if !c.Valid() {
			return EquityResult{}, fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		if used[c] {
			return EquityResult{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		used[c] = true
	}

	var available []Card
	for rank := Two; rank <= Ace; rank++ {
		for suit := Hearts; suit <= Diamonds; suit++ {
			if c := NewCard(rank, suit); !used[c] {
				available = append(available, c)
			}
		}
	}

	need := BoardSize - len(board)
	if samples <= 0 || binomial(len(available), need) <= samples {
		return enumerate(ctx, hands, board, available)
	}
	return sample(ctx, hands, board, available, need, samples, seed)
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}

func showdown(hands [2][]Card, board []Card, r *EquityResult) error {
	e0, err := EvaluateHand(hands[0], board)
	if err != nil {
		return err
	}
	e1, err := EvaluateHand(hands[1], board)
	if err != nil {
		return err
	}
	r.Samples++
	switch Compare(e0, e1) {
	case 1:
		r.Wins[0]++
	case -1:
		r.Wins[1]++
	default:
		r.Ties++
	}
	return nil
}

func enumerate(ctx context.Context, hands [2][]Card, board, available []Card) (EquityResult, error) {
	res := EquityResult{Exact: true}
	full := make([]Card, len(board), BoardSize)
	copy(full, board)

	var walk func(start int) error
	walk = func(start int) error {
		if len(full) == BoardSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			return showdown(hands, full, &res)
		}
		for i := start; i <= len(available)-(BoardSize-len(full)); i++ {
			full = append(full, available[i])
			if err := walk(i + 1); err != nil {
				return err
			}
			full = full[:len(full)-1]
		}
		return nil
	}
	if err := walk(0); err != nil {
		return EquityResult{}, err
	}
	return res, nil
}

func sample(ctx context.Context, hands [2][]Card, board, available []Card, need, samples int, seed int64) (EquityResult, error) {
	workers := min(runtime.NumCPU(), 8)
	results := make([]EquityResult, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := samples / workers
		if w < samples%workers {
			n++
		}
		g.Go(func() error {
			rng := randutil.New(randutil.Derive(seed, w))
			deck := append([]Card(nil), available...)
			full := make([]Card, BoardSize)
			copy(full, board)
			for i := 0; i < n; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				// partial Fisher-Yates: the first need cards are the runout
				for j := 0; j < need; j++ {
					k := j + rng.IntN(len(deck)-j)
					deck[j], deck[k] = deck[k], deck[j]
					full[len(board)+j] = deck[j]
				}
				if err := showdown(hands, full, &results[w]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var res EquityResult
	for _, r := range results {
		res.add(r)
	}
	return res, nil
}
