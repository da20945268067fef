package match

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunAll plays independent matches concurrently, at most parallel at a time
// (unlimited when parallel < 1). Summaries are returned in config order;
// the first failing match cancels the others.
func RunAll(ctx context.Context, configs []Config, parallel int, opts ...Option) ([]*Summary, error) {
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	summaries := make([]*Summary, len(configs))
	for i, cfg := range configs {
		g.Go(func() error {
			r, err := NewRunner(cfg, opts...)
			if err != nil {
				return err
			}
			defer r.Close()

			s, err := r.Run(ctx)
			summaries[i] = s
			return err
		})
	}
	return summaries, g.Wait()
}
