package services

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BOMResult is the outcome of pricing one BOM in a batch.
type BOMResult struct {
	Priced PricedBOM
	Err    error
}

// PriceBOMs prices boms concurrently with at most workers goroutines.
// Results keep the input order. Per-BOM failures (a nil BOM) are reported in
// the result; the returned error is only set when ctx is cancelled.
func PriceBOMs(ctx context.Context, boms []*RawBOM, policy PricingPolicy, workers int) ([]BOMResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]BOMResult, len(boms))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, bom := range boms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			priced, err := ComputeBOM(bom, policy)
			results[i] = BOMResult{Priced: priced, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
