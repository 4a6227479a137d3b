// Package batch looks up several codes concurrently without touching history.
package batch

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/lookup"
	"github.com/Michaelcode2/pricechecker/internal/scan"
)

// DefaultWorkers is used when Run is given a non-positive worker count.
const DefaultWorkers = 4

// Result is the lookup result for one input, in input order.
type Result struct {
	Input   string
	Code    string
	Product domain.ProductInfo
	Err     error
}

// OK reports whether the lookup succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Run validates every code against settings, then fetches the valid ones on a
// pool of at most workers goroutines. Results keep the order of codes.
func Run(ctx context.Context, client lookup.ProductClient, settings domain.Settings, codes []string, workers int) ([]Result, error) {
	results := make([]Result, len(codes))
	if len(codes) == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(workers, func(arg interface{}) {
		defer wg.Done()
		r := arg.(*Result)
		if err := ctx.Err(); err != nil {
			r.Err = err
			return
		}
		r.Product, r.Err = client.FetchProduct(ctx, r.Code)
	})
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	for i, raw := range codes {
		r := &results[i]
		r.Input = raw
		code, verr := scan.Validate(raw, settings.MinScanLength, settings.MaxScanLength)
		if verr != nil {
			r.Err = verr
			continue
		}
		r.Code = code
		wg.Add(1)
		if err := pool.Invoke(r); err != nil {
			wg.Done()
			r.Err = err
		}
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	zap.L().Info("batch lookup finished",
		zap.String("namespace", "batch"),
		zap.Int("total", len(results)),
		zap.Int("failed", failed),
	)
	return results, nil
}
