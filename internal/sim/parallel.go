package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/cellsim/internal/engine"
)

// Ensemble runs the same model several times with consecutive seeds,
// one goroutine per run. Metric instances are stateful, so each run
// gets its own set from the optional Metrics factory.
type Ensemble struct {
	terms     []engine.Term
	numRuns   int
	seedStart int64

	// Metrics, when set, supplies a fresh metric set per run.
	Metrics func() []Metric
}

func NewEnsemble(terms []engine.Term, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{terms: terms, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, pos0 engine.Positions, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s := New(e.terms)
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, pos0, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// ParallelFor executes fn over [0, n) in chunks across worker
// goroutines. Small ranges run inline.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.NumCPU()
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
