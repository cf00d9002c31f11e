package sim

import (
	"context"
	"sync"
)

// Builder constructs an independent runner. Each ensemble member gets its
// own world, so members never share particle state.
type Builder func() (*Runner, error)

// Ensemble runs several independently built runners concurrently.
type Ensemble struct {
	builders []Builder
}

func NewEnsemble(builders ...Builder) *Ensemble {
	return &Ensemble{builders: builders}
}

func (e *Ensemble) Len() int { return len(e.builders) }

// Run returns results in builder order. The first build or run error wins.
func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, len(e.builders))
	errs := make([]error, len(e.builders))

	var wg sync.WaitGroup
	for i, build := range e.builders {
		wg.Add(1)
		go func(idx int, build Builder) {
			defer wg.Done()

			r, err := build()
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = r.Run(ctx, cfg)
		}(i, build)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
