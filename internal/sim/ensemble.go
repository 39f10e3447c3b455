package sim

import (
	"context"
	"sync"

	"github.com/san-kum/verletsim/internal/physics"
)

// Factory builds a fresh simulator for one ensemble member.
type Factory func(seed int64) *Simulator

// Ensemble runs independent universes concurrently, one per seed. Each
// universe is still stepped by a single goroutine.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := e.seedStart + int64(idx)
			results[idx], errs[idx] = e.factory(seed).Run(ctx, cfg)
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

// FinalParticles returns the last recorded frame of each result.
func FinalParticles(results []*Result) [][]physics.Particle {
	out := make([][]physics.Particle, len(results))
	for i, r := range results {
		if len(r.Frames) > 0 {
			out[i] = r.Frames[len(r.Frames)-1].Particles
		}
	}
	return out
}
