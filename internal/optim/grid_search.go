package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/verletsim/internal/sim"
)

// Build returns a ready simulator and its run config for one parameter set.
type Build func(params map[string]float64) (*sim.Simulator, sim.Config, error)

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
}

// GridSearch evaluates every combination of parameter values and keeps the
// one that minimises a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every grid point in order. It returns the best parameters,
// the best metric value and all trials. A build or run error stops the
// search.
func (g *GridSearch) Search(ctx context.Context, build Build, metricName string) (map[string]float64, float64, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("grid search: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	trials := make([]Trial, 0)

	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams, &trials)
	return bestParams, best, trials, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Build,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
	trials *[]Trial,
) error {
	if depth == len(g.paramNames) {
		s, cfg, err := build(current)
		if err != nil {
			return err
		}

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("grid search: metric %q not recorded", metricName)
		}
		*trials = append(*trials, Trial{Params: current, Value: val})
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, build, metricName, best, bestParams, trials); err != nil {
			return err
		}
	}
	return nil
}
