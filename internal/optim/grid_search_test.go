package optim

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

// two overlapping particles; more sub-steps separate them further
func buildOverlap(params map[string]float64) (*sim.Simulator, sim.Config, error) {
	u := physics.New(0, rand.New(rand.NewSource(1)))
	u.SetGravity(0)
	u.SetResponseCoeff(float32(params["response"]))
	u.AddAt(300, 320, 300, 320, 10, 0)
	u.AddAt(310, 320, 310, 320, 10, 0)

	s := sim.New(u)
	s.AddMetric(metrics.NewMaxOverlap())
	return s, sim.Config{Dt: 1, Duration: 1, SubSteps: int(params["substeps"])}, nil
}

func TestGridSearch(t *testing.T) {
	g := NewGridSearch([]string{"response", "substeps"}, [][]float64{{0, 1}, {1, 2}})

	best, val, trials, err := g.Search(context.Background(), buildOverlap, "max_overlap")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(trials) != 4 {
		t.Errorf("expected 4 trials, got %d", len(trials))
	}
	if best["response"] != 1 {
		t.Errorf("expected response 1 to win, got %v", best)
	}
	if val >= 10 {
		t.Errorf("expected best overlap below the initial 10, got %v", val)
	}
	for _, tr := range trials {
		if tr.Params["response"] == 0 && tr.Value != 10 {
			t.Errorf("zero response should keep the overlap at 10, got %v", tr.Value)
		}
	}
}

func TestGridSearchMissingMetric(t *testing.T) {
	g := NewGridSearch([]string{"response", "substeps"}, [][]float64{{1}, {1}})
	if _, _, _, err := g.Search(context.Background(), buildOverlap, "nope"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestGridSearchBuildError(t *testing.T) {
	boom := errors.New("boom")
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2}})
	_, _, _, err := g.Search(context.Background(), func(map[string]float64) (*sim.Simulator, sim.Config, error) {
		return nil, sim.Config{}, boom
	}, "max_overlap")
	if !errors.Is(err, boom) {
		t.Errorf("expected build error, got %v", err)
	}
}

func TestGridSearchMismatch(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1}})
	if _, _, _, err := g.Search(context.Background(), buildOverlap, "max_overlap"); err == nil {
		t.Error("expected error for mismatched ranges")
	}
}
