package metrics

import (
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

// Count reports the particle count at the last observed frame.
type Count struct{ n int }

func NewCount() *Count { return &Count{} }

func (c *Count) Name() string                           { return "particles" }
func (c *Count) Observe(u *physics.Universe, t float64) { c.n = u.Len() }
func (c *Count) Value() float64                         { return float64(c.n) }
func (c *Count) Reset()                                 { c.n = 0 }

// Default returns the metric set used by the CLI.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewMaxOverlap(),
		NewContainment(1e-2),
		NewCount(),
	}
}
