package metrics

import "github.com/san-kum/verletsim/internal/physics"

// Containment is the fraction of particle samples found inside the boundary
// disc, allowing tolerance for rounding at the edge.
type Containment struct {
	name      string
	tolerance float32
	inside    int
	samples   int
}

func NewContainment(tolerance float32) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(u *physics.Universe, t float64) {
	for _, p := range u.Particles() {
		c.samples++
		if p.Pos.Sub(u.Center).Len() <= u.BoundaryRadius-p.Radius+c.tolerance {
			c.inside++
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return float64(c.inside) / float64(c.samples)
}

func (c *Containment) Reset() {
	c.inside = 0
	c.samples = 0
}
