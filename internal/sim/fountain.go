package sim

import (
	"math"

	"github.com/san-kum/verletsim/internal/physics"
)

// Fountain emits a particle from the boundary center every Interval units of
// simulated time. The previous position orbits the center at Scale distance,
// so each particle leaves in a slowly rotating direction.
type Fountain struct {
	Interval float64
	Scale    float64
	Rand     physics.RandSource
	Enabled  bool

	last    float64
	started bool
}

func NewFountain(interval, scale float64, rnd physics.RandSource) *Fountain {
	return &Fountain{Interval: interval, Scale: scale, Rand: rnd, Enabled: true}
}

func (f *Fountain) Toggle() {
	f.Enabled = !f.Enabled
	f.started = false
}

func (f *Fountain) Spawn(u *physics.Universe, t float64) {
	if !f.Enabled {
		return
	}
	if !f.started {
		f.last, f.started = t, true
		return
	}
	if t-f.last <= f.Interval {
		return
	}
	f.last = t

	scaled := t * 0.01
	c := u.Center
	oldX := float64(c.X) + f.Scale*math.Cos(0.1*scaled)
	oldY := float64(c.Y) + f.Scale*math.Sin(0.1*scaled)
	radius := 5 + 5*f.Rand.Float32()
	u.AddAt(c.X, c.Y, float32(oldX), float32(oldY), radius, float32(math.Mod(scaled, 360)))
}
