package metrics

import "github.com/san-kum/verletsim/internal/physics"

// MaxOverlap tracks the deepest penetration between two unlinked particles
// seen during a run. It is O(n²) per frame, like the solver itself.
type MaxOverlap struct {
	name string
	max  float64
}

func NewMaxOverlap() *MaxOverlap {
	return &MaxOverlap{name: "max_overlap"}
}

func (m *MaxOverlap) Name() string { return m.name }

func (m *MaxOverlap) Observe(u *physics.Universe, t float64) {
	if d := Overlap(u); d > m.max {
		m.max = d
	}
}

func (m *MaxOverlap) Value() float64 { return m.max }

func (m *MaxOverlap) Reset() { m.max = 0 }

// Overlap returns the deepest current penetration between unlinked pairs.
func Overlap(u *physics.Universe) float64 {
	ps := u.Particles()
	reg := u.Constraints()
	deepest := 0.0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if linked(reg, ps[i].ID, ps[j].ID) {
				continue
			}
			d := float64(ps[i].Radius + ps[j].Radius - ps[i].Pos.Sub(ps[j].Pos).Len())
			if d > deepest {
				deepest = d
			}
		}
	}
	return deepest
}

func linked(reg *physics.Registry, a, b uint32) bool {
	if p, ok := reg.Partner(a); ok && p == b {
		return true
	}
	p, ok := reg.Partner(b)
	return ok && p == a
}
