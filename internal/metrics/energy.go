package metrics

import "github.com/san-kum/verletsim/internal/physics"

// KineticEnergy averages Σ ½·r²·|v|² over observed frames, using the squared
// radius as a mass proxy and the implied per-tick velocity.
type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(u *physics.Universe, t float64) {
	e.totalEnergy += Kinetic(u.Particles())
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// Kinetic is the instantaneous kinetic energy of a particle set.
func Kinetic(ps []physics.Particle) float64 {
	sum := 0.0
	for _, p := range ps {
		r := float64(p.Radius)
		sum += 0.5 * r * r * float64(p.Velocity().LenSq())
	}
	return sum
}
