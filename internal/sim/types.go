package sim

import "github.com/san-kum/verletsim/internal/physics"

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(u *physics.Universe, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(u *physics.Universe, t float64)
}

// Spawner may add particles at the start of each frame.
type Spawner interface {
	Spawn(u *physics.Universe, t float64)
}

// Config drives one run. Seeding belongs to whoever builds the universe;
// Ensemble hands each factory call its own seed.
type Config struct {
	Dt            float64 // frame time
	Duration      float64 // run length, in the same units as Dt
	SubSteps      int     // ticks per frame, each Dt/SubSteps long
	RecordEvery   int     // snapshot every N frames, 0 disables recording
	ValidateState bool    // stop on NaN or infinite positions
}

func DefaultConfig() Config {
	return Config{
		Dt:            16,
		Duration:      1600,
		SubSteps:      4,
		RecordEvery:   1,
		ValidateState: true,
	}
}

// Frame is a copy of the particle store at a point in time.
type Frame struct {
	Time      float64
	Particles []physics.Particle
}

type Result struct {
	Frames     []Frame
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
