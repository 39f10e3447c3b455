package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/san-kum/verletsim/internal/physics"
)

// Simulator drives a universe frame by frame, the way a host render loop
// would: spawners, then SubSteps ticks, then metrics and observers.
type Simulator struct {
	universe  *physics.Universe
	metrics   []Metric
	observers []Observer
	spawners  []Spawner
	frames    *FramePool
	logger    *log.Logger
}

func New(u *physics.Universe) *Simulator {
	return &Simulator{
		universe:  u,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		spawners:  make([]Spawner, 0),
		frames:    NewFramePool(),
		logger:    log.New(io.Discard),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) AddSpawner(sp Spawner)  { s.spawners = append(s.spawners, sp) }

func (s *Simulator) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

func (s *Simulator) Universe() *physics.Universe { return s.universe }

// Release returns recorded frame buffers to the pool. The result must not be
// used afterwards.
func (s *Simulator) Release(r *Result) {
	for _, f := range r.Frames {
		s.frames.Put(f.Particles)
	}
	r.Frames = nil
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Debug("run start", "particles", s.universe.Len(), "steps", steps, "dt", cfg.Dt, "substeps", cfg.SubSteps)

	t := 0.0
	result.Times = append(result.Times, t)
	if cfg.RecordEvery > 0 {
		result.Frames = append(result.Frames, Frame{Time: t, Particles: s.frames.Snapshot(s.universe)})
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.frame(t, cfg)
		t += cfg.Dt
		result.StepsTaken++
		result.Times = append(result.Times, t)

		if cfg.ValidateState && !stateValid(s.universe) {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)", Wrapped: ErrInvalidState}
			result.Errors = append(result.Errors, err)
			s.logger.Warn("run stopped", "err", err)
			break
		}

		for _, m := range s.metrics {
			m.Observe(s.universe, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.universe, t)
		}

		if cfg.RecordEvery > 0 && (i+1)%cfg.RecordEvery == 0 {
			result.Frames = append(result.Frames, Frame{Time: t, Particles: s.frames.Snapshot(s.universe)})
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("run done", "steps", result.StepsTaken, "frames", len(result.Frames), "particles", s.universe.Len())
	return result, nil
}

// RunWithCallback steps until the duration elapses or fn returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, fn func(u *physics.Universe, t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !fn(s.universe, t) {
			return nil
		}

		s.frame(t, cfg)
		t += cfg.Dt

		if cfg.ValidateState && !stateValid(s.universe) {
			return fmt.Errorf("t=%.4f: %w", t, ErrInvalidState)
		}
	}

	return nil
}

// Step advances a single frame at time t. Interactive hosts use it in place
// of Run; the config is not validated.
func (s *Simulator) Step(t float64, cfg Config) { s.frame(t, cfg) }

func (s *Simulator) frame(t float64, cfg Config) {
	for _, sp := range s.spawners {
		sp.Spawn(s.universe, t)
	}
	dt := float32(cfg.Dt / float64(cfg.SubSteps))
	for k := 0; k < cfg.SubSteps; k++ {
		s.universe.Tick(dt)
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.SubSteps < 1 {
		return fmt.Errorf("%w: substeps must be at least 1, got %d", ErrInvalidConfig, cfg.SubSteps)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("%w: record_every must not be negative", ErrInvalidConfig)
	}
	return nil
}

func stateValid(u *physics.Universe) bool {
	for _, p := range u.Particles() {
		if !p.Pos.IsValid() {
			return false
		}
	}
	return true
}
