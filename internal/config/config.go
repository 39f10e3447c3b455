package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

const (
	DefaultParticles = 100
	DefaultDt        = 16.0
	DefaultDuration  = 1600.0
	DefaultSubSteps  = 4
	DefaultGravity   = 0.001
	DefaultInterval  = 100.0
	DefaultScale     = 10.0
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Name          string         `yaml:"name"`
	Particles     int            `yaml:"particles"`
	Seed          int64          `yaml:"seed"`
	Dt            float64        `yaml:"dt"`
	Duration      float64        `yaml:"duration"`
	SubSteps      int            `yaml:"substeps"`
	RecordEvery   int            `yaml:"record_every"`
	Gravity       float32        `yaml:"gravity"`
	ResponseCoeff float32        `yaml:"response_coeff"`
	AnchorFixed   bool           `yaml:"anchor_fixed"`
	Boundary      BoundaryConfig `yaml:"boundary"`
	Radius        RadiusConfig   `yaml:"radius"`
	Fountain      FountainConfig `yaml:"fountain"`
	Chain         ChainConfig    `yaml:"chain"`
}

type BoundaryConfig struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Radius float32 `yaml:"radius"`
}

type RadiusConfig struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

type FountainConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Interval float64 `yaml:"interval"`
	Scale    float64 `yaml:"scale"`
}

type PointConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type ChainConfig struct {
	Length      int         `yaml:"length"`
	Radius      float32     `yaml:"radius"`
	Color       float32     `yaml:"color"`
	From        PointConfig `yaml:"from"`
	To          PointConfig `yaml:"to"`
	AnchorFirst bool        `yaml:"anchor_first"`
	AnchorLast  bool        `yaml:"anchor_last"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:          "default",
		Particles:     DefaultParticles,
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		SubSteps:      DefaultSubSteps,
		RecordEvery:   1,
		Gravity:       DefaultGravity,
		ResponseCoeff: physics.DefaultResponseCoeff,
		Boundary: BoundaryConfig{
			X:      physics.DefaultCenterX,
			Y:      physics.DefaultCenterY,
			Radius: physics.DefaultBoundaryRadius,
		},
		Radius: RadiusConfig{
			Min: physics.DefaultMinRadius,
			Max: physics.DefaultMaxRadius,
		},
		Fountain: FountainConfig{
			Interval: DefaultInterval,
			Scale:    DefaultScale,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys missing from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run parameters. Physical quantities are left alone:
// the engine accepts any gravity, response or boundary.
func (c *Config) Validate() error {
	switch {
	case c.Particles < 0:
		return fmt.Errorf("%w: particles must not be negative, got %d", ErrInvalid, c.Particles)
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalid, c.Dt)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalid, c.Duration)
	case c.SubSteps < 1:
		return fmt.Errorf("%w: substeps must be at least 1, got %d", ErrInvalid, c.SubSteps)
	case c.RecordEvery < 0:
		return fmt.Errorf("%w: record_every must not be negative", ErrInvalid)
	case c.Radius.Min > c.Radius.Max:
		return fmt.Errorf("%w: radius min %g above max %g", ErrInvalid, c.Radius.Min, c.Radius.Max)
	case c.Fountain.Enabled && c.Fountain.Interval <= 0:
		return fmt.Errorf("%w: fountain interval must be positive", ErrInvalid)
	case c.Chain.Length < 0:
		return fmt.Errorf("%w: chain length must not be negative", ErrInvalid)
	}
	return nil
}

// NewUniverse builds the initial universe described by c.
func (c *Config) NewUniverse(rnd physics.RandSource) *physics.Universe {
	u := physics.New(0, rnd)
	u.SetGravity(c.Gravity)
	u.SetResponseCoeff(c.ResponseCoeff)
	u.SetBoundary(c.Boundary.X, c.Boundary.Y, c.Boundary.Radius)
	u.MinRadius, u.MaxRadius = c.Radius.Min, c.Radius.Max
	u.AnchorFixed = c.AnchorFixed

	if c.Chain.Length > 0 {
		from := physics.Vec2{X: c.Chain.From.X, Y: c.Chain.From.Y}
		to := physics.Vec2{X: c.Chain.To.X, Y: c.Chain.To.Y}
		u.AddChain(from, to, c.Chain.Length, c.Chain.Radius, c.Chain.Color, c.Chain.AnchorFirst, c.Chain.AnchorLast)
	}
	for i := 0; i < c.Particles; i++ {
		u.AddRandom()
	}
	return u
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		SubSteps:      c.SubSteps,
		RecordEvery:   c.RecordEvery,
		ValidateState: true,
	}
}

// NewFountain returns the configured fountain, disabled when the config
// does not enable it.
func (c *Config) NewFountain(rnd physics.RandSource) *sim.Fountain {
	f := sim.NewFountain(c.Fountain.Interval, c.Fountain.Scale, rnd)
	f.Enabled = c.Fountain.Enabled
	return f
}
