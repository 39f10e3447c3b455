package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"rain": with(func(c *Config) {
		c.Name = "rain"
		c.Particles = 0
		c.Fountain = FountainConfig{Enabled: true, Interval: 50, Scale: 8}
		c.Duration = 8000
	}),
	"zero_g": with(func(c *Config) {
		c.Name = "zero_g"
		c.Gravity = 0
		c.Particles = 60
	}),
	"dense": with(func(c *Config) {
		c.Name = "dense"
		c.Particles = 250
		c.Radius = RadiusConfig{Min: 5, Max: 12}
		c.SubSteps = 8
	}),
	"chain": with(func(c *Config) {
		c.Name = "chain"
		c.Particles = 20
		c.AnchorFixed = true
		c.Chain = ChainConfig{
			Length: 12, Radius: 8, Color: 200,
			From: PointConfig{X: 200, Y: 200}, To: PointConfig{X: 440, Y: 200},
			AnchorFirst: true,
		}
	}),
	"bridge": with(func(c *Config) {
		c.Name = "bridge"
		c.Particles = 30
		c.AnchorFixed = true
		c.Chain = ChainConfig{
			Length: 16, Radius: 8, Color: 40,
			From: PointConfig{X: 80, Y: 320}, To: PointConfig{X: 560, Y: 320},
			AnchorFirst: true, AnchorLast: true,
		}
	}),
	"fountain": with(func(c *Config) {
		c.Name = "fountain"
		c.Particles = 30
		c.Fountain.Enabled = true
		c.Duration = 6000
	}),
}

func with(fn func(c *Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
