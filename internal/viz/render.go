package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/verletsim/internal/physics"
)

const hueBuckets = 24

var hueStyles = func() [hueBuckets]lipgloss.Style {
	var styles [hueBuckets]lipgloss.Style
	for i := range styles {
		styles[i] = lipgloss.NewStyle().Foreground(HueColor(float32(i * 360 / hueBuckets)))
	}
	return styles
}()

// HueColor matches the renderer convention hsl(hue, 100%, 50%).
func HueColor(hue float32) lipgloss.Color {
	h := math.Mod(float64(hue), 360)
	if h < 0 {
		h += 360
	}
	return lipgloss.Color(colorful.Hsl(h, 1, 0.5).Hex())
}

func bucket(hue float32) int {
	if hue == noHue {
		return -1
	}
	h := math.Mod(float64(hue), 360)
	if h < 0 {
		h += 360
	}
	return int(h/360*hueBuckets) % hueBuckets
}

// Render draws the canvas with tinted cells coloured by hue and the rest in
// the theme's muted colour. Runs of equal colour share one style call.
func (c *Canvas) Render(theme Theme) string {
	plain := lipgloss.NewStyle().Foreground(theme.Muted)
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && bucket(c.Hue[row][col]) == bucket(c.Hue[row][start]) {
				continue
			}
			run := string(c.Grid[row][start:col])
			if k := bucket(c.Hue[row][start]); k >= 0 {
				b.WriteString(hueStyles[k].Render(run))
			} else {
				b.WriteString(plain.Render(run))
			}
			start = col
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Projector maps world coordinates around the boundary disc onto canvas
// sub-pixels, keeping the disc round and centred.
type Projector struct {
	Center  physics.Vec2
	Scale   float64
	OffsetX float64
	OffsetY float64
}

func NewProjector(c *Canvas, center physics.Vec2, radius float32) Projector {
	cw, ch := float64(c.Width*2), float64(c.Height*4)
	side := math.Min(cw, ch)
	scale := 1.0
	if radius > 0 {
		scale = (side - 2) / (2 * float64(radius))
	}
	return Projector{Center: center, Scale: scale, OffsetX: cw / 2, OffsetY: ch / 2}
}

func (p Projector) Point(v physics.Vec2) (int, int) {
	x := float64(v.X-p.Center.X)*p.Scale + p.OffsetX
	y := float64(v.Y-p.Center.Y)*p.Scale + p.OffsetY
	return int(math.Round(x)), int(math.Round(y))
}

func (p Projector) Length(l float32) int {
	return int(math.Round(float64(l) * p.Scale))
}

// DrawUniverse renders the boundary, link segments and particles.
func DrawUniverse(c *Canvas, u *physics.Universe) {
	c.Clear()
	proj := NewProjector(c, u.Center, u.BoundaryRadius)

	cx, cy := proj.Point(u.Center)
	c.DrawCircle(cx, cy, proj.Length(u.BoundaryRadius))

	ps := u.Particles()
	index := make(map[uint32]int, len(ps))
	for i, p := range ps {
		index[p.ID] = i
	}
	reg := u.Constraints()
	for _, p := range ps {
		partner, ok := reg.Partner(p.ID)
		if !ok || partner < p.ID {
			continue
		}
		j, ok := index[partner]
		if !ok {
			continue
		}
		x0, y0 := proj.Point(p.Pos)
		x1, y1 := proj.Point(ps[j].Pos)
		c.DrawLine(x0, y0, x1, y1)
	}

	for _, p := range ps {
		x, y := proj.Point(p.Pos)
		r := proj.Length(p.Radius)
		if reg.IsFixed(p.ID) {
			c.DrawCircle(x, y, r+1)
		}
		c.FillCircle(x, y, r, p.Color)
	}
}
