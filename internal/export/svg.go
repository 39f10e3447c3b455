package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

// Bounds is the world disc a frame is drawn in.
type Bounds struct {
	Center physics.Vec2
	Radius float32
}

// FrameToSVG draws the boundary and every particle of frame as filled
// circles, coloured hsl(color, 100%, 50%). World units map 1:1 to SVG units.
func FrameToSVG(frame sim.Frame, b Bounds) string {
	size := 2 * b.Radius
	minX, minY := b.Center.X-b.Radius, b.Center.Y-b.Radius

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%g %g %g %g">
<rect x="%g" y="%g" width="%g" height="%g" fill="#0a0a0a"/>
<circle cx="%g" cy="%g" r="%g" fill="none" stroke="#444466" stroke-width="1"/>
`, size, size, minX, minY, size, size, minX, minY, size, size, b.Center.X, b.Center.Y, b.Radius))

	for _, p := range frame.Particles {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="hsl(%.0f, 100%%, 50%%)"/>
`, p.Pos.X, p.Pos.Y, p.Radius, p.Color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Trajectory collects the positions of particle id across frames. Frames
// where the particle is absent are skipped.
func Trajectory(frames []sim.Frame, id uint32) []physics.Vec2 {
	points := make([]physics.Vec2, 0, len(frames))
	for _, f := range frames {
		for _, p := range f.Particles {
			if p.ID == id {
				points = append(points, p.Pos)
				break
			}
		}
	}
	return points
}

// TrajectoryToSVG draws points as a polyline inside the boundary disc.
func TrajectoryToSVG(points []physics.Vec2, b Bounds, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	size := 2 * b.Radius
	minX, minY := b.Center.X-b.Radius, b.Center.Y-b.Radius

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%g %g %g %g">
<rect x="%g" y="%g" width="%g" height="%g" fill="#0a0a0a"/>
<circle cx="%g" cy="%g" r="%g" fill="none" stroke="#444466" stroke-width="1"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		size, size, minX, minY, size, size, minX, minY, size, size, b.Center.X, b.Center.Y, b.Radius, strokeColor))

	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func WriteSVG(w io.Writer, svg string) error {
	_, err := io.WriteString(w, svg)
	return err
}
