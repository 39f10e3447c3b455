package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

var bounds = Bounds{Center: physics.Vec2{X: 320, Y: 320}, Radius: 320}

func particle(id uint32, x, y float32) physics.Particle {
	return physics.Particle{ID: id, Pos: physics.Vec2{X: x, Y: y}, Radius: 10, Color: 120}
}

func TestFrameToSVG(t *testing.T) {
	frame := sim.Frame{Particles: []physics.Particle{particle(0, 100, 200), particle(1, 300, 310)}}
	svg := FrameToSVG(frame, bounds)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("expected boundary plus 2 particles, got %d circles", n)
	}
	if !strings.Contains(svg, `cx="100.00" cy="200.00" r="10.00" fill="hsl(120, 100%, 50%)"`) {
		t.Errorf("particle circle missing:\n%s", svg)
	}
	if !strings.Contains(svg, `viewBox="0 0 640 640"`) {
		t.Errorf("unexpected viewBox:\n%s", svg)
	}
}

func TestTrajectory(t *testing.T) {
	frames := []sim.Frame{
		{Particles: []physics.Particle{particle(0, 1, 1), particle(1, 5, 5)}},
		{Particles: []physics.Particle{particle(0, 2, 2)}},
		{Particles: []physics.Particle{particle(1, 6, 6), particle(0, 3, 3)}},
	}

	got := Trajectory(frames, 1)
	if len(got) != 2 || got[0].X != 5 || got[1].X != 6 {
		t.Errorf("unexpected trajectory %v", got)
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]physics.Vec2{{X: 1, Y: 1}}, bounds, "#fff") != "" {
		t.Error("single point should produce no svg")
	}

	svg := TrajectoryToSVG([]physics.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}}, bounds, "#00ff00")
	if !strings.Contains(svg, `d="M1.0,2.0 L3.0,4.0"`) {
		t.Errorf("unexpected path:\n%s", svg)
	}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, svg); err != nil || buf.String() != svg {
		t.Error("WriteSVG did not copy the document")
	}
}
