package physics

// SolveCollisions resolves every unordered pair (i, j), i < j, exactly once by
// positional correction. Corrections are written back immediately, so a pair
// sees the positions left by the pairs enumerated before it. A single pass
// only partially separates clusters; they settle over several ticks.
func (u *Universe) SolveCollisions() {
	n := len(u.particles)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			u.solvePair(&u.particles[i], &u.particles[j])
		}
	}
}

func (u *Universe) solvePair(p1, p2 *Particle) {
	fixed1 := u.constraints.IsFixed(p1.ID)
	fixed2 := u.constraints.IsFixed(p2.ID)
	if fixed1 && fixed2 {
		return
	}

	delta := p1.Pos.Sub(p2.Pos)
	dist := delta.Len()
	reqDist := p1.Radius + p2.Radius
	if dist > reqDist {
		// Linked pairs are pulled back toward contact distance.
		partner, ok := u.constraints.Partner(p1.ID)
		if !ok || partner != p2.ID {
			return
		}
	}
	diff := reqDist - dist

	var m1 float32
	switch {
	case fixed1:
		m1 = 1
	case fixed2:
		m1 = 0
	case reqDist == 0:
		m1 = 0.5
	default:
		m1 = p1.Radius / reqDist
	}
	m2 := 1 - m1

	dir := delta.Norm()
	p1.Pos = p1.Pos.Add(dir.Scale(m2 * u.ResponseCoeff * diff))
	p2.Pos = p2.Pos.Add(dir.Scale(-m1 * u.ResponseCoeff * diff))
}
