package physics

// ApplyConstraints projects every particle that pokes out of the boundary
// disc back onto its edge, along the ray from the center.
func (u *Universe) ApplyConstraints() {
	for i := range u.particles {
		p := &u.particles[i]
		if u.AnchorFixed && u.constraints.IsFixed(p.ID) {
			continue
		}
		p.Pos = u.constrain(p.Pos, p.Radius)
	}
}

func (u *Universe) constrain(pos Vec2, radius float32) Vec2 {
	toP := pos.Sub(u.Center)
	maxDist := u.BoundaryRadius - radius
	if toP.Len() <= maxDist {
		return pos
	}
	return u.Center.Add(toP.Norm().Scale(maxDist))
}
