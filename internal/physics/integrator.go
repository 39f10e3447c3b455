package physics

// Update advances every particle by one position-Verlet step:
// pos' = pos + (pos - old) + (0, Gravity)*dt², old' = pos.
func (u *Universe) Update(dt float32) {
	acc := Vec2{0, u.Gravity}.Scale(dt * dt)
	for i := range u.particles {
		p := &u.particles[i]
		if u.AnchorFixed && u.constraints.IsFixed(p.ID) {
			continue
		}
		v := p.Velocity()
		p.OldPos = p.Pos
		p.Pos = p.Pos.Add(v).Add(acc)
	}
}
