// Package physics implements a step-based 2D particle universe driven by
// position Verlet integration.
//
// A [Universe] owns an ordered particle store and a constraint [Registry]
// (fixed anchors and pairwise links). Each call to [Universe.Tick] runs three
// strictly sequential passes:
//
//   - [Universe.Update]: integrate every particle from its implied velocity
//   - [Universe.SolveCollisions]: resolve every unordered pair once, in place
//   - [Universe.ApplyConstraints]: project particles back inside the boundary disc
//
// # Example
//
//	u := physics.New(100, rand.New(rand.NewSource(1)))
//	u.SetGravity(0.001)
//	for frame := 0; frame < 60; frame++ {
//	    u.Tick(16)
//	}
//	raw := u.Bytes() // Len()*RecordSize bytes, laid out as [Particle]
//
// # Thread Safety
//
// Universe instances are NOT thread-safe. Independent instances may be driven
// from separate goroutines.
package physics
