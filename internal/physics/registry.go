package physics

// Registry holds the fixed set and the link map, keyed by particle id.
// Ids that name no particle are accepted and stay inert.
type Registry struct {
	fixed map[uint32]struct{}
	links map[uint32]uint32
}

func NewRegistry() *Registry {
	return &Registry{
		fixed: make(map[uint32]struct{}),
		links: make(map[uint32]uint32),
	}
}

func (r *Registry) Fix(id uint32) { r.fixed[id] = struct{}{} }

func (r *Registry) IsFixed(id uint32) bool {
	_, ok := r.fixed[id]
	return ok
}

// Link records a and b as partners in both directions. A previous partner of
// a or b keeps its own entry, so the old relation becomes one-directional.
func (r *Registry) Link(a, b uint32) {
	r.links[a] = b
	r.links[b] = a
}

func (r *Registry) Partner(id uint32) (uint32, bool) {
	p, ok := r.links[id]
	return p, ok
}

func (r *Registry) NumFixed() int { return len(r.fixed) }
func (r *Registry) NumLinks() int { return len(r.links) }

func (r *Registry) Clear() {
	clear(r.fixed)
	clear(r.links)
}
