package component

// Registry is the flat, dense-ID-indexed arena owning every Unit in the
// system. Groups hold the same *Unit handles the registry owns as their
// leaf children, since a Unit may appear under more than one Group.
type Registry struct {
	units   []*Unit
	byName  map[string]*Unit
}

// NewRegistry creates an empty unit registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Unit)}
}

// Add registers a new unit, assigning it the next dense ID in creation order.
func (r *Registry) Add(name string, kind Kind, redundancy Redundancy) *Unit {
	u := NewUnit(len(r.units), name, kind, redundancy)
	r.units = append(r.units, u)
	r.byName[name] = u
	return u
}

// ByName resolves a unit name to its handle, or nil if the registry has no
// such unit — referencing an unknown unit name is a programmer/configuration
// error at the call site.
func (r *Registry) ByName(name string) *Unit {
	return r.byName[name]
}

// Units returns every registered unit in creation (dense-ID) order.
func (r *Registry) Units() []*Unit {
	return r.units
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	return len(r.units)
}
