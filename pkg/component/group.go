package component

// Node is the common interface shared by Group and the Unit wrapper used in
// the failure dependency tree, so Walk/ConditionalWalk can traverse both
// uniformly.
type Node interface {
	NodeName() string
	Failed() bool
	Children() []Node
}

// NodeName identifies a Unit in the tree.
func (u *Unit) NodeName() string { return u.Name }

// Children returns nil for a Unit: it is always a leaf.
func (u *Unit) Children() []Node { return nil }

// Group is an internal node of the failure dependency tree: it fails when
// strictly more than Failures of its direct children have failed.
type Group struct {
	Name     string
	Failures int // threshold; 0 = intolerant to any child failure
	children []Node

	// ttfs records observed failure times across MC iterations, mirroring
	// Unit.ttfs.
	ttfs []float64
}

// NewGroup constructs an empty Group with the given failure threshold.
func NewGroup(name string, failures int) *Group {
	return &Group{Name: name, Failures: failures}
}

// AddChild appends a child node (Group or Unit) to g.
func (g *Group) AddChild(n Node) {
	g.children = append(g.children, n)
}

// NodeName returns the group's name.
func (g *Group) NodeName() string { return g.Name }

// Children returns the group's direct children in insertion order.
func (g *Group) Children() []Node { return g.children }

// Failed reports whether strictly more than g.Failures direct children are
// failed. Evaluated on demand, not memoised.
func (g *Group) Failed() bool {
	count := 0
	for _, c := range g.children {
		if c.Failed() {
			count++
		}
	}
	return count > g.Failures
}

// RecordTTF appends t to the group's observed failure times.
func (g *Group) RecordTTF(t float64) {
	g.ttfs = append(g.ttfs, t)
}

// TTFs returns the observed failure times recorded so far.
func (g *Group) TTFs() []float64 {
	return g.ttfs
}

// Walk performs a prefix depth-first traversal of every node in the tree
// rooted at root, calling op on each.
func Walk(root Node, op func(Node)) {
	op(root)
	for _, c := range root.Children() {
		Walk(c, op)
	}
}

// ConditionalWalk descends into a node's children only when op(node)
// returns true; it always calls op on root first. Used to discover the
// failure frontier: the topmost failed nodes block further descent.
func ConditionalWalk(root Node, op func(Node) bool) {
	if !op(root) {
		return
	}
	for _, c := range root.Children() {
		ConditionalWalk(c, op)
	}
}

// FailureFrontier returns the names of the topmost failed nodes reachable
// from root: ConditionalWalk descends while a node is healthy, and records
// each failed node's name without descending into it.
func FailureFrontier(root Node) []string {
	var frontier []string
	ConditionalWalk(root, func(n Node) bool {
		if n.Failed() {
			frontier = append(frontier, n.NodeName())
			return false
		}
		return true
	})
	return frontier
}

// UnitsBehindFailure returns the set of Units (by name) that are enclosed by
// an already-failed Group anywhere in the tree rooted at root — i.e. every
// Unit not reachable through ConditionalWalk's healthy-only descent — the
// "parents failed" promotion applied once an enclosing group has failed.
func UnitsBehindFailure(root Node, allUnits []*Unit) map[string]bool {
	reachable := make(map[string]bool)
	ConditionalWalk(root, func(n Node) bool {
		if u, ok := n.(*Unit); ok {
			reachable[u.Name] = true
		}
		return !n.Failed()
	})
	behind := make(map[string]bool)
	for _, u := range allUnits {
		if !reachable[u.Name] {
			behind[u.Name] = true
		}
	}
	return behind
}
