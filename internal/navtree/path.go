// Package navtree resolves active paths through the navigation forest.
package navtree

import "wikitree/internal/model"

// Path is a root-to-node chain. The first element is a root and each element is
// a direct child of the one before it. An empty path means "no active topic".
type Path []model.Node

// FindPath returns the path to the first node (pre-order, left to right) whose
// label equals label. Separators never match. Children hidden from the menu via
// hideChildren are still searched.
func FindPath(f model.Forest, label string) Path {
	return find(f, func(n model.Node) bool { return n.Label == label })
}

// FindPathByID is FindPath keyed by node id.
func FindPathByID(f model.Forest, id string) Path {
	if id == "" {
		return nil
	}
	return find(f, func(n model.Node) bool { return n.ID == id })
}

func find(nodes []model.Node, match func(model.Node) bool) Path {
	for _, n := range nodes {
		if n.IsSeparator() {
			continue
		}
		if match(n) {
			return Path{n}
		}
		if sub := find(n.Children, match); len(sub) > 0 {
			return append(Path{n}, sub...)
		}
	}
	return nil
}

func (p Path) Empty() bool { return len(p) == 0 }

// Last returns the selected node; ok is false for an empty path.
func (p Path) Last() (model.Node, bool) {
	if len(p) == 0 {
		return model.Node{}, false
	}
	return p[len(p)-1], true
}

func (p Path) Labels() []string {
	out := make([]string, 0, len(p))
	for _, n := range p {
		out = append(out, n.Label)
	}
	return out
}

func (p Path) IDs() []string {
	out := make([]string, 0, len(p))
	for _, n := range p {
		out = append(out, n.ID)
	}
	return out
}

func (p Path) Contains(id string) bool {
	for _, n := range p {
		if n.ID == id {
			return true
		}
	}
	return false
}

// IsSelected reports whether id is the last element of the path.
func (p Path) IsSelected(id string) bool {
	last, ok := p.Last()
	return ok && last.ID == id
}
