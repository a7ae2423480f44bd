package tui

import (
	"strings"

	"wikitree/internal/model"
	"wikitree/internal/navtree"
)

// DefaultOpenRoot is the root section expanded on first render.
const DefaultOpenRoot = "Departments"

// expandState tracks which nodes are open in the sidebar. Nodes start
// collapsed; the user toggles them; every node on a newly active path is
// forced open.
type expandState struct {
	open        map[string]bool
	defaultRoot string
	initialized bool
	lastActive  string
}

func newExpandState(defaultRoot string) *expandState {
	defaultRoot = strings.TrimSpace(defaultRoot)
	if defaultRoot == "" {
		defaultRoot = DefaultOpenRoot
	}
	return &expandState{open: map[string]bool{}, defaultRoot: defaultRoot}
}

// init opens the first root labelled defaultRoot. Later calls are no-ops.
func (s *expandState) init(f model.Forest) {
	if s.initialized {
		return
	}
	s.initialized = true
	for _, n := range f {
		if !n.IsSeparator() && n.Label == s.defaultRoot {
			s.open[n.ID] = true
			return
		}
	}
}

func (s *expandState) isOpen(id string) bool { return s.open[id] }

func (s *expandState) toggle(id string) { s.open[id] = !s.open[id] }

func (s *expandState) setOpen(id string, open bool) { s.open[id] = open }

// syncActive force-expands every node on p when the active path changed
// since the last call. Re-syncing the same path leaves user toggles alone.
func (s *expandState) syncActive(p navtree.Path) {
	key := strings.Join(p.IDs(), "/")
	if key == s.lastActive {
		return
	}
	s.lastActive = key
	for _, n := range p {
		s.open[n.ID] = true
	}
}

// forget drops state for ids no longer in f.
func (s *expandState) forget(f model.Forest) {
	ids := f.IDs()
	for id := range s.open {
		if !ids[id] {
			delete(s.open, id)
		}
	}
}
