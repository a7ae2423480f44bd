package model

import (
	"fmt"
	"strings"
	"time"
)

type Kind string

const (
	KindItem      Kind = "item"
	KindGroup     Kind = "group"
	KindSeparator Kind = "separator"
)

// ParseKind maps user input to a Kind. Empty input is an item.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "item":
		return KindItem, nil
	case "group":
		return KindGroup, nil
	case "separator", "sep":
		return KindSeparator, nil
	default:
		return "", fmt.Errorf("unknown node kind: %s", s)
	}
}

// Node is one entry of the navigation tree.
//
// Separators carry no label, children or hideChildren flag; use the Item, Group and
// Separator constructors to build well-formed values.
type Node struct {
	ID           string `json:"id" yaml:"id"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	Kind         Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Children     []Node `json:"children,omitempty" yaml:"children,omitempty"`
	HideChildren bool   `json:"hideChildren,omitempty" yaml:"hideChildren,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// Forest is the ordered list of root nodes.
type Forest []Node

func Item(id, label string, children ...Node) Node {
	return Node{ID: id, Label: label, Kind: KindItem, Children: children}
}

func Group(id, label string, children ...Node) Node {
	return Node{ID: id, Label: label, Kind: KindGroup, Children: children}
}

func Separator(id string) Node {
	return Node{ID: id, Kind: KindSeparator}
}

// EffectiveKind treats an unset kind as item.
func (n Node) EffectiveKind() Kind {
	if n.Kind == "" {
		return KindItem
	}
	return n.Kind
}

func (n Node) IsSeparator() bool { return n.EffectiveKind() == KindSeparator }

func (n Node) HasChildren() bool { return len(n.Children) > 0 }

// Clone returns a deep copy of the subtree rooted at n.
func (n Node) Clone() Node {
	out := n
	if n.Children != nil {
		out.Children = make([]Node, len(n.Children))
		for i, ch := range n.Children {
			out.Children[i] = ch.Clone()
		}
	}
	return out
}

// Count returns the number of nodes in the subtree rooted at n, n included.
func (n Node) Count() int {
	total := 1
	for _, ch := range n.Children {
		total += ch.Count()
	}
	return total
}

func (f Forest) Clone() Forest {
	if f == nil {
		return nil
	}
	out := make(Forest, len(f))
	for i, n := range f {
		out[i] = n.Clone()
	}
	return out
}

func (f Forest) Count() int {
	total := 0
	for _, n := range f {
		total += n.Count()
	}
	return total
}

// Walk visits every node in pre-order. Returning false from fn stops the walk.
func (f Forest) Walk(fn func(n Node, depth int) bool) {
	var walk func(nodes []Node, depth int) bool
	walk = func(nodes []Node, depth int) bool {
		for _, n := range nodes {
			if !fn(n, depth) {
				return false
			}
			if !walk(n.Children, depth+1) {
				return false
			}
		}
		return true
	}
	walk(f, 0)
}

func (f Forest) Find(id string) (Node, bool) {
	var out Node
	found := false
	f.Walk(func(n Node, _ int) bool {
		if n.ID == id {
			out = n
			found = true
			return false
		}
		return true
	})
	return out, found
}

func (f Forest) Contains(id string) bool {
	_, ok := f.Find(id)
	return ok
}

// IDs returns the set of all ids in the forest.
func (f Forest) IDs() map[string]bool {
	out := map[string]bool{}
	f.Walk(func(n Node, _ int) bool {
		out[n.ID] = true
		return true
	})
	return out
}

// Event is one audit entry recorded when the tree changes.
type Event struct {
	ID      int64     `json:"id"`
	TS      time.Time `json:"ts"`
	Type    string    `json:"type"`
	NodeID  string    `json:"nodeId,omitempty"`
	Payload any       `json:"payload,omitempty"`
}
