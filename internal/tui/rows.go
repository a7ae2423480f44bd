package tui

import (
	"wikitree/internal/model"
	"wikitree/internal/navtree"
)

type navRow struct {
	node  model.Node
	depth int

	// expandable is false for leaves and hideChildren pages.
	expandable bool
	open       bool
	tabPage    bool

	onPath   bool
	selected bool
}

func (r navRow) separator() bool { return r.node.IsSeparator() }

// flattenForest lists the visible sidebar rows in pre-order. Children of
// collapsed nodes and of hideChildren pages are not listed.
func flattenForest(f model.Forest, st *expandState, active navtree.Path) []navRow {
	selectedID := ""
	if last, ok := active.Last(); ok {
		selectedID = last.ID
	}

	var out []navRow
	var walk func(nodes []model.Node, depth int)
	walk = func(nodes []model.Node, depth int) {
		for _, n := range nodes {
			row := navRow{node: n, depth: depth}
			if !n.IsSeparator() {
				row.tabPage = n.HideChildren && n.HasChildren()
				row.expandable = n.HasChildren() && !n.HideChildren
				row.open = row.expandable && st.isOpen(n.ID)
				row.selected = n.ID == selectedID
				row.onPath = !row.selected && active.Contains(n.ID)
			}
			out = append(out, row)
			if row.open {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(f, 0)
	return out
}
