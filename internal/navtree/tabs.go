package navtree

import "wikitree/internal/model"

// TabContext describes a content page whose children are shown as tabs.
type TabContext struct {
	Page   *model.Node  `json:"page,omitempty"`
	Tabs   []model.Node `json:"tabs,omitempty"`
	Active int          `json:"active"`
}

// Tabs derives the tab context for an active path: the deepest path node with
// hideChildren is the page; the path element below it picks the active tab.
func Tabs(p Path) TabContext {
	for i := len(p) - 1; i >= 0; i-- {
		n := p[i]
		if !n.HideChildren {
			continue
		}
		page := n
		tc := TabContext{Page: &page, Tabs: n.Children, Active: -1}
		if len(n.Children) == 0 {
			return tc
		}
		tc.Active = 0
		if i+1 < len(p) {
			for j, ch := range n.Children {
				if ch.ID == p[i+1].ID {
					tc.Active = j
					break
				}
			}
		}
		return tc
	}
	return TabContext{Active: -1}
}
