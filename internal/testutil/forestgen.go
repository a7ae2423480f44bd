// Package testutil holds generators shared by property tests.
package testutil

import (
	"fmt"

	"wikitree/internal/model"

	"pgregory.net/rapid"
)

// Forest draws a forest with unique ids ("n0", "n1", ...) and unique labels
// ("Topic 0", ...). Separators appear only as leaves at any depth.
func Forest() *rapid.Generator[model.Forest] {
	return rapid.Custom(func(t *rapid.T) model.Forest {
		next := 0
		var gen func(depth int) []model.Node
		gen = func(depth int) []model.Node {
			maxWidth := 4
			if depth >= 3 {
				maxWidth = 0
			}
			width := rapid.IntRange(0, maxWidth).Draw(t, fmt.Sprintf("width@%d", depth))
			out := make([]model.Node, 0, width)
			for i := 0; i < width; i++ {
				id := fmt.Sprintf("n%d", next)
				next++
				if rapid.IntRange(0, 9).Draw(t, "sepRoll") == 0 {
					out = append(out, model.Separator(id))
					continue
				}
				n := model.Node{
					ID:           id,
					Label:        fmt.Sprintf("Topic %s", id[1:]),
					Kind:         rapid.SampledFrom([]model.Kind{model.KindItem, model.KindGroup}).Draw(t, "kind"),
					HideChildren: rapid.IntRange(0, 4).Draw(t, "hideRoll") == 0,
				}
				n.Children = gen(depth + 1)
				if len(n.Children) == 0 {
					n.Children = nil
				}
				out = append(out, n)
			}
			return out
		}
		f := model.Forest(gen(0))
		if len(f) == 0 {
			f = model.Forest{model.Item("n-root", "Root")}
		}
		return f
	})
}

// AnyID draws one id present in f.
func AnyID(t *rapid.T, f model.Forest, label string) string {
	var ids []string
	f.Walk(func(n model.Node, _ int) bool {
		ids = append(ids, n.ID)
		return true
	})
	return rapid.SampledFrom(ids).Draw(t, label)
}

// Parents maps every node id to its parent id ("" for roots).
func Parents(f model.Forest) map[string]string {
	out := map[string]string{}
	var walk func(nodes []model.Node, parent string)
	walk = func(nodes []model.Node, parent string) {
		for _, n := range nodes {
			out[n.ID] = parent
			walk(n.Children, n.ID)
		}
	}
	walk(f, "")
	return out
}
