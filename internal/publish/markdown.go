package publish

import (
	"bytes"
	"strings"

	"wikitree/internal/model"
)

type MarkdownOptions struct {
	// Title is the top-level heading; empty means "Navigation".
	Title string
	// Images prefixes labels with their icon when a node has an imageUrl.
	Images bool
}

// RenderMarkdown renders the forest as a nested bullet outline. Root
// separators become thematic breaks; hideChildren nodes list their children
// on one "Tabs:" line instead of nesting them.
func RenderMarkdown(f model.Forest, opt MarkdownOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Navigation"
	}
	writeLn("# " + title)
	writeLn("")

	var walk func(nodes []model.Node, depth int)
	walk = func(nodes []model.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		for _, n := range nodes {
			if n.IsSeparator() {
				if depth == 0 {
					writeLn("")
					writeLn("---")
					writeLn("")
				} else {
					writeLn(indent + "- ---")
				}
				continue
			}
			writeLn(indent + "- " + markdownLabel(n, opt))
			if n.HideChildren {
				if tabs := tabLabels(n); len(tabs) > 0 {
					writeLn(indent + "  - Tabs: " + strings.Join(tabs, " · "))
				}
				continue
			}
			walk(n.Children, depth+1)
		}
	}
	walk(f, 0)
	return buf.String()
}

func markdownLabel(n model.Node, opt MarkdownOptions) string {
	label := escapeMarkdown(strings.TrimSpace(n.Label))
	if n.EffectiveKind() == model.KindGroup {
		label = "**" + label + "**"
	}
	if opt.Images && strings.TrimSpace(n.ImageURL) != "" {
		label = "![](" + strings.TrimSpace(n.ImageURL) + ") " + label
	}
	return label
}

func tabLabels(n model.Node) []string {
	out := make([]string, 0, len(n.Children))
	for _, ch := range n.Children {
		if ch.IsSeparator() {
			continue
		}
		out = append(out, escapeMarkdown(strings.TrimSpace(ch.Label)))
	}
	return out
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`", `[`, `\[`, `]`, `\]`)

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }

// RenderText renders an indented plain-text tree with node ids, for terminals
// and pipes. Groups end in "/", hidden tab pages are marked "(tabs)" and their
// children are prefixed with ">". Separators print as "----" with their id.
func RenderText(f model.Forest) string {
	var buf bytes.Buffer
	var walk func(nodes []model.Node, depth int, tabs bool)
	walk = func(nodes []model.Node, depth int, tabs bool) {
		indent := strings.Repeat("  ", depth)
		for _, n := range nodes {
			if n.IsSeparator() {
				buf.WriteString(indent + "----  [" + n.ID + "]\n")
				continue
			}
			line := indent
			if tabs {
				line += "> "
			}
			line += strings.TrimSpace(n.Label)
			if n.EffectiveKind() == model.KindGroup {
				line += "/"
			}
			if n.HideChildren {
				line += " (tabs)"
			}
			buf.WriteString(line + "  [" + n.ID + "]\n")
			walk(n.Children, depth+1, n.HideChildren)
		}
	}
	walk(f, 0, false)
	return buf.String()
}
