package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type navRowItem struct {
	row navRow
}

func (i navRowItem) FilterValue() string { return i.row.node.Label }
func (i navRowItem) Title() string       { return i.row.node.Label }

type navDelegate struct {
	normal   lipgloss.Style
	focused  lipgloss.Style
	selected lipgloss.Style
	onPath   lipgloss.Style
	divider  lipgloss.Style
}

func newNavDelegate() navDelegate {
	return navDelegate{
		normal: lipgloss.NewStyle().Foreground(colorSurfaceFg),
		focused: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		selected: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		onPath:   lipgloss.NewStyle().Foreground(colorAccent),
		divider:  styleMuted(),
	}
}

func (d navDelegate) Height() int  { return 1 }
func (d navDelegate) Spacing() int { return 0 }
func (d navDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d navDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}
	it, ok := item.(navRowItem)
	if !ok {
		fmt.Fprint(w, d.renderRow(contentW, d.normal, fmt.Sprint(item)))
		return
	}
	row := it.row
	if row.separator() {
		indent := strings.Repeat("  ", row.depth)
		rule := strings.Repeat(glyphHRule(), max(contentW-len(indent)-2, 1))
		fmt.Fprint(w, d.renderRow(contentW, d.divider, indent+"  "+rule))
		return
	}

	style := d.normal
	switch {
	case index == m.Index():
		style = d.focused
	case row.selected:
		style = d.selected
	case row.onPath:
		style = d.onPath
	}
	fmt.Fprint(w, d.renderRow(contentW, style, rowLine(row)))
}

// rowLine is the plain text of a sidebar row: indent, twisty column, label.
func rowLine(row navRow) string {
	twisty := " "
	if row.expandable {
		if row.open {
			twisty = glyphTwistyExpanded()
		} else {
			twisty = glyphTwistyCollapsed()
		}
	}
	line := strings.Repeat("  ", row.depth) + twisty + " " + row.node.Label
	if row.tabPage {
		line += " " + glyphTabs()
	}
	return line
}

func (d navDelegate) renderRow(width int, style lipgloss.Style, line string) string {
	plainW := xansi.StringWidth(line)
	if plainW < width {
		line += strings.Repeat(" ", width-plainW)
	} else if plainW > width {
		line = xansi.Cut(line, 0, width)
	}
	return style.Render(line)
}
