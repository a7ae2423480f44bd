package tui

import (
	"context"
	"strings"

	"wikitree/internal/model"
	"wikitree/internal/mutate"
	"wikitree/internal/navtree"
	"wikitree/internal/publish"
	"wikitree/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeRename
	modeAddChild
	modeAddRoot
	modeConfirmDelete
)

type pendingEvent struct {
	typ     string
	nodeID  string
	payload any
}

type appModel struct {
	ctx   context.Context
	store store.Store
	log   *log.Logger

	forest   model.Forest
	ids      *mutate.Session
	expand   *expandState
	activeID string

	list  list.Model
	input textinput.Model
	mode  inputMode
	// target is the node a pending rename/add/delete applies to.
	target string

	width  int
	height int

	dirty    bool
	quitArm  bool
	status   string
	statusOK bool
	pending  []pendingEvent
}

func newAppModel(ctx context.Context, opt Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	lg := opt.Log
	if lg == nil {
		lg = log.Default()
	}
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 200

	m := appModel{
		ctx:    ctx,
		store:  opt.Store,
		log:    lg,
		forest: opt.Forest,
		ids:    mutate.NewSession(opt.Forest),
		expand: newExpandState(opt.DefaultOpenRoot),
		input:  in,
		width:  80,
		height: 24,
	}
	m.list = newNavList()
	m.expand.init(m.forest)
	m.refreshRows("")
	m.resize()
	return m
}

func newNavList() list.Model {
	l := list.New(nil, newNavDelegate(), 0, 0)
	// Header, breadcrumb and footer are drawn by the app, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	return l
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) activePath() navtree.Path {
	return navtree.FindPathByID(m.forest, m.activeID)
}

func (m appModel) focusedRow() (navRow, bool) {
	it, ok := m.list.SelectedItem().(navRowItem)
	if !ok {
		return navRow{}, false
	}
	return it.row, true
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeRename, modeAddChild, modeAddRoot:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m appModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" {
		m.quitArm = false
	}
	switch key {
	case "q":
		if m.dirty && !m.quitArm {
			m.quitArm = true
			m.setStatus("unsaved changes: s to save, q again to quit", false)
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		if row, ok := m.focusedRow(); ok {
			m.activate(row.node.ID)
		}
		return m, nil

	case " ", "space", "tab":
		if row, ok := m.focusedRow(); ok && row.expandable {
			m.expand.toggle(row.node.ID)
			m.refreshRows(row.node.ID)
		}
		return m, nil

	case "[", "]":
		m.cycleTab(key == "]")
		return m, nil

	case "r":
		row, ok := m.focusedRow()
		if !ok {
			return m, nil
		}
		if row.separator() {
			m.setStatus(mutate.ErrSeparator.Error(), false)
			return m, nil
		}
		return m.beginInput(modeRename, row.node.ID, row.node.Label)

	case "a":
		row, ok := m.focusedRow()
		if !ok {
			return m, nil
		}
		if row.separator() {
			m.setStatus(mutate.ErrSeparator.Error(), false)
			return m, nil
		}
		return m.beginInput(modeAddChild, row.node.ID, "")

	case "A":
		return m.beginInput(modeAddRoot, "", "")

	case "d":
		if row, ok := m.focusedRow(); ok {
			m.mode = modeConfirmDelete
			m.target = row.node.ID
		}
		return m, nil

	case "h":
		m.toggleHideChildren()
		return m, nil

	case "s":
		m.save()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.list.Index()
	m.list, cmd = m.list.Update(msg)
	m.skipSeparator(m.list.Index() >= before)
	return m, cmd
}

func (m appModel) beginInput(mode inputMode, target, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.target = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = mutate.PlaceholderLabel
	cmd := m.input.Focus()
	return m, cmd
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.endInput()
		return m, nil
	case "enter":
		label := m.input.Value()
		mode, target := m.mode, m.target
		m.endInput()
		switch mode {
		case modeRename:
			m.rename(target, label)
		case modeAddChild:
			m.add(target, label)
		case modeAddRoot:
			m.add("", label)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) endInput() {
	m.mode = modeNormal
	m.target = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id := m.target
		m.mode = modeNormal
		m.target = ""
		m.delete(id)
	case "n", "N", "esc", "ctrl+g", "q":
		m.mode = modeNormal
		m.target = ""
	}
	return m, nil
}

func (m *appModel) activate(id string) {
	m.activeID = id
	m.expand.syncActive(m.activePath())
	m.refreshRows(id)
}

func (m *appModel) rename(id, label string) {
	next, err := mutate.Rename(m.forest, id, label, nil)
	if err != nil {
		m.setStatus(err.Error(), false)
		return
	}
	m.apply(next, pendingEvent{typ: store.EventRename, nodeID: id, payload: map[string]string{"label": strings.TrimSpace(label)}}, id)
}

func (m *appModel) add(parentID, label string) {
	n, err := m.ids.NewNode(m.forest, label, model.KindItem)
	if err != nil {
		m.setStatus(err.Error(), false)
		return
	}
	var (
		next model.Forest
		ev   pendingEvent
	)
	if parentID == "" {
		next, err = mutate.AddRoot(m.forest, n)
		ev = pendingEvent{typ: store.EventAddRoot, nodeID: n.ID, payload: map[string]string{"label": n.Label}}
	} else {
		next, err = mutate.AddChild(m.forest, parentID, n)
		ev = pendingEvent{typ: store.EventAddChild, nodeID: n.ID, payload: map[string]string{"parentId": parentID, "label": n.Label}}
	}
	if err != nil {
		m.setStatus(err.Error(), false)
		return
	}
	if parentID != "" {
		m.expand.setOpen(parentID, true)
	}
	m.apply(next, ev, n.ID)
}

func (m *appModel) delete(id string) {
	before := navtree.FindPathByID(m.forest, id)
	next, err := mutate.Delete(m.forest, id)
	if err != nil {
		m.setStatus(err.Error(), false)
		return
	}
	focus := ""
	if len(before) > 1 {
		focus = before[len(before)-2].ID
	}
	if navtree.FindPathByID(next, m.activeID).Empty() {
		m.activeID = focus
	}
	m.apply(next, pendingEvent{typ: store.EventDelete, nodeID: id}, focus)
	m.expand.forget(m.forest)
}

func (m *appModel) toggleHideChildren() {
	row, ok := m.focusedRow()
	if !ok {
		return
	}
	hide := !row.node.HideChildren
	next, err := mutate.SetHideChildren(m.forest, row.node.ID, hide)
	if err != nil {
		m.setStatus(err.Error(), false)
		return
	}
	m.apply(next, pendingEvent{typ: store.EventHideChildren, nodeID: row.node.ID, payload: map[string]bool{"hide": hide}}, row.node.ID)
}

func (m *appModel) apply(next model.Forest, ev pendingEvent, focusID string) {
	m.forest = next
	m.dirty = true
	m.pending = append(m.pending, ev)
	m.status = ""
	m.refreshRows(focusID)
}

func (m *appModel) save() {
	if strings.TrimSpace(m.store.Dir) == "" {
		m.setStatus("no workspace to save to", false)
		return
	}
	if err := m.store.Save(m.ctx, m.forest); err != nil {
		m.setStatus("save failed: "+err.Error(), false)
		return
	}
	for _, ev := range m.pending {
		if err := m.store.AppendEvent(m.ctx, ev.typ, ev.nodeID, ev.payload); err != nil {
			m.log.Warn("event append failed", "type", ev.typ, "err", err)
		}
	}
	if err := m.store.AppendEvent(m.ctx, store.EventSave, "", map[string]int{"nodes": m.forest.Count(), "changes": len(m.pending)}); err != nil {
		m.log.Warn("event append failed", "type", store.EventSave, "err", err)
	}
	m.pending = nil
	m.dirty = false
	m.setStatus("saved", true)
}

func (m *appModel) setStatus(s string, ok bool) {
	m.status = s
	m.statusOK = ok
}

// cycleTab moves the active path to the next or previous tab of the current
// tab page.
func (m *appModel) cycleTab(forward bool) {
	tc := navtree.Tabs(m.activePath())
	if tc.Page == nil || len(tc.Tabs) == 0 {
		return
	}
	i := tc.Active
	for step := 0; step < len(tc.Tabs); step++ {
		if forward {
			i = (i + 1) % len(tc.Tabs)
		} else {
			i = (i - 1 + len(tc.Tabs)) % len(tc.Tabs)
		}
		if !tc.Tabs[i].IsSeparator() {
			break
		}
	}
	m.activate(tc.Tabs[i].ID)
}

// refreshRows rebuilds the sidebar, keeping the cursor on focusID (or on the
// current row when focusID is empty or hidden).
func (m *appModel) refreshRows(focusID string) {
	if focusID == "" {
		if row, ok := m.focusedRow(); ok {
			focusID = row.node.ID
		}
	}
	idx := m.list.Index()
	rows := flattenForest(m.forest, m.expand, m.activePath())
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, navRowItem{row: r})
	}
	m.list.SetItems(items)
	for i, r := range rows {
		if r.node.ID == focusID {
			idx = i
			break
		}
	}
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.list.Select(idx)
	m.skipSeparator(true)
}

// skipSeparator moves the cursor off divider rows, preferring the given
// direction and falling back to the other one at the edges.
func (m *appModel) skipSeparator(down bool) {
	items := m.list.Items()
	if len(items) == 0 {
		return
	}
	isSep := func(i int) bool {
		it, ok := items[i].(navRowItem)
		return ok && it.row.separator()
	}
	i := m.list.Index()
	if !isSep(i) {
		return
	}
	for _, dir := range []bool{down, !down} {
		j := i
		for j >= 0 && j < len(items) && isSep(j) {
			if dir {
				j++
			} else {
				j--
			}
		}
		if j >= 0 && j < len(items) {
			m.list.Select(j)
			return
		}
	}
}

func (m *appModel) sidebarWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	if w > 40 {
		w = 40
	}
	return w
}

func (m *appModel) bodyHeight() int {
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

func (m *appModel) resize() {
	m.list.SetSize(m.sidebarWidth(), m.bodyHeight())
	m.input.Width = m.width - 20
}

func (m appModel) View() string {
	sideW := m.sidebarWidth()
	bodyH := m.bodyHeight()
	contentW := m.width - sideW - 2
	if contentW < 20 {
		contentW = 20
	}

	path := m.activePath()
	header := lipgloss.NewStyle().Bold(true).Render("wikitree") + "  " +
		lipgloss.NewStyle().Foreground(colorChromeFg).Render(breadcrumb(path))

	side := normalizePane(m.list.View(), sideW, bodyH)
	content := normalizePane(m.viewContent(path, contentW), contentW, bodyH)
	body := lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", content)

	return strings.Join([]string{header, body, m.viewFooter()}, "\n")
}

func breadcrumb(p navtree.Path) string {
	if p.Empty() {
		return "(nothing selected)"
	}
	return strings.Join(p.Labels(), " "+glyphArrow()+" ")
}

func (m appModel) viewContent(path navtree.Path, width int) string {
	last, ok := path.Last()
	if !ok {
		return styleMuted().Render("enter: open a topic")
	}

	var lines []string
	tc := navtree.Tabs(path)
	page := last
	if tc.Page != nil {
		page = *tc.Page
		lines = append(lines, renderTabBar(tc, width), "")
		if tc.Active >= 0 && tc.Active < len(tc.Tabs) {
			page = tc.Tabs[tc.Active]
		}
	}

	md := publish.RenderMarkdown(model.Forest{page}, publish.MarkdownOptions{Title: page.Label})
	out, err := publish.RenderTerminal(md, width)
	if err != nil {
		out = md
	}
	lines = append(lines, out)
	return strings.Join(lines, "\n")
}

func renderTabBar(tc navtree.TabContext, width int) string {
	active := lipgloss.NewStyle().Padding(0, 1).Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	idle := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	parts := make([]string, 0, len(tc.Tabs))
	for i, t := range tc.Tabs {
		if t.IsSeparator() {
			continue
		}
		if i == tc.Active {
			parts = append(parts, active.Render(t.Label))
		} else {
			parts = append(parts, idle.Render(t.Label))
		}
	}
	return normalizePane(lipgloss.JoinHorizontal(lipgloss.Top, parts...), width, 1)
}

func (m appModel) viewFooter() string {
	switch m.mode {
	case modeRename, modeAddChild, modeAddRoot:
		prompt := map[inputMode]string{modeRename: "Rename: ", modeAddChild: "New child: ", modeAddRoot: "New root: "}[m.mode]
		return prompt + renderInputLine(m.width-len(prompt), m.input.View())
	case modeConfirmDelete:
		label := m.target
		if n, ok := m.forest.Find(m.target); ok && n.Label != "" {
			label = n.Label
		}
		return renderConfirm("Delete " + label + " and everything under it?")
	}
	if m.status != "" {
		st := lipgloss.NewStyle().Foreground(colorError)
		if m.statusOK {
			st = styleMuted()
		}
		return st.Render(m.status)
	}
	help := "enter: select  space: toggle  [ ]: tabs  r: rename  a/A: add  d: delete  h: tabs on/off  s: save  q: quit"
	if m.dirty {
		help = "* " + help
	}
	return styleMuted().Render(help)
}
