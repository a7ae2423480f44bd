package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wikitree/internal/model"
	"wikitree/internal/mutate"
	"wikitree/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(t *testing.T, m appModel, msgs ...tea.Msg) appModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		am, ok := next.(appModel)
		if !ok {
			t.Fatalf("unexpected model type %T", next)
		}
		m = am
	}
	return m
}

func typeText(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

func newTestApp(t *testing.T) appModel {
	t.Helper()
	return newAppModel(context.Background(), Options{Store: store.Store{Dir: t.TempDir()}, Forest: navFixture()})
}

func focusedID(m appModel) string {
	row, _ := m.focusedRow()
	return row.node.ID
}

func TestApp_CursorSkipsSeparators(t *testing.T) {
	m := newTestApp(t)
	if got := focusedID(m); got != "about" {
		t.Fatalf("initial focus: got %q want about", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := focusedID(m); got != "dept" {
		t.Fatalf("down over separator: got %q want dept", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := focusedID(m); got != "about" {
		t.Fatalf("up over separator: got %q want about", got)
	}
}

func TestApp_EnterSelectsAndExpandsPath(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.activeID != "about" {
		t.Fatalf("active: got %q want about", m.activeID)
	}
	if !m.expand.isOpen("about") {
		t.Fatalf("selecting About should expand it")
	}
	if got := len(m.list.Items()); got != 6 {
		t.Fatalf("visible rows: got %d want 6", got)
	}
}

func TestApp_ToggleCollapses(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyTab})
	if m.expand.isOpen("dept") {
		t.Fatalf("tab should collapse Departments")
	}
	if got := len(m.list.Items()); got != 3 {
		t.Fatalf("visible rows: got %d want 3", got)
	}
	if got := focusedID(m); got != "dept" {
		t.Fatalf("focus should stay on the toggled row, got %q", got)
	}
}

func TestApp_RenameAndSave(t *testing.T) {
	m := newTestApp(t)
	msgs := []tea.Msg{keyRunes("r"), tea.KeyMsg{Type: tea.KeyCtrlU}}
	msgs = append(msgs, typeText("Who We Are")...)
	msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, msgs...)

	if n, _ := m.forest.Find("about"); n.Label != "Who We Are" {
		t.Fatalf("rename: got %q", n.Label)
	}
	if !m.dirty || m.mode != modeNormal {
		t.Fatalf("expected dirty normal mode, dirty=%v mode=%v", m.dirty, m.mode)
	}

	m = press(t, m, keyRunes("s"))
	if m.dirty || m.status != "saved" {
		t.Fatalf("expected clean saved state, dirty=%v status=%q", m.dirty, m.status)
	}
	got, err := m.store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n, _ := got.Find("about"); n.Label != "Who We Are" {
		t.Fatalf("persisted label: got %q", n.Label)
	}
	events, err := m.store.Events(context.Background(), 0)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 2 || events[0].Type != store.EventSave || events[1].Type != store.EventRename {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestApp_AddChildUsesPlaceholderAndFocusesIt(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, keyRunes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	about, _ := m.forest.Find("about")
	if len(about.Children) != 2 {
		t.Fatalf("expected new child, got %+v", about.Children)
	}
	added := about.Children[1]
	if added.Label != mutate.PlaceholderLabel || !strings.HasPrefix(added.ID, "node-") {
		t.Fatalf("unexpected new node: %+v", added)
	}
	if got := focusedID(m); got != added.ID {
		t.Fatalf("focus: got %q want %q", got, added.ID)
	}
}

func TestApp_AddRoot(t *testing.T) {
	m := newTestApp(t)
	msgs := append([]tea.Msg{keyRunes("A")}, typeText("Resources")...)
	msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, msgs...)
	if got := len(m.forest); got != 4 {
		t.Fatalf("roots: got %d want 4", got)
	}
	if m.forest[3].Label != "Resources" {
		t.Fatalf("new root label: got %q", m.forest[3].Label)
	}
}

func TestApp_DeleteNeedsConfirmation(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, keyRunes("d"), keyRunes("n"))
	if !m.forest.Contains("about") || m.mode != modeNormal {
		t.Fatalf("cancelled delete must keep the node")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, keyRunes("d"), keyRunes("y"))
	if m.forest.Contains("about") || m.forest.Contains("mission") {
		t.Fatalf("confirmed delete must remove the subtree")
	}
	if m.activeID != "" {
		t.Fatalf("deleting the active root should clear the selection, got %q", m.activeID)
	}
	if got := focusedID(m); got != "dept" {
		t.Fatalf("focus after delete: got %q want dept", got)
	}
}

func TestApp_HideChildrenToggle(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if got := focusedID(m); got != "er" {
		t.Fatalf("focus: got %q want er", got)
	}
	m = press(t, m, keyRunes("h"))
	if n, _ := m.forest.Find("er"); !n.HideChildren {
		t.Fatalf("expected er to become a tab page")
	}
}

func TestApp_RenameSeparatorIsRejected(t *testing.T) {
	f := model.Forest{model.Separator("s"), model.Item("a", "A")}
	m := newAppModel(context.Background(), Options{Forest: f})
	m.list.Select(0)
	m = press(t, m, keyRunes("r"))
	if m.mode != modeNormal || m.status != mutate.ErrSeparator.Error() {
		t.Fatalf("expected separator rejection, mode=%v status=%q", m.mode, m.status)
	}
}

func TestApp_TabsCycle(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.activeID != "cardio" {
		t.Fatalf("active: got %q want cardio", m.activeID)
	}
	m = press(t, m, keyRunes("]"))
	if m.activeID != "eq" {
		t.Fatalf("next tab: got %q want eq", m.activeID)
	}
	m = press(t, m, keyRunes("]"))
	if m.activeID != "hr" {
		t.Fatalf("wrap around: got %q want hr", m.activeID)
	}
	m = press(t, m, keyRunes("["))
	if m.activeID != "eq" {
		t.Fatalf("previous tab: got %q want eq", m.activeID)
	}
}

func TestApp_QuitWithUnsavedChangesAsksTwice(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, keyRunes("h"))
	next, cmd := m.Update(keyRunes("q"))
	if cmd != nil {
		t.Fatalf("first q with unsaved changes must not quit")
	}
	_, cmd = next.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatalf("second q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestApp_SaveWithoutStore(t *testing.T) {
	m := newAppModel(context.Background(), Options{Forest: navFixture()})
	m = press(t, m, keyRunes("s"))
	if m.status == "saved" {
		t.Fatalf("save without a workspace must fail")
	}
}

func TestApp_ViewShowsBreadcrumbAndTabs(t *testing.T) {
	t.Setenv("WIKITREE_TUI_THEME", "plain")
	m := newTestApp(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	v := m.View()
	for _, want := range []string{"Departments", "Cardiology", "HR Roster", "Equipment"} {
		if !strings.Contains(v, want) {
			t.Fatalf("expected %q in view:\n%s", want, v)
		}
	}
}

func TestApp_MissingIDMutationsReportNotFound(t *testing.T) {
	m := newTestApp(t)
	m.rename("nope", "X")
	if !strings.Contains(m.status, "not found") || m.dirty {
		t.Fatalf("expected not-found status without changes, got %q dirty=%v", m.status, m.dirty)
	}
	_, err := mutate.Delete(m.forest, "nope")
	if !errors.Is(err, mutate.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApp_DeletedIDsStayReserved(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, keyRunes("d"), keyRunes("y"))
	if m.forest.Contains("about") {
		t.Fatalf("expected about deleted")
	}
	for _, id := range []string{"about", "mission"} {
		if !m.ids.Seen(id) {
			t.Fatalf("session forgot deleted id %q", id)
		}
	}

	msgs := append([]tea.Msg{keyRunes("A")}, typeText("Visitors")...)
	msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, msgs...)
	added := m.forest[len(m.forest)-1]
	if added.Label != "Visitors" || !m.ids.Seen(added.ID) {
		t.Fatalf("new root not tracked by the session: %#v", added)
	}
}
