package mutate

import (
	"errors"
	"reflect"
	"testing"

	"wikitree/internal/model"
)

func fixture() model.Forest {
	return model.Forest{
		model.Group("about", "About",
			model.Item("mission", "Mission"),
			model.Item("history", "History"),
		),
		model.Separator("sep"),
		model.Group("dept", "Departments",
			model.Item("er", "Emergency"),
			model.Item("cardio", "Cardiology",
				model.Item("cardio-hr", "HR Roster"),
				model.Item("cardio-eq", "Equipment"),
			),
		),
	}
}

func labels(nodes []model.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}

func TestRename_ChangesOnlyTarget(t *testing.T) {
	in := fixture()
	before := in.Clone()
	img := "icons/heart.png"

	out, err := Rename(in, "cardio", "Cardiac Care", &img)
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	n, _ := out.Find("cardio")
	if n.Label != "Cardiac Care" || n.ImageURL != img {
		t.Fatalf("unexpected renamed node: %#v", n)
	}
	if len(n.Children) != 2 || n.Kind != model.KindItem {
		t.Fatalf("rename must keep kind and children: %#v", n)
	}
	if !reflect.DeepEqual(in, before) {
		t.Fatalf("input forest was modified")
	}
	if out.Count() != in.Count() {
		t.Fatalf("node count changed: %d -> %d", in.Count(), out.Count())
	}
}

func TestRename_KeepsImageWhenNil(t *testing.T) {
	in := model.Forest{{ID: "a", Label: "A", ImageURL: "a.png"}}
	out, err := Rename(in, "a", "B", nil)
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if out[0].ImageURL != "a.png" || out[0].Label != "B" {
		t.Fatalf("got %#v", out[0])
	}
}

func TestRename_MissingIDIsNoop(t *testing.T) {
	in := fixture()
	out, err := Rename(in, "nope", "X", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "nope" {
		t.Fatalf("expected NotFoundError for nope, got %#v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("expected unchanged forest")
	}
}

func TestRename_RejectsSeparatorAndEmptyLabel(t *testing.T) {
	if _, err := Rename(fixture(), "sep", "X", nil); !errors.Is(err, ErrSeparator) {
		t.Fatalf("expected ErrSeparator, got %v", err)
	}
	if _, err := Rename(fixture(), "er", "   ", nil); !errors.Is(err, ErrEmptyLabel) {
		t.Fatalf("expected ErrEmptyLabel, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantRoots []string
		wantCount int
	}{
		{name: "root with subtree", id: "about", wantRoots: []string{"", "Departments"}, wantCount: 6},
		{name: "nested with subtree", id: "cardio", wantRoots: []string{"About", "", "Departments"}, wantCount: 6},
		{name: "leaf", id: "history", wantRoots: []string{"About", "", "Departments"}, wantCount: 8},
		{name: "separator", id: "sep", wantRoots: []string{"About", "Departments"}, wantCount: 8},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			in := fixture()
			out, err := Delete(in, tt.id)
			if err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if got := labels(out); !reflect.DeepEqual(got, tt.wantRoots) {
				t.Fatalf("roots: got %v want %v", got, tt.wantRoots)
			}
			if got := out.Count(); got != tt.wantCount {
				t.Fatalf("count: got %d want %d", got, tt.wantCount)
			}
			if out.Contains(tt.id) {
				t.Fatalf("deleted id still present")
			}
			if in.Count() != 9 {
				t.Fatalf("input modified")
			}
		})
	}
}

func TestDelete_LastChildLeavesLeaf(t *testing.T) {
	in := model.Forest{model.Item("a", "A", model.Item("b", "B"))}
	out, err := Delete(in, "b")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if out[0].HasChildren() {
		t.Fatalf("expected leaf, got %#v", out[0])
	}
}

func TestDelete_MissingID(t *testing.T) {
	in := fixture()
	out, err := Delete(in, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("expected unchanged forest")
	}
}

func TestAddChild_AppendsAtEnd(t *testing.T) {
	in := fixture()
	n, err := NewNode(in, "", model.KindItem)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	if n.Label != PlaceholderLabel || n.HasChildren() {
		t.Fatalf("unexpected new node: %#v", n)
	}
	out, err := AddChild(in, "cardio", n)
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	p, _ := out.Find("cardio")
	if got, want := labels(p.Children), []string{"HR Roster", "Equipment", PlaceholderLabel}; !reflect.DeepEqual(got, want) {
		t.Fatalf("children: got %v want %v", got, want)
	}
	orig, _ := in.Find("cardio")
	if len(orig.Children) != 2 {
		t.Fatalf("input modified: %v", labels(orig.Children))
	}
}

func TestAddChild_CreatesChildrenOnLeaf(t *testing.T) {
	in := fixture()
	n, _ := NewNode(in, "Triage", model.KindItem)
	out, err := AddChild(in, "er", n)
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	p, _ := out.Find("er")
	if len(p.Children) != 1 || p.Children[0].Label != "Triage" {
		t.Fatalf("got %#v", p)
	}
}

func TestAddChild_Errors(t *testing.T) {
	in := fixture()
	n, _ := NewNode(in, "X", model.KindItem)
	if _, err := AddChild(in, "nope", n); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := AddChild(in, "sep", n); !errors.Is(err, ErrSeparator) {
		t.Fatalf("expected ErrSeparator, got %v", err)
	}
	if _, err := AddChild(in, "er", model.Item("mission", "Dup")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAddRoot(t *testing.T) {
	in := fixture()
	n, _ := NewNode(in, "", model.KindGroup)
	out, err := AddRoot(in, n)
	if err != nil {
		t.Fatalf("AddRoot: %v", err)
	}
	if len(out) != 4 || out[3].ID != n.ID || out[3].Kind != model.KindGroup {
		t.Fatalf("unexpected roots: %v", labels(out))
	}
	if len(in) != 3 {
		t.Fatalf("input modified")
	}

	empty, err := AddRoot(nil, n)
	if err != nil || len(empty) != 1 {
		t.Fatalf("AddRoot(nil): %v %v", empty, err)
	}
}

func TestSetHideChildren(t *testing.T) {
	out, err := SetHideChildren(fixture(), "cardio", true)
	if err != nil {
		t.Fatalf("SetHideChildren: %v", err)
	}
	n, _ := out.Find("cardio")
	if !n.HideChildren || len(n.Children) != 2 {
		t.Fatalf("got %#v", n)
	}
	if _, err := SetHideChildren(fixture(), "sep", true); !errors.Is(err, ErrSeparator) {
		t.Fatalf("expected ErrSeparator, got %v", err)
	}
}

func TestNewNode_Separator(t *testing.T) {
	n, err := NewNode(nil, "ignored", model.KindSeparator)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	if !n.IsSeparator() || n.Label != "" {
		t.Fatalf("got %#v", n)
	}
}
