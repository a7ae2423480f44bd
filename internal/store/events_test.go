package store

import (
	"context"
	"testing"
)

func TestEvents_NewestFirstWithLimit(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	if err := s.AppendEvent(ctx, EventRename, "n1", map[string]string{"label": "Cardio"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent(ctx, EventDelete, "n2", nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent(ctx, EventSave, "", map[string]int{"nodes": 4}); err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := s.Events(ctx, 0)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(all) != 3 || all[0].Type != EventSave || all[2].Type != EventRename {
		t.Fatalf("unexpected order: %+v", all)
	}
	p, ok := all[2].Payload.(map[string]any)
	if !ok || p["label"] != "Cardio" {
		t.Fatalf("unexpected payload: %#v", all[2].Payload)
	}
	if all[1].Payload != nil {
		t.Fatalf("expected nil payload, got %#v", all[1].Payload)
	}

	two, err := s.Events(ctx, 2)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(two) != 2 || two[1].NodeID != "n2" {
		t.Fatalf("unexpected limited events: %+v", two)
	}
}

func TestAppendEvent_RejectsEmptyType(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.AppendEvent(context.Background(), "  ", "", nil); err == nil {
		t.Fatalf("expected error")
	}
}
