package format

import (
	"bytes"
	"strings"
	"testing"
)

type payload struct {
	ID       string   `json:"id"`
	Label    string   `json:"label,omitempty"`
	Children []string `json:"children,omitempty"`
}

func TestWrite_JSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"data": payload{ID: "n1", Label: "Cardiology"}}
	if err := Write(&buf, v, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, want := buf.String(), `{"data":{"id":"n1","label":"Cardiology"}}`+"\n"; got != want {
		t.Fatalf("json: got %q want %q", got, want)
	}
}

func TestWrite_YAMLUsesJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, payload{ID: "n1", Children: []string{"a", "b"}}, "yaml", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "id: n1") || !strings.Contains(out, "children:\n  - a\n  - b") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
	if strings.Contains(out, "label") {
		t.Fatalf("omitempty field leaked into yaml:\n%s", out)
	}
}

func TestWrite_YAMLKeepsFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"data": []payload{{ID: "dept", Label: "true", Children: []string{"cardio"}}}}
	if err := Write(&buf, v, "yaml", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "" +
		"data:\n" +
		"  - id: dept\n" +
		"    label: \"true\"\n" +
		"    children:\n" +
		"      - cardio\n"
	if got := buf.String(); got != want {
		t.Fatalf("yaml:\n got: %q\nwant: %q", got, want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
