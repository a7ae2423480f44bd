package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectNodeLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"wikitree"},
			want: []string{"wikitree"},
		},
		{
			name: "direct node id first token",
			in:   []string{"wikitree", "node-abc123"},
			want: []string{"wikitree", "nodes", "show", "node-abc123"},
		},
		{
			name: "imported id",
			in:   []string{"wikitree", "imp-1_2"},
			want: []string{"wikitree", "nodes", "show", "imp-1_2"},
		},
		{
			name: "direct node id after value flag",
			in:   []string{"wikitree", "--dir", "./tmp-test-ws", "node-abc123"},
			want: []string{"wikitree", "--dir", "./tmp-test-ws", "nodes", "show", "node-abc123"},
		},
		{
			name: "direct node id after equals flag",
			in:   []string{"wikitree", "--dir=./tmp-test-ws", "node-abc123"},
			want: []string{"wikitree", "--dir=./tmp-test-ws", "nodes", "show", "node-abc123"},
		},
		{
			name: "direct node id after bool flag",
			in:   []string{"wikitree", "--pretty", "node-abc123"},
			want: []string{"wikitree", "--pretty", "nodes", "show", "node-abc123"},
		},
		{
			name: "direct node id after double dash",
			in:   []string{"wikitree", "--log-level", "debug", "--", "node-abc123"},
			want: []string{"wikitree", "--log-level", "debug", "--", "nodes", "show", "node-abc123"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"wikitree", "nodes", "show", "node-abc123"},
			want: []string{"wikitree", "nodes", "show", "node-abc123"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"wikitree", "node-"},
			want: []string{"wikitree", "node-"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"wikitree", "wat"},
			want: []string{"wikitree", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectNodeLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectNodeLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
