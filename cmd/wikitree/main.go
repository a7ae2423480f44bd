package main

import (
	"os"
	"strings"

	"wikitree/internal/cli"
)

// Generated (node-) and imported (imp-) ids can be looked up directly.
var directIDPrefixes = []string{"node-", "imp-"}

func isNodeID(s string) bool {
	s = strings.TrimSpace(s)
	for _, p := range directIDPrefixes {
		if strings.HasPrefix(s, p) && len(s) > len(p) {
			return true
		}
	}
	return false
}

func rewriteDirectNodeLookupArgs(argv []string) []string {
	// Convenience: `wikitree <node-id>` works like `wikitree nodes show <node-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
	// before parsing. Persistent flags may come first (`wikitree --dir ... <node-id>`),
	// so the first positional token is what counts, not argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value, so a node id is never
	// mistaken for one.
	valueFlags := map[string]bool{
		"--dir":       true,
		"--workspace": true,
		"--format":    true,
		"--log-level": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewriteAt := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "nodes", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isNodeID(argv[i+1]) {
				return rewriteAt(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isNodeID(a) {
			return rewriteAt(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectNodeLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
