// Package importer rebuilds a navigation forest from pasted spreadsheet rows of
// the form "CODE<TAB>TITLE" (or "CODE TITLE"), where dotted or dashed numeric
// codes such as 1, 1.2 or 1-2-3 encode the nesting.
package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"wikitree/internal/model"

	"github.com/maruel/natural"
)

const IDPrefix = "imp-"

var (
	fallbackLine = regexp.MustCompile(`^([0-9.\-]+)\s+(.+)$`)
	nonAlnumRun  = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

type ImportError struct {
	Reason string
}

func (e ImportError) Error() string {
	return "import failed: " + e.Reason
}

const (
	ReasonNoLines = "no lines"
	ReasonNoRoots = "no roots inferred"
)

// Report summarizes a parse.
type Report struct {
	Lines   int `json:"lines"`
	Parsed  int `json:"parsed"`
	Skipped int `json:"skipped"`
	Roots   int `json:"roots"`
	// Orphans counts codes whose inferred parent code was not pasted; they are
	// kept as roots.
	Orphans int `json:"orphans"`
}

type entry struct {
	seq    int
	code   string
	parent string
	node   *buildNode
}

type buildNode struct {
	id       string
	label    string
	children []*buildNode
}

// Parse converts pasted rows into a forest. Malformed rows are skipped; the
// parse fails only when nothing usable remains.
func Parse(raw string) (model.Forest, error) {
	f, _, err := ParseWithReport(raw)
	return f, err
}

func ParseWithReport(raw string) (model.Forest, Report, error) {
	var rep Report
	var entries []*entry
	byCode := map[string]*entry{}
	usedIDs := map[string]bool{}

	for _, line := range splitLines(raw) {
		rep.Lines++
		code, title, ok := splitRow(line)
		if !ok {
			rep.Skipped++
			continue
		}
		e := &entry{
			seq:    len(entries),
			code:   code,
			parent: parentCode(code),
			node:   &buildNode{id: uniqueID(codeID(code), usedIDs), label: title},
		}
		entries = append(entries, e)
		if _, dup := byCode[code]; !dup {
			byCode[code] = e
		}
	}
	rep.Parsed = len(entries)
	if len(entries) == 0 {
		return nil, rep, ImportError{Reason: ReasonNoLines}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].code, entries[j].code
		if a == b {
			return entries[i].seq < entries[j].seq
		}
		return natural.Less(a, b)
	})

	var roots []*buildNode
	for _, e := range entries {
		if e.parent != "" {
			if p, ok := byCode[e.parent]; ok && p != e {
				p.node.children = append(p.node.children, e.node)
				continue
			}
			rep.Orphans++
		}
		roots = append(roots, e.node)
	}
	rep.Roots = len(roots)
	if len(roots) == 0 {
		return nil, rep, ImportError{Reason: ReasonNoRoots}
	}

	out := make(model.Forest, 0, len(roots))
	for _, r := range roots {
		out = append(out, r.materialize())
	}
	return out, rep, nil
}

func (b *buildNode) materialize() model.Node {
	n := model.Node{ID: b.id, Label: b.label, Kind: model.KindItem}
	for _, ch := range b.children {
		n.Children = append(n.Children, ch.materialize())
	}
	return n
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	var out []string
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// splitRow extracts (code, title) from one trimmed row.
func splitRow(line string) (string, string, bool) {
	if strings.Contains(line, "\t") {
		parts := strings.Split(line, "\t")
		code := strings.TrimSpace(parts[0])
		rest := make([]string, 0, len(parts)-1)
		for _, p := range parts[1:] {
			if p = strings.TrimSpace(p); p != "" {
				rest = append(rest, p)
			}
		}
		title := strings.TrimSpace(strings.Join(rest, " "))
		if code != "" && title != "" {
			return code, title, true
		}
	}
	m := fallbackLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	title := strings.TrimSpace(m[2])
	if title == "" {
		return "", "", false
	}
	return m[1], title, true
}

// parentCode returns the code before the last separator; "." wins over "-" when
// the code contains a dot.
func parentCode(code string) string {
	sep := "-"
	if strings.Contains(code, ".") {
		sep = "."
	}
	i := strings.LastIndex(code, sep)
	if i <= 0 {
		return ""
	}
	return code[:i]
}

func codeID(code string) string {
	norm := strings.Trim(nonAlnumRun.ReplaceAllString(code, "_"), "_")
	if norm == "" {
		norm = "x"
	}
	return IDPrefix + norm
}

func uniqueID(base string, used map[string]bool) string {
	id := base
	for n := 2; used[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	used[id] = true
	return id
}
