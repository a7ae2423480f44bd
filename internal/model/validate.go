package model

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Problems []string
}

func (e ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid tree: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid tree: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Validate checks the forest-wide invariants: non-empty unique ids, known kinds,
// labelled non-separators and bare separators.
func (f Forest) Validate() error {
	var problems []string
	seen := map[string]bool{}
	f.Walk(func(n Node, _ int) bool {
		id := strings.TrimSpace(n.ID)
		switch {
		case id == "":
			problems = append(problems, fmt.Sprintf("node %q has an empty id", n.Label))
		case seen[id]:
			problems = append(problems, "duplicate id: "+id)
		}
		seen[id] = true

		switch n.EffectiveKind() {
		case KindItem, KindGroup:
			if strings.TrimSpace(n.Label) == "" {
				problems = append(problems, "empty label: "+id)
			}
		case KindSeparator:
			if n.Label != "" || len(n.Children) > 0 || n.HideChildren {
				problems = append(problems, "separator carries label or children: "+id)
			}
		default:
			problems = append(problems, fmt.Sprintf("unknown kind %q: %s", n.Kind, id))
		}
		return true
	})
	if len(problems) > 0 {
		return ValidationError{Problems: problems}
	}
	return nil
}
