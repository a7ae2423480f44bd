package importer

import (
	"fmt"
	"strings"

	"wikitree/internal/model"
	"wikitree/internal/mutate"
)

type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAppend  Mode = "append"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeReplace:
		return ModeReplace, nil
	case ModeAppend:
		return ModeAppend, nil
	default:
		return "", fmt.Errorf("unknown import mode: %s", s)
	}
}

// Merge combines a parsed import with the current forest. Replace swaps the whole
// forest; append adds the imported roots after the existing ones, re-keying any
// imported id already used by the existing forest. Neither input is modified.
func Merge(existing, imported model.Forest, mode Mode) (model.Forest, error) {
	switch mode {
	case ModeReplace, "":
		return imported.Clone(), nil
	case ModeAppend:
	default:
		return existing, fmt.Errorf("unknown import mode: %s", mode)
	}

	out := existing.Clone()
	if out == nil {
		out = model.Forest{}
	}
	for _, r := range imported {
		n, err := rekey(out, r.Clone())
		if err != nil {
			return existing, err
		}
		out = append(out, n)
	}
	return out, nil
}

// rekey replaces ids in n that already exist in f (or repeat within n) with fresh ones.
func rekey(f model.Forest, n model.Node) (model.Node, error) {
	used := f.IDs()
	var walk func(x *model.Node) error
	walk = func(x *model.Node) error {
		if used[x.ID] {
			id, err := mutate.FreshID(f)
			for err == nil && used[id] {
				id, err = mutate.FreshID(f)
			}
			if err != nil {
				return err
			}
			x.ID = id
		}
		used[x.ID] = true
		for i := range x.Children {
			if err := walk(&x.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(&n); err != nil {
		return model.Node{}, err
	}
	return n, nil
}
