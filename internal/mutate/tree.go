package mutate

import (
	"strings"

	"wikitree/internal/model"
)

// All operations here are pure: the input forest is never modified and only the
// chain from the root to the target is copied. Untouched sibling subtrees are shared
// with the input.
//
// A missing target id returns the input forest unchanged and a *NotFoundError;
// callers that prefer a silent no-op can ignore errors matching ErrNotFound.

// Rename replaces the label of the node with the given id and, when imageURL is
// non-nil, its image reference. Id, kind and children are preserved.
func Rename(f model.Forest, id, label string, imageURL *string) (model.Forest, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return f, ErrEmptyLabel
	}
	return update(f, id, func(n model.Node) (model.Node, error) {
		if n.IsSeparator() {
			return n, ErrSeparator
		}
		n.Label = label
		if imageURL != nil {
			n.ImageURL = strings.TrimSpace(*imageURL)
		}
		return n, nil
	})
}

// Delete removes the node with the given id together with its subtree.
func Delete(f model.Forest, id string) (model.Forest, error) {
	out, found, err := rewrite(f, strings.TrimSpace(id), func(model.Node) ([]model.Node, error) {
		return nil, nil
	})
	if err != nil {
		return f, err
	}
	if !found {
		return f, notFound(id)
	}
	if out == nil {
		out = []model.Node{}
	}
	return model.Forest(out), nil
}

// AddChild appends n to the children of parentID.
func AddChild(f model.Forest, parentID string, n model.Node) (model.Forest, error) {
	if err := checkAttachable(f, n); err != nil {
		return f, err
	}
	return update(f, parentID, func(p model.Node) (model.Node, error) {
		if p.IsSeparator() {
			return p, ErrSeparator
		}
		children := make([]model.Node, 0, len(p.Children)+1)
		children = append(children, p.Children...)
		p.Children = append(children, n)
		return p, nil
	})
}

// AddRoot appends n as the last root.
func AddRoot(f model.Forest, n model.Node) (model.Forest, error) {
	if err := checkAttachable(f, n); err != nil {
		return f, err
	}
	out := make(model.Forest, 0, len(f)+1)
	out = append(out, f...)
	return append(out, n), nil
}

// SetHideChildren toggles whether a node's children surface as tabs instead of
// nested menu entries.
func SetHideChildren(f model.Forest, id string, hide bool) (model.Forest, error) {
	return update(f, id, func(n model.Node) (model.Node, error) {
		if n.IsSeparator() {
			return n, ErrSeparator
		}
		n.HideChildren = hide
		return n, nil
	})
}

func checkAttachable(f model.Forest, n model.Node) error {
	if strings.TrimSpace(n.ID) == "" {
		return ErrDuplicateID
	}
	ids := f.IDs()
	dup := false
	model.Forest{n}.Walk(func(x model.Node, _ int) bool {
		if ids[x.ID] {
			dup = true
			return false
		}
		return true
	})
	if dup {
		return ErrDuplicateID
	}
	return nil
}

func update(f model.Forest, id string, fn func(model.Node) (model.Node, error)) (model.Forest, error) {
	out, found, err := rewrite(f, strings.TrimSpace(id), func(n model.Node) ([]model.Node, error) {
		next, err := fn(n)
		if err != nil {
			return nil, err
		}
		return []model.Node{next}, nil
	})
	if err != nil {
		return f, err
	}
	if !found {
		return f, notFound(id)
	}
	return model.Forest(out), nil
}

// rewrite replaces the first node matching id (pre-order) with the nodes returned
// by fn and rebuilds the ancestors of the match.
func rewrite(nodes []model.Node, id string, fn func(model.Node) ([]model.Node, error)) ([]model.Node, bool, error) {
	for i, n := range nodes {
		if n.ID == id {
			repl, err := fn(n)
			if err != nil {
				return nodes, true, err
			}
			out := make([]model.Node, 0, len(nodes)-1+len(repl))
			out = append(out, nodes[:i]...)
			out = append(out, repl...)
			out = append(out, nodes[i+1:]...)
			return out, true, nil
		}
		if len(n.Children) == 0 {
			continue
		}
		children, found, err := rewrite(n.Children, id, fn)
		if !found {
			continue
		}
		if err != nil {
			return nodes, true, err
		}
		if len(children) == 0 {
			children = nil
		}
		n.Children = children
		out := make([]model.Node, len(nodes))
		copy(out, nodes)
		out[i] = n
		return out, true, nil
	}
	return nodes, false, nil
}
