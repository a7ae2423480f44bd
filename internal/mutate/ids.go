package mutate

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"wikitree/internal/model"
)

// PlaceholderLabel is the label given to nodes created without one.
const PlaceholderLabel = "New Title"

const maxIDAttempts = 16

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// FreshID returns a node id that is not used anywhere in f.
func FreshID(f model.Forest) (string, error) {
	return freshID(newRandomID, f.IDs(), nil)
}

func freshID(gen func(prefix string) (string, error), used, seen map[string]bool) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := gen("node")
		if err != nil {
			return "", err
		}
		if !used[id] && !seen[id] {
			return id, nil
		}
	}
	return "", ErrDuplicateID
}

// Session remembers every id seen or issued during one editing session, so a
// deleted node's id is never handed out again.
type Session struct {
	seen map[string]bool
	gen  func(prefix string) (string, error)
}

func NewSession(f model.Forest) *Session {
	s := &Session{seen: map[string]bool{}, gen: newRandomID}
	s.Observe(f)
	return s
}

// Observe records every id in f.
func (s *Session) Observe(f model.Forest) {
	f.Walk(func(n model.Node, _ int) bool {
		s.seen[n.ID] = true
		return true
	})
}

func (s *Session) Seen(id string) bool { return s.seen[id] }

// NewNode is NewNode with an id that is also unused in the session's history.
func (s *Session) NewNode(f model.Forest, label string, kind model.Kind) (model.Node, error) {
	id, err := freshID(s.gen, f.IDs(), s.seen)
	if err != nil {
		return model.Node{}, err
	}
	s.seen[id] = true
	return buildNode(id, label, kind), nil
}

// NewNode builds an unattached node with a fresh id and no children.
// An empty label becomes PlaceholderLabel; separators get no label.
func NewNode(f model.Forest, label string, kind model.Kind) (model.Node, error) {
	id, err := FreshID(f)
	if err != nil {
		return model.Node{}, err
	}
	return buildNode(id, label, kind), nil
}

func buildNode(id, label string, kind model.Kind) model.Node {
	if kind == "" {
		kind = model.KindItem
	}
	if kind == model.KindSeparator {
		return model.Separator(id)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = PlaceholderLabel
	}
	return model.Node{ID: id, Label: label, Kind: kind}
}
