package mutate

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate node id")
	ErrSeparator   = errors.New("separators carry no label or children")
	ErrEmptyLabel  = errors.New("label is empty")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(id string) error {
	return &NotFoundError{Kind: "node", ID: id}
}
