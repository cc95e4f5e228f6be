package mutate

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

var (
	ErrEmptyTitle     = errors.New("title is required")
	ErrMoveTarget     = errors.New("exactly one of --before/--after is required")
	ErrMoveSelf       = errors.New("cannot move relative to itself")
	ErrMoveNotSibling = errors.New("move target is not a sibling")
)
