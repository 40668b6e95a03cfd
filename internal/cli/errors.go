package cli

import (
	"errors"
	"fmt"
)

var errNoBoard = errors.New("no board selected; run `kanbatryoshka boards select <board-id>`")

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type notEmptyError struct {
	kind   string
	id     string
	reason string
}

func (e notEmptyError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: %s", e.kind, e.id, e.reason)
}

func errNotEmpty(kind, id, reason string) error {
	return notEmptyError{kind: kind, id: id, reason: reason}
}
