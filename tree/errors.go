package tree

import "errors"

// ErrAlreadyClosed is returned by Write/Close on a Handle that has already
// reached StateClosedOk or StateClosedError (spec.md §4.1 lifecycle).
var ErrAlreadyClosed = errors.New("tree: handle already closed")

// ErrEmptyDocument is returned when Close is reached without ever seeing a
// start element.
var ErrEmptyDocument = errors.New("tree: no elements found in document")

// ErrEntityExpansionLimit guards against XML entity-expansion bombs
// (spec.md §4.1 security note) unless the Unlimited option is set.
var ErrEntityExpansionLimit = errors.New("tree: character data exceeds the entity expansion limit")
