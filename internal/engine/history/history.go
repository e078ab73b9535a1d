// Package history keeps an ordered list of snapshots with a cursor. The
// entry under the cursor is the present; everything after it is the redo
// tail, dropped on the next Commit.
package history

import (
	"fmt"

	errs "go_engine/internal/errors"
)

type History[T any] struct {
	entries []T
	cursor  int
}

// New starts a history whose only entry is initial.
func New[T any](initial T) *History[T] {
	return &History[T]{entries: []T{initial}}
}

// Restore rebuilds a history from exported entries. cursor must point at
// one of them.
func Restore[T any](entries []T, cursor int) (*History[T], error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: history is empty", errs.ErrImport)
	}
	if cursor < 0 || cursor >= len(entries) {
		return nil, fmt.Errorf("%w: cursor %d outside history of %d", errs.ErrImport, cursor, len(entries))
	}
	out := make([]T, len(entries))
	copy(out, entries)
	return &History[T]{entries: out, cursor: cursor}, nil
}

func (h *History[T]) Current() T {
	return h.entries[h.cursor]
}

// Commit appends next after the cursor and moves onto it.
func (h *History[T]) Commit(next T) {
	h.entries = append(h.entries[:h.cursor+1], next)
	h.cursor++
}

func (h *History[T]) Undo() (T, error) {
	if !h.CanUndo() {
		var zero T
		return zero, errs.ErrNoHistory
	}
	h.cursor--
	return h.entries[h.cursor], nil
}

func (h *History[T]) Redo() (T, error) {
	if !h.CanRedo() {
		var zero T
		return zero, errs.ErrNoFuture
	}
	h.cursor++
	return h.entries[h.cursor], nil
}

func (h *History[T]) CanUndo() bool { return h.cursor > 0 }

func (h *History[T]) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Cursor is the index of the present entry; it equals the number of
// commits between the initial entry and the present.
func (h *History[T]) Cursor() int { return h.cursor }

func (h *History[T]) Len() int { return len(h.entries) }

// Entries returns a copy of every entry, including the redo tail.
func (h *History[T]) Entries() []T {
	out := make([]T, len(h.entries))
	copy(out, h.entries)
	return out
}

// Past returns the entries from the initial one up to and including the
// present.
func (h *History[T]) Past() []T {
	out := make([]T, h.cursor+1)
	copy(out, h.entries[:h.cursor+1])
	return out
}
