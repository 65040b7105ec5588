package formula

import (
	"iter"
	"slices"
)

// Cursor walks a growable sequence with a single position that can be moved
// back, so a builder can consume tokens speculatively and rewind without
// lexing again. elements are never removed. the position starts before the
// first element.
//
// a Cursor is not safe for concurrent use; each builder owns its own.
type Cursor[T any] struct {
	items []T
	pos   int
}

// NewCursor creates a cursor over a copy of items, positioned before the
// first one
func NewCursor[T any](items ...T) *Cursor[T] {
	return &Cursor[T]{
		items: slices.Clone(items),
		pos:   -1,
	}
}

// Append adds v to the end of the sequence. a cursor at the end stays on
// the last element, so the next Next returns v.
func (c *Cursor[T]) Append(v T) {
	if c.pos >= len(c.items) {
		c.pos = len(c.items) - 1
	}
	c.items = append(c.items, v)
}

// IsEnded reports whether Next would fail
func (c *Cursor[T]) IsEnded() bool {
	return c.pos+1 >= len(c.items)
}

// Next advances one position and returns the element there. past the last
// element it fails and leaves the cursor at the end, one after the last.
func (c *Cursor[T]) Next() (T, error) {
	if c.IsEnded() {
		c.pos = len(c.items)
		var zero T
		return zero, &ExhaustedError{Len: len(c.items)}
	}
	c.pos++
	return c.items[c.pos], nil
}

// Peek returns the element Next would return, without moving
func (c *Cursor[T]) Peek() (T, bool) {
	if c.IsEnded() {
		var zero T
		return zero, false
	}
	return c.items[c.pos+1], true
}

// Current returns the element at the position; false before the first
// and at the end
func (c *Cursor[T]) Current() (T, bool) {
	if c.pos < 0 || c.pos >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[c.pos], true
}

// Prev returns the element before the position; false if there is none
func (c *Cursor[T]) Prev() (T, bool) {
	if c.pos < 1 || c.pos > len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[c.pos-1], true
}

// StepBack moves the position back by n. rewinding past the first element
// resets the cursor. n <= 0 does nothing.
func (c *Cursor[T]) StepBack(n int) {
	if n <= 0 {
		return
	}
	if n > c.pos+1 {
		c.Reset()
		return
	}
	c.pos -= n
}

// Reset moves the position before the first element
func (c *Cursor[T]) Reset() {
	c.pos = -1
}

// Position returns the current index: -1 before the first element, Len()
// at the end
func (c *Cursor[T]) Position() int {
	return c.pos
}

// Len returns the number of stored elements
func (c *Cursor[T]) Len() int {
	return len(c.items)
}

// At returns the element at index i. it panics if i is out of range, like
// indexing a slice.
func (c *Cursor[T]) At(i int) T {
	return c.items[i]
}

// All iterates over every stored element. the position is not used or
// changed.
func (c *Cursor[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range c.items {
			if !yield(v) {
				return
			}
		}
	}
}
