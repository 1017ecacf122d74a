package pager

import "iter"

// Cursor is a scrollable viewport over a Sequence. It owns no items, only the
// scroll offset; the selection lives in the sequence.
//
// Invariant, once the sequence is non-empty and for the height last used:
//
//	offset <= selected < offset+height
//
// The offset moves one line at a time: it grows only when moving down would
// push the selection below the bottom of the viewport, and shrinks only when
// moving up would pull it above the top.
type Cursor[T any] struct {
	seq    *Sequence[T]
	offset int
}

// Row is one visible line handed to a renderer
type Row[T any] struct {
	Index       int
	Item        T
	Highlighted bool
}

// NewCursor creates a cursor over seq with the viewport at the top
func NewCursor[T any](seq *Sequence[T]) *Cursor[T] {
	return &Cursor[T]{seq: seq}
}

// Sequence returns the sequence the cursor scrolls over
func (c *Cursor[T]) Sequence() *Sequence[T] {
	return c.seq
}

// Offset returns the index of the first visible item
func (c *Cursor[T]) Offset() int {
	return c.offset
}

// Index returns the selected index
func (c *Cursor[T]) Index() int {
	return c.seq.Index()
}

// MoveDown selects the next item and scrolls by a single line if the
// selection left the viewport
func (c *Cursor[T]) MoveDown(height int) {
	height = max(height, 1)
	c.seq.MoveDown()
	if c.seq.Index()-c.offset >= height {
		c.offset++
	}
}

// MoveUp selects the previous item and scrolls by a single line if the
// selection left the viewport
func (c *Cursor[T]) MoveUp() {
	c.seq.MoveUp()
	if c.seq.Index() < c.offset {
		c.offset--
	}
}

// Select moves the selection to i one step at a time, so the viewport
// follows the same policy as key presses. Out of range targets are clamped.
func (c *Cursor[T]) Select(i, height int) {
	i = max(0, min(i, c.seq.Len()-1))
	for c.seq.Index() < i {
		c.MoveDown(height)
	}
	for c.seq.Index() > i {
		c.MoveUp()
	}
}

// Fit restores the viewport invariant after the height changed
func (c *Cursor[T]) Fit(height int) {
	height = max(height, 1)
	selected := c.seq.Index()
	if selected < c.offset {
		c.offset = selected
	}
	if selected >= c.offset+height {
		c.offset = selected - height + 1
	}
}

// Visible yields the rows inside the viewport, clipped to the sequence
// length. The iterator can be ranged over any number of times.
func (c *Cursor[T]) Visible(height int) iter.Seq[Row[T]] {
	return func(yield func(Row[T]) bool) {
		items := c.seq.Items()
		end := min(c.offset+max(height, 0), len(items))
		for i := c.offset; i < end; i++ {
			row := Row[T]{Index: i, Item: items[i], Highlighted: c.seq.IsSelected(i)}
			if !yield(row) {
				return
			}
		}
	}
}

// Remaining returns how many loaded items are left from the selection to the
// end of the sequence, counting the selected one
func (c *Cursor[T]) Remaining() int {
	return c.seq.Len() - c.seq.Index()
}

// AtTop reports whether items are hidden above the viewport
func (c *Cursor[T]) AtTop() bool {
	return c.offset == 0
}

// HasBelow reports whether items are hidden below the viewport
func (c *Cursor[T]) HasBelow(height int) bool {
	return c.offset+height < c.seq.Len()
}
