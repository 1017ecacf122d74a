package pager

// Sequence is an ordered, append-only list of items with a single selected
// index. The index is always 0 for an empty sequence and within [0, len-1]
// otherwise.
type Sequence[T any] struct {
	items    []T
	selected int
}

// NewSequence creates a sequence holding items, with the first one selected
func NewSequence[T any](items ...T) *Sequence[T] {
	return &Sequence[T]{items: items}
}

// Append extends the sequence. The selection is left untouched.
func (s *Sequence[T]) Append(items ...T) {
	s.items = append(s.items, items...)
}

// MoveDown selects the next item, stopping at the last one
func (s *Sequence[T]) MoveDown() {
	if len(s.items) == 0 {
		s.selected = 0
		return
	}
	s.selected = min(len(s.items)-1, s.selected+1)
}

// MoveUp selects the previous item, stopping at the first one
func (s *Sequence[T]) MoveUp() {
	if s.selected != 0 {
		s.selected--
	}
}

// Selected returns the selected item, or false if the sequence is empty
func (s *Sequence[T]) Selected() (T, bool) {
	return s.At(s.selected)
}

// IsSelected reports whether i is the selected index
func (s *Sequence[T]) IsSelected(i int) bool {
	return s.selected == i
}

// Index returns the selected index
func (s *Sequence[T]) Index() int {
	return s.selected
}

// Len returns the number of items
func (s *Sequence[T]) Len() int {
	return len(s.items)
}

// At returns the item at i, or false if i is out of range
func (s *Sequence[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Items returns the underlying slice. Callers must not modify it.
func (s *Sequence[T]) Items() []T {
	return s.items
}
