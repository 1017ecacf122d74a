package pager

import (
	"fmt"

	"github.com/mmcdole/spotivi/internal/domain"
)

// Paged accumulates the pages of one logical resource.
//
// Items are append-only and pages merge in arrival order. Each merge adds the
// page's local index to the stored page-sequence counter, so successive
// fetches are issued with strictly increasing counters even though every
// response only knows its own next index.
type Paged[T any] struct {
	id     domain.ResourceID
	seq    *Sequence[T]
	next   string
	index  uint
	loaded bool
}

// NewPaged creates an empty state with no continuation
func NewPaged[T any](id domain.ResourceID) *Paged[T] {
	return &Paged[T]{id: id, seq: NewSequence[T]()}
}

// Resource returns the identity of the resource
func (p *Paged[T]) Resource() domain.ResourceID {
	return p.id
}

// Sequence returns the merged items
func (p *Paged[T]) Sequence() *Sequence[T] {
	return p.seq
}

// Len returns the number of merged items
func (p *Paged[T]) Len() int {
	return p.seq.Len()
}

// Index returns the page-sequence counter
func (p *Paged[T]) Index() uint {
	return p.index
}

// Loaded reports whether at least one page has been merged
func (p *Paged[T]) Loaded() bool {
	return p.loaded
}

// HasMore reports whether a continuation is present. Once it is gone the
// resource is exhausted and no further fetch is issued for it.
func (p *Paged[T]) HasMore() bool {
	return p.next != ""
}

// NextFetch returns the descriptor for the next page, or nil when exhausted
func (p *Paged[T]) NextFetch() *domain.Token {
	if !p.HasMore() {
		return nil
	}
	return &domain.Token{URI: p.next, Index: p.index}
}

// Accepts reports whether a page requested with the given counter may be
// merged. Pages requested before the latest merge are stale.
func (p *Paged[T]) Accepts(requested uint) bool {
	return requested == p.index
}

// Merge appends a freshly fetched page and replaces the continuation. A page
// that would rewind the counter is rejected without touching the state.
func (p *Paged[T]) Merge(page domain.Page[T]) error {
	index := p.index + page.Index
	if index < p.index {
		return fmt.Errorf("%w: %s counter wraps from %d by %d", domain.ErrMalformedPage, p.id, p.index, page.Index)
	}
	p.seq.Append(page.Items...)
	p.index = index
	p.next = page.Next
	p.loaded = true
	return nil
}
