package pager

import (
	"sync"
	"sync/atomic"

	"github.com/mmcdole/spotivi/internal/domain"
)

// DefaultPageSize is the number of items requested per page
const DefaultPageSize = 8

// Request describes one page fetch. A nil Token requests the first page.
type Request struct {
	Resource domain.ResourceID
	Token    *domain.Token
	Fresh    bool // bypass the page cache
}

// Seq returns the page-sequence counter the request is issued with
func (r Request) Seq() uint {
	if r.Token == nil {
		return 0
	}
	return r.Token.Index
}

// Coordinator decides when to prefetch and keeps at most one fetch in flight
// per resource. The in-flight flags are the only state shared with
// background fetches; everything else stays on the event loop.
type Coordinator struct {
	pageSize int
	inflight sync.Map // domain.ResourceID -> struct{}
	pending  atomic.Int64
}

// NewCoordinator creates a coordinator for the given page size
func NewCoordinator(pageSize int) *Coordinator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Coordinator{pageSize: pageSize}
}

// PageSize returns the number of items requested per page
func (c *Coordinator) PageSize() int {
	return c.pageSize
}

// Threshold is the number of remaining items at which prefetching starts:
// the last quarter of a page, and at least the last item.
func (c *Coordinator) Threshold() int {
	return max(c.pageSize/4, 1)
}

// NeedsPrefetch reports whether a fetch should be started for id, given how
// many loaded items remain from the selection to the end.
func (c *Coordinator) NeedsPrefetch(id domain.ResourceID, remaining int, hasMore bool) bool {
	return remaining <= c.Threshold() && hasMore && !c.InFlight(id)
}

// Acquire marks a fetch for id as in flight. It returns false, without
// changing anything, if one already is.
func (c *Coordinator) Acquire(id domain.ResourceID) bool {
	if _, loaded := c.inflight.LoadOrStore(id, struct{}{}); loaded {
		return false
	}
	c.pending.Add(1)
	return true
}

// Release clears the in-flight flag for id, re-arming prefetch
func (c *Coordinator) Release(id domain.ResourceID) {
	if _, loaded := c.inflight.LoadAndDelete(id); loaded {
		c.pending.Add(-1)
	}
}

// InFlight reports whether a fetch for id is outstanding
func (c *Coordinator) InFlight(id domain.ResourceID) bool {
	_, ok := c.inflight.Load(id)
	return ok
}

// Pending returns the number of outstanding fetches
func (c *Coordinator) Pending() int {
	return int(c.pending.Load())
}
