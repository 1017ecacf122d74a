package pager

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_Threshold(t *testing.T) {
	assert.Equal(t, 2, NewCoordinator(8).Threshold())
	assert.Equal(t, 1, NewCoordinator(2).Threshold(), "small pages still prefetch on the last item")
	assert.Equal(t, DefaultPageSize, NewCoordinator(0).PageSize())
}

func TestCoordinator_PrefetchNearTail(t *testing.T) {
	c := NewCoordinator(8)
	id := domain.PlaylistsResource()

	assert.True(t, c.NeedsPrefetch(id, 1, true))
	assert.True(t, c.NeedsPrefetch(id, 2, true))
	assert.False(t, c.NeedsPrefetch(id, 3, true))
	assert.False(t, c.NeedsPrefetch(id, 1, false), "exhausted resources never prefetch")
}

func TestCoordinator_SecondScrollWhileInFlight(t *testing.T) {
	c := NewCoordinator(8)
	id := domain.PlaylistsResource()

	require.True(t, c.NeedsPrefetch(id, 1, true))
	require.True(t, c.Acquire(id))

	assert.False(t, c.NeedsPrefetch(id, 1, true))
	assert.False(t, c.Acquire(id))
	assert.Equal(t, 1, c.Pending())

	c.Release(id)

	assert.True(t, c.NeedsPrefetch(id, 1, true))
	assert.Equal(t, 0, c.Pending())
}

func TestCoordinator_ResourcesAreIndependent(t *testing.T) {
	c := NewCoordinator(8)

	require.True(t, c.Acquire(domain.PlaylistTracksResource("a")))

	assert.True(t, c.Acquire(domain.PlaylistTracksResource("b")))
	assert.True(t, c.InFlight(domain.PlaylistTracksResource("a")))
	assert.False(t, c.InFlight(domain.PlaylistsResource()))
}

func TestCoordinator_ReleaseIsIdempotent(t *testing.T) {
	c := NewCoordinator(8)
	id := domain.PlaylistsResource()
	require.True(t, c.Acquire(id))

	c.Release(id)
	c.Release(id)

	assert.Equal(t, 0, c.Pending())
}

func TestCoordinator_AtMostOneAcquireUnderContention(t *testing.T) {
	c := NewCoordinator(8)
	id := domain.PlaylistTracksResource("p")

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Acquire(id) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestRequest_Seq(t *testing.T) {
	assert.Equal(t, uint(0), Request{}.Seq())
	assert.Equal(t, uint(3), Request{Token: &domain.Token{URI: "x", Index: 3}}.Seq())
}
