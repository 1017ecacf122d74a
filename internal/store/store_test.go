package store

import (
	"testing"
	"time"

	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestStore(t *testing.T) *PageStore {
	t.Helper()
	s, err := NewPageStore(t.TempDir(), "https://api.spotify.com/v1|client")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPageStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	id := domain.PlaylistsResource()
	page := domain.Page[domain.PlaylistSummary]{
		Items: []domain.PlaylistSummary{{ID: "p1", Name: "Road trip"}},
		Next:  "https://api.spotify.com/v1/me/playlists?offset=8",
		Index: 1,
	}

	require.NoError(t, s.SavePage(id, "", page))

	var got domain.Page[domain.PlaylistSummary]
	require.True(t, s.GetPage(id, "", 0, &got))
	assert.Equal(t, page, got)
}

func TestPageStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	id := domain.PlaylistTracksResource("p1")

	s, err := NewPageStore(dir, "ns")
	require.NoError(t, err)
	require.NoError(t, s.SavePage(id, "next-uri", domain.Page[int]{Items: []int{1, 2}}))
	require.NoError(t, s.Close())

	s, err = NewPageStore(dir, "ns")
	require.NoError(t, err)
	defer s.Close()

	var got domain.Page[int]
	require.True(t, s.GetPage(id, "next-uri", 0, &got))
	assert.Equal(t, []int{1, 2}, got.Items)
}

func TestPageStore_MaxAge(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	s.now = func() time.Time { return now }
	id := domain.PlaylistsResource()
	require.NoError(t, s.SavePage(id, "", domain.Page[int]{Items: []int{1}}))

	s.now = func() time.Time { return now.Add(10 * time.Minute) }

	var got domain.Page[int]
	assert.False(t, s.GetPage(id, "", 5*time.Minute, &got))
	assert.True(t, s.GetPage(id, "", time.Hour, &got))
}

func TestPageStore_InvalidateResource(t *testing.T) {
	s := newTestStore(t)
	a := domain.PlaylistTracksResource("a")
	b := domain.PlaylistTracksResource("b")
	require.NoError(t, s.SavePage(a, "", domain.Page[int]{}))
	require.NoError(t, s.SavePage(a, "2", domain.Page[int]{}))
	require.NoError(t, s.SavePage(b, "", domain.Page[int]{}))

	require.NoError(t, s.InvalidateResource(a))

	var got domain.Page[int]
	assert.False(t, s.GetPage(a, "", 0, &got))
	assert.False(t, s.GetPage(a, "2", 0, &got))
	assert.True(t, s.GetPage(b, "", 0, &got))
}

func TestPageStore_InvalidateAll(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SavePage(domain.PlaylistsResource(), "", domain.Page[int]{}))

	require.NoError(t, s.InvalidateAll())

	var got domain.Page[int]
	assert.False(t, s.GetPage(domain.PlaylistsResource(), "", 0, &got))
}

func TestPageStore_MemoryOnly(t *testing.T) {
	s, err := NewPageStore("", "")
	require.NoError(t, err)

	require.NoError(t, s.SavePage(domain.PlaylistsResource(), "", domain.Page[int]{Items: []int{3}}))

	var got domain.Page[int]
	require.True(t, s.GetPage(domain.PlaylistsResource(), "", 0, &got))
	assert.Equal(t, []int{3}, got.Items)
	assert.NoError(t, s.Close())
}

func TestPageStore_InvalidateReportsDatabaseErrors(t *testing.T) {
	s := newTestStore(t)
	id := domain.PlaylistsResource()
	require.NoError(t, s.SavePage(id, "", domain.Page[int]{}))
	require.NoError(t, s.db.Close())

	err := s.InvalidateResource(id)
	require.Error(t, err)
	assert.ErrorIs(t, err, bolt.ErrDatabaseNotOpen)

	// The memory copy is gone regardless
	var got domain.Page[int]
	assert.False(t, s.GetPage(id, "", 0, &got))
}
