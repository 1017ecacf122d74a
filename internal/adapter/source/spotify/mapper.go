package spotify

import (
	"time"

	"github.com/mmcdole/spotivi/internal/domain"
)

// mapPage converts a paging envelope. Every page advances the counter by one.
func mapPage[D, T any](p pagingDTO[D], mapItem func(D) T) domain.Page[T] {
	items := make([]T, 0, len(p.Items))
	for _, d := range p.Items {
		items = append(items, mapItem(d))
	}
	page := domain.Page[T]{Items: items, Index: 1}
	if p.Next != nil {
		page.Next = *p.Next
	}
	return page
}

// MapPlaylist converts a playlist object to a domain summary
func MapPlaylist(d playlistDTO) domain.PlaylistSummary {
	s := domain.PlaylistSummary{
		ID:            d.ID,
		Name:          d.Name,
		Collaborative: d.Collaborative,
		Public:        d.Public,
		TrackCount:    d.Tracks.Total,
	}
	if d.Owner.DisplayName != nil {
		s.OwnerName = *d.Owner.DisplayName
	}
	return s
}

// MapPlaylistItem converts a playlist item to a domain track entry
func MapPlaylistItem(d playlistItemDTO) domain.PlaylistTrack {
	pt := domain.PlaylistTrack{IsLocal: d.IsLocal}
	if d.Track == nil {
		return pt
	}
	t := &domain.Track{
		ID:       d.Track.ID,
		URI:      d.Track.URI,
		Name:     d.Track.Name,
		Duration: time.Duration(d.Track.DurationMS) * time.Millisecond,
	}
	for _, a := range d.Track.Artists {
		t.Artists = append(t.Artists, a.Name)
	}
	if d.Track.Album != nil {
		t.Album = d.Track.Album.Name
	}
	pt.Track = t
	return pt
}
