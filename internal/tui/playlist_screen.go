package tui

import (
	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/mmcdole/spotivi/internal/pager"
)

// PlaylistScreen lists the tracks of one playlist. Enter plays the track.
type PlaylistScreen struct {
	*listScreen[domain.PlaylistTrack]
	playlist domain.PlaylistSummary
}

// NewPlaylistScreen creates a screen for playlist p
func NewPlaylistScreen(p domain.PlaylistSummary, coord *pager.Coordinator, keys *KeyMap) *PlaylistScreen {
	s := &PlaylistScreen{
		listScreen: newListScreen[domain.PlaylistTrack](p.DisplayName(), domain.PlaylistTracksResource(p.ID), coord, keys),
		playlist:   p,
	}
	s.empty = "Empty playlist"
	s.label = trackLabel
	s.info = func(pt domain.PlaylistTrack) (domain.Popup, bool) {
		lines := pt.InfoLines()
		if lines == nil {
			return domain.Popup{}, false
		}
		return domain.Popup{Title: pt.DisplayName(), Lines: lines}, true
	}
	s.activate = func(pt domain.PlaylistTrack) Action {
		if pt.Track == nil || pt.Track.URI == "" {
			return nil
		}
		return PlayTrack{URI: pt.Track.URI, Title: pt.DisplayName()}
	}
	return s
}

// Playlist returns the playlist the screen shows
func (s *PlaylistScreen) Playlist() domain.PlaylistSummary {
	return s.playlist
}

func trackLabel(pt domain.PlaylistTrack) string {
	if pt.Track == nil {
		return pt.DisplayName()
	}
	label := pt.Track.Name
	if artists := pt.Track.ArtistLine(); artists != "" {
		label += " · " + artists
	}
	return label
}
