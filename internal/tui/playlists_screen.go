package tui

import (
	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/mmcdole/spotivi/internal/pager"
)

// PlaylistsScreen lists the user's playlists. Enter opens a playlist.
type PlaylistsScreen struct {
	*listScreen[domain.PlaylistSummary]
}

// NewPlaylistsScreen creates the root screen
func NewPlaylistsScreen(coord *pager.Coordinator, keys *KeyMap) *PlaylistsScreen {
	s := &PlaylistsScreen{
		listScreen: newListScreen[domain.PlaylistSummary]("Playlists", domain.PlaylistsResource(), coord, keys),
	}
	s.empty = "No playlists"
	s.label = func(p domain.PlaylistSummary) string {
		return p.DisplayName()
	}
	s.info = func(p domain.PlaylistSummary) (domain.Popup, bool) {
		return domain.Popup{Title: p.Name, Lines: p.InfoLines()}, true
	}
	s.activate = func(p domain.PlaylistSummary) Action {
		return PushScreen{Screen: NewPlaylistScreen(p, coord, keys)}
	}
	return s
}
