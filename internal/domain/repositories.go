package domain

import (
	"context"
)

// PlaylistRepository provides paginated access to playlists (implemented by
// the Spotify client)
type PlaylistRepository interface {
	// GetPlaylists returns one page of the user's playlists. A nil token
	// requests the first page.
	GetPlaylists(ctx context.Context, next *Token) (Page[PlaylistSummary], error)

	// GetPlaylistTracks returns one page of a playlist's tracks. A nil token
	// requests the first page.
	GetPlaylistTracks(ctx context.Context, playlistID string, next *Token) (Page[PlaylistTrack], error)
}

// PlaybackRepository starts playback on the user's active device
type PlaybackRepository interface {
	Play(ctx context.Context, uri string) error
}
