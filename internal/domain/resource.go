package domain

import "fmt"

// ResourceKind identifies which paginated collection a resource is.
type ResourceKind int

const (
	ResourcePlaylists      ResourceKind = iota // the user's playlists
	ResourcePlaylistTracks                     // tracks of one playlist
)

func (k ResourceKind) String() string {
	switch k {
	case ResourcePlaylists:
		return "playlists"
	case ResourcePlaylistTracks:
		return "playlist"
	default:
		return "unknown"
	}
}

// ResourceID names one logical paginated collection. It is comparable and is
// used as a map key for in-flight tracking and as a cache key prefix.
type ResourceID struct {
	Kind ResourceKind
	ID   string // playlist ID for ResourcePlaylistTracks, empty otherwise
}

// PlaylistsResource is the user's playlist collection.
func PlaylistsResource() ResourceID {
	return ResourceID{Kind: ResourcePlaylists}
}

// PlaylistTracksResource is the track collection of a single playlist.
func PlaylistTracksResource(playlistID string) ResourceID {
	return ResourceID{Kind: ResourcePlaylistTracks, ID: playlistID}
}

func (r ResourceID) String() string {
	if r.ID == "" {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}

// Token is the descriptor needed to request the next page of a resource.
type Token struct {
	URI   string // opaque continuation handed out by the API
	Index uint   // page-sequence counter the request is issued with
}

// Page is one freshly fetched page.
//
// Next is empty once the collection is exhausted. Index is the page's local
// next-page index; sources report 1 for every page they return, and the
// owning Paged adds its own counter on merge.
type Page[T any] struct {
	Items []T
	Next  string
	Index uint
}
