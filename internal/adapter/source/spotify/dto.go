package spotify

// Spotify Web API JSON response structures

// pagingDTO is the envelope of every paginated endpoint
type pagingDTO[T any] struct {
	Href   string  `json:"href"`
	Items  []T     `json:"items"`
	Limit  int     `json:"limit"`
	Next   *string `json:"next"`
	Offset int     `json:"offset"`
	Total  int     `json:"total"`
}

// playlistDTO is a simplified playlist object from /me/playlists
type playlistDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Collaborative bool   `json:"collaborative"`
	Public        *bool  `json:"public"`
	URI           string `json:"uri"`
	Owner         struct {
		ID          string  `json:"id"`
		DisplayName *string `json:"display_name"`
	} `json:"owner"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

// playlistItemDTO wraps a track inside a playlist
type playlistItemDTO struct {
	AddedAt string    `json:"added_at"`
	IsLocal bool      `json:"is_local"`
	Track   *trackDTO `json:"track"`
}

// trackDTO is a full track object. Episodes share the shape of the fields
// used here.
type trackDTO struct {
	ID         string      `json:"id"`
	URI        string      `json:"uri"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	DurationMS int         `json:"duration_ms"`
	Artists    []artistDTO `json:"artists"`
	Album      *struct {
		Name string `json:"name"`
	} `json:"album"`
}

type artistDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// playRequest is the body of PUT /me/player/play
type playRequest struct {
	URIs []string `json:"uris"`
}

// errorDTO is the regular error object
type errorDTO struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
}
