package domain

import (
	"fmt"
	"strings"
	"time"
)

// PlaylistSummary is one entry of the user's playlist collection
type PlaylistSummary struct {
	ID            string
	Name          string
	OwnerName     string // empty when the API omits the display name
	Collaborative bool
	Public        *bool // nil when the API does not say
	TrackCount    int
}

// DisplayName returns the title shown in lists
func (p PlaylistSummary) DisplayName() string {
	return p.Name
}

// InfoLines returns the lines shown in the info popup
func (p PlaylistSummary) InfoLines() []string {
	owner := p.OwnerName
	if owner == "" {
		owner = "<unknown>"
	}
	lines := []string{
		"Name: " + p.Name,
		"Owner: " + owner,
		fmt.Sprintf("Collaborative: %t", p.Collaborative),
		fmt.Sprintf("Tracks: %d", p.TrackCount),
	}
	if p.Public != nil {
		public := "no"
		if *p.Public {
			public = "yes"
		}
		lines = append(lines, "Public: "+public)
	}
	return lines
}

// Track is a playable track
type Track struct {
	ID       string
	URI      string
	Name     string
	Artists  []string
	Album    string
	Duration time.Duration
}

// ArtistLine joins the artist names for display
func (t Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// InfoLines returns the lines shown in the info popup
func (t Track) InfoLines() []string {
	lines := []string{
		"Title: " + t.Name,
		"Artist: " + t.ArtistLine(),
	}
	if t.Album != "" {
		lines = append(lines, "Album: "+t.Album)
	}
	if t.Duration > 0 {
		lines = append(lines, "Length: "+FormatDuration(t.Duration))
	}
	return lines
}

// PlaylistTrack is one entry of a playlist. Track is nil when the API no
// longer has the track (removed from the catalogue).
type PlaylistTrack struct {
	IsLocal bool
	Track   *Track
}

// DisplayName returns the title shown in lists
func (pt PlaylistTrack) DisplayName() string {
	if pt.Track == nil {
		return "(N/A)"
	}
	return pt.Track.Name
}

// InfoLines returns the lines shown in the info popup, or nil when there is
// no track behind the entry
func (pt PlaylistTrack) InfoLines() []string {
	if pt.Track == nil {
		return nil
	}
	lines := pt.Track.InfoLines()
	if pt.IsLocal {
		lines = append(lines, "Local file: yes")
	}
	return lines
}

// Popup is the content of an informational overlay
type Popup struct {
	Title string
	Lines []string
}

// FormatDuration renders m:ss or h:mm:ss
func FormatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
