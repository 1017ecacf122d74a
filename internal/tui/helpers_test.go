package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/mmcdole/spotivi/internal/pager"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves pages of generated playlists and tracks
type fakeFetcher struct {
	mu       sync.Mutex
	requests []pager.Request
	pages    int // pages per resource before exhaustion
	err      error
}

func (f *fakeFetcher) FetchPage(ctx context.Context, id domain.ResourceID, token *domain.Token, fresh bool) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, pager.Request{Resource: id, Token: token, Fresh: fresh})
	if f.err != nil {
		return nil, f.err
	}

	var index uint
	if token != nil {
		index = token.Index
	}
	switch id.Kind {
	case domain.ResourcePlaylists:
		return playlistPage(int(index), f.pages), nil
	default:
		return trackPage(id.ID, int(index), f.pages), nil
	}
}

func (f *fakeFetcher) Requests() []pager.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pager.Request(nil), f.requests...)
}

type fakePlayer struct {
	mu   sync.Mutex
	uris []string
	err  error
}

func (p *fakePlayer) Play(ctx context.Context, uri string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uris = append(p.uris, uri)
	return p.err
}

var playlistNames = []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel"}

// playlistPage returns page n of pages, each holding eight playlists
func playlistPage(n, pages int) domain.Page[domain.PlaylistSummary] {
	page := domain.Page[domain.PlaylistSummary]{Index: 1}
	for i, name := range playlistNames {
		id := fmt.Sprintf("p%d", n*8+i)
		page.Items = append(page.Items, domain.PlaylistSummary{
			ID:         id,
			Name:       fmt.Sprintf("%s %d", name, n),
			TrackCount: 3,
		})
	}
	if n+1 < pages {
		page.Next = fmt.Sprintf("playlists?page=%d", n+1)
	}
	return page
}

// trackPage returns page n of pages for a playlist, each holding eight tracks
func trackPage(playlistID string, n, pages int) domain.Page[domain.PlaylistTrack] {
	page := domain.Page[domain.PlaylistTrack]{Index: 1}
	for i := range 8 {
		id := fmt.Sprintf("%s-t%d", playlistID, n*8+i)
		page.Items = append(page.Items, domain.PlaylistTrack{Track: &domain.Track{
			ID:      id,
			URI:     "spotify:track:" + id,
			Name:    fmt.Sprintf("Song %d", n*8+i),
			Artists: []string{"Band"},
		}})
	}
	if n+1 < pages {
		page.Next = fmt.Sprintf("%s/tracks?page=%d", playlistID, n+1)
	}
	return page
}

// fakeCanvas records drawn rows
type fakeCanvas struct {
	width, height int
	lines         []string
	highlighted   []bool
}

func (c *fakeCanvas) DrawLine(text string, highlighted bool) {
	c.lines = append(c.lines, text)
	c.highlighted = append(c.highlighted, highlighted)
}
func (c *fakeCanvas) Height() int { return c.height }
func (c *fakeCanvas) Width() int  { return c.width }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testKeys() *KeyMap {
	km := DefaultKeyMap()
	return &km
}

// update runs one message through the model
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// loaded builds the message a fetch for req would produce
func loaded(req pager.Request, page any) PageLoadedMsg {
	return PageLoadedMsg{Request: req, Page: page}
}
