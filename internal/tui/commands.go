package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/mmcdole/spotivi/internal/pager"
)

// Command factories for async operations

const (
	fetchTimeout = 30 * time.Second
	playTimeout  = 15 * time.Second
)

// pageFetcher loads one page of a resource (implemented by service.PageService)
type pageFetcher interface {
	FetchPage(ctx context.Context, id domain.ResourceID, token *domain.Token, fresh bool) (any, error)
}

// player starts playback (implemented by service.PlaybackService)
type player interface {
	Play(ctx context.Context, uri string) error
}

// FetchPageCmd fetches the page described by req in the background. The
// result always comes back as a PageLoadedMsg so the in-flight flag can be
// cleared on the event loop.
func FetchPageCmd(svc pageFetcher, req pager.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		page, err := svc.FetchPage(ctx, req.Resource, req.Token, req.Fresh)
		return PageLoadedMsg{Request: req, Page: page, Err: err}
	}
}

// PlayCmd starts playback of a track
func PlayCmd(svc player, uri, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
		defer cancel()

		if err := svc.Play(ctx, uri); err != nil {
			return ErrMsg{Err: err, Context: "starting playback"}
		}
		return PlaybackStartedMsg{Title: title}
	}
}

// ClearStatusCmd returns a command that clears status id after a delay
func ClearStatusCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
