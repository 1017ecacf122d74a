package tui

import (
	"github.com/mmcdole/spotivi/internal/pager"
)

// Message types for the TUI

// PageLoadedMsg carries the outcome of a background page fetch. Page holds a
// domain.Page of the resource's item type when Err is nil.
type PageLoadedMsg struct {
	Request pager.Request
	Page    any
	Err     error
}

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PlaybackStartedMsg signals that playback has started
type PlaybackStartedMsg struct {
	Title string
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message it was scheduled for
type ClearStatusMsg struct {
	ID int
}
