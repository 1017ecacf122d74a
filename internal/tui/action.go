package tui

import (
	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/mmcdole/spotivi/internal/pager"
)

// Action is what a screen asks the dispatcher to do after handling an event.
// The set is closed: only the types in this file implement it. A nil Action
// means nothing happened.
type Action interface {
	action()
}

// Redraw repaints the screen
type Redraw struct{}

// Quit exits the program
type Quit struct{}

// PushScreen makes Screen the top of the stack and runs its Init action
type PushScreen struct {
	Screen Screen
}

// PopScreen discards the top screen. Popping the last screen quits.
type PopScreen struct{}

// StartFetch requests a page in the background. It is dropped when a fetch
// for the same resource is already in flight.
type StartFetch struct {
	Request pager.Request
}

// ShowPopup opens an informational overlay
type ShowPopup struct {
	Popup domain.Popup
}

// PlayTrack starts playback of a track
type PlayTrack struct {
	URI   string
	Title string
}

func (Redraw) action()     {}
func (Quit) action()       {}
func (PushScreen) action() {}
func (PopScreen) action()  {}
func (StartFetch) action() {}
func (ShowPopup) action()  {}
func (PlayTrack) action()  {}
