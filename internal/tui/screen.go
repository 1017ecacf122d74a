package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/spotivi/internal/domain"
)

// Canvas is the drawing surface handed to a screen on render
type Canvas interface {
	DrawLine(text string, highlighted bool)
	Height() int
	Width() int
}

// Screen is one navigable view on the stack. Screens own their pagination
// state and are only touched from the event loop.
type Screen interface {
	// Init returns the action that loads the first page
	Init() Action

	// Title is shown in the header
	Title() string

	// Resource reports the paginated resource the screen owns, if any
	Resource() (domain.ResourceID, bool)

	// SetSize sets the area available for rows
	SetSize(width, height int)

	Render(c Canvas)
	HandleInput(msg tea.KeyMsg) Action
	HandleNotification(msg PageLoadedMsg) Action
}

// searchable screens support jumping to an entry by title
type searchable interface {
	Titles() []string
	Selected() int
	SelectIndex(i int) Action
}

// positioned screens report where the selection is for the header
type positioned interface {
	Position() (selected, loaded int, more bool)
}
