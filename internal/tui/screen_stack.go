package tui

import (
	"github.com/mmcdole/spotivi/internal/domain"
)

// ScreenStack holds the navigation history. The top screen receives input
// and is the one rendered. Screens below the top keep their state and still
// receive the pages they asked for.
//
//	Root:     [Playlists]
//	Drill in: [Playlists | Road Trip]
type ScreenStack struct {
	screens []Screen
}

// NewScreenStack creates a new empty screen stack
func NewScreenStack() *ScreenStack {
	return &ScreenStack{
		screens: make([]Screen, 0),
	}
}

// Len returns the number of screens in the stack
func (s *ScreenStack) Len() int {
	return len(s.screens)
}

// Get returns the screen at the given index (0 = bottom/oldest)
func (s *ScreenStack) Get(idx int) Screen {
	if idx < 0 || idx >= len(s.screens) {
		return nil
	}
	return s.screens[idx]
}

// Top returns the topmost (current/focused) screen
func (s *ScreenStack) Top() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Push adds a new screen to the stack
func (s *ScreenStack) Push(screen Screen) {
	s.screens = append(s.screens, screen)
}

// Pop removes and returns the top screen. Unlike a column browser the last
// screen can be popped too, leaving the stack empty.
func (s *ScreenStack) Pop() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	popped := s.screens[len(s.screens)-1]
	s.screens[len(s.screens)-1] = nil
	s.screens = s.screens[:len(s.screens)-1]
	return popped
}

// Owners returns every screen owning resource id, bottom-up
func (s *ScreenStack) Owners(id domain.ResourceID) []Screen {
	var owners []Screen
	for _, screen := range s.screens {
		if owned, ok := screen.Resource(); ok && owned == id {
			owners = append(owners, screen)
		}
	}
	return owners
}

// SetSizes updates the size of all screens
func (s *ScreenStack) SetSizes(width, height int) {
	for _, screen := range s.screens {
		screen.SetSize(width, height)
	}
}

// Depth returns the navigation depth (0 = root, 1 = first drill, etc.)
func (s *ScreenStack) Depth() int {
	if len(s.screens) == 0 {
		return 0
	}
	return len(s.screens) - 1
}

// Breadcrumb returns the titles from root to top
func (s *ScreenStack) Breadcrumb() []string {
	titles := make([]string, len(s.screens))
	for i, screen := range s.screens {
		titles[i] = screen.Title()
	}
	return titles
}
