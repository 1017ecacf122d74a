package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding
	Back     key.Binding

	// Actions
	Info      key.Binding
	Search    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "open/play"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "h", "left"),
			key.WithHelp("esc", "back"),
		),

		// Actions
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump to"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous match"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// bindings maps config names to bindings
func (k *KeyMap) bindings() map[string]*key.Binding {
	return map[string]*key.Binding{
		"up":         &k.Up,
		"down":       &k.Down,
		"page_up":    &k.PageUp,
		"page_down":  &k.PageDown,
		"home":       &k.Home,
		"end":        &k.End,
		"enter":      &k.Enter,
		"back":       &k.Back,
		"info":       &k.Info,
		"search":     &k.Search,
		"next_match": &k.NextMatch,
		"prev_match": &k.PrevMatch,
		"refresh":    &k.Refresh,
		"help":       &k.Help,
		"quit":       &k.Quit,
	}
}

// Apply replaces the keys of the named bindings, e.g. {"info": ["?"]}.
// Unknown names are an error so typos in the config file surface.
func (k *KeyMap) Apply(overrides map[string][]string) error {
	bindings := k.bindings()
	for name, keys := range overrides {
		b, ok := bindings[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown key binding %q", name)
		}
		if len(keys) == 0 {
			return fmt.Errorf("key binding %q has no keys", name)
		}
		desc := b.Help().Desc
		b.SetKeys(keys...)
		b.SetHelp(strings.Join(keys, "/"), desc)
	}
	return nil
}

// helpOrder is the order bindings are listed in the help popup
var helpOrder = []string{
	"up", "down", "page_up", "page_down", "home", "end",
	"enter", "back", "info", "search", "next_match", "prev_match",
	"refresh", "help", "quit",
}

// HelpLines renders one line per binding for the help popup
func (k *KeyMap) HelpLines() []string {
	bindings := k.bindings()
	lines := make([]string, 0, len(helpOrder))
	for _, name := range helpOrder {
		h := bindings[name].Help()
		lines = append(lines, fmt.Sprintf("%-10s %s", h.Key, h.Desc))
	}
	return lines
}
