package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/spotivi/internal/tui/styles"
)

// Prompt is the single-line jump prompt shown in the footer
type Prompt struct {
	visible bool
	input   textinput.Model
}

// NewPrompt creates a hidden prompt
func NewPrompt() Prompt {
	ti := textinput.New()
	ti.Placeholder = "jump to..."
	ti.CharLimit = 64
	ti.Prompt = "/"
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Prompt{
		input: ti,
	}
}

// Show opens the prompt with an empty query
func (p *Prompt) Show() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// Hide closes the prompt. The last query stays available for n/N.
func (p *Prompt) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the prompt is shown
func (p Prompt) IsVisible() bool {
	return p.visible
}

// Value returns the current query
func (p Prompt) Value() string {
	return p.input.Value()
}

// Update handles input events, returns (prompt, cmd, submitted)
func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			p.Hide()
			return p, nil, true
		case tea.KeyEsc:
			p.Hide()
			p.input.SetValue("")
			return p, nil, false
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

// View renders the prompt line
func (p Prompt) View(width int) string {
	if !p.visible {
		return ""
	}
	p.input.Width = max(width-3, 1)
	return p.input.View()
}
