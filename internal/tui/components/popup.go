package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/spotivi/internal/tui/styles"
)

// Popup is an informational overlay. While visible it captures all keys.
type Popup struct {
	visible bool
	title   string
	lines   []string
}

// NewPopup creates a hidden popup
func NewPopup() Popup {
	return Popup{}
}

// Show displays the popup with the given content
func (p *Popup) Show(title string, lines []string) {
	p.visible = true
	p.title = title
	p.lines = lines
}

// Hide dismisses the popup
func (p *Popup) Hide() {
	p.visible = false
}

// IsVisible returns whether the popup is shown
func (p Popup) IsVisible() bool {
	return p.visible
}

// Title returns the popup title
func (p Popup) Title() string {
	return p.title
}

// View renders the popup box, fitted to maxWidth
func (p Popup) View(maxWidth int) string {
	if !p.visible {
		return ""
	}

	// Border and padding take 6 cells
	inner := max(maxWidth-6, 10)

	body := make([]string, 0, len(p.lines)+2)
	for _, line := range p.lines {
		body = append(body, styles.Truncate(line, inner))
	}
	if len(p.lines) == 0 {
		body = append(body, styles.DimStyle.Render("Nothing to show"))
	}
	body = append(body, "", styles.DimStyle.Render("Press any key to close"))

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(styles.Truncate(p.title, inner)),
		strings.Join(body, "\n"),
	)

	return styles.ModalStyle.Render(content)
}
