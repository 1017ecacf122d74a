package components

import (
	"strings"

	"github.com/mmcdole/spotivi/internal/tui/styles"
)

// ListCanvas collects the rows a screen draws into a fixed-size area
type ListCanvas struct {
	width  int
	height int
	lines  []string
}

// NewListCanvas creates a canvas of the given size
func NewListCanvas(width, height int) *ListCanvas {
	return &ListCanvas{
		width:  max(width, 1),
		height: max(height, 0),
	}
}

// Width returns the drawable width in cells
func (c *ListCanvas) Width() int { return c.width }

// Height returns the number of rows
func (c *ListCanvas) Height() int { return c.height }

// DrawLine appends a row. Rows past the canvas height are dropped.
func (c *ListCanvas) DrawLine(text string, highlighted bool) {
	if len(c.lines) >= c.height {
		return
	}

	// One cell margin on each side
	inner := max(c.width-2, 1)
	row := " " + styles.Pad(styles.Truncate(text, inner), inner) + " "

	if highlighted {
		c.lines = append(c.lines, styles.SelectedItemStyle.Render(row))
	} else {
		c.lines = append(c.lines, styles.NormalItemStyle.Render(row))
	}
}

// Drawn returns the number of rows drawn so far
func (c *ListCanvas) Drawn() int {
	return len(c.lines)
}

// View renders the canvas, padded to its full height
func (c *ListCanvas) View() string {
	lines := make([]string, c.height)
	copy(lines, c.lines)
	return strings.Join(lines, "\n")
}
