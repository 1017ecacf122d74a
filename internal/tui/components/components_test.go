package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCanvas_DropsRowsPastHeight(t *testing.T) {
	c := NewListCanvas(20, 2)
	c.DrawLine("one", false)
	c.DrawLine("two", true)
	c.DrawLine("three", false)

	assert.Equal(t, 2, c.Drawn())
	view := c.View()
	assert.Contains(t, view, "one")
	assert.Contains(t, view, "two")
	assert.NotContains(t, view, "three")
}

func TestListCanvas_PadsToHeight(t *testing.T) {
	c := NewListCanvas(20, 4)
	c.DrawLine("only", false)

	assert.Len(t, strings.Split(c.View(), "\n"), 4)
}

func TestListCanvas_TruncatesLongRows(t *testing.T) {
	c := NewListCanvas(10, 1)
	c.DrawLine("a very long playlist name", false)

	assert.Contains(t, c.View(), "...")
	assert.NotContains(t, c.View(), "playlist")
}

func TestPopup(t *testing.T) {
	p := NewPopup()
	assert.False(t, p.IsVisible())
	assert.Empty(t, p.View(40))

	p.Show("Alpha", []string{"Owner: me"})
	require.True(t, p.IsVisible())
	assert.Equal(t, "Alpha", p.Title())
	view := p.View(40)
	assert.Contains(t, view, "Owner: me")
	assert.Contains(t, view, "Press any key to close")

	p.Hide()
	assert.False(t, p.IsVisible())
}

func TestPopup_Empty(t *testing.T) {
	p := NewPopup()
	p.Show("Nothing", nil)
	assert.Contains(t, p.View(40), "Nothing to show")
}

func typeInto(p Prompt, text string) Prompt {
	for _, r := range text {
		p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPrompt_SubmitKeepsValue(t *testing.T) {
	p := NewPrompt()
	p.Show()
	p = typeInto(p, "rock")
	assert.Equal(t, "rock", p.Value())

	p, _, submitted := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)
	assert.False(t, p.IsVisible())
	assert.Equal(t, "rock", p.Value())
}

func TestPrompt_EscapeClears(t *testing.T) {
	p := NewPrompt()
	p.Show()
	p = typeInto(p, "jazz")

	p, _, submitted := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, submitted)
	assert.False(t, p.IsVisible())
	assert.Empty(t, p.Value())
}

func TestPrompt_IgnoresInputWhileHidden(t *testing.T) {
	p := NewPrompt()
	p = typeInto(p, "x")
	assert.Empty(t, p.Value())
	assert.Empty(t, p.View(40))
}

func TestPrompt_ShowResets(t *testing.T) {
	p := NewPrompt()
	p.Show()
	p = typeInto(p, "old")
	p.Hide()

	p.Show()
	assert.Empty(t, p.Value())
	assert.Contains(t, p.View(40), "/")
}
