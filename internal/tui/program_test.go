package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/mmcdole/spotivi/internal/pager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForText(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte(text))
		},
		teatest.WithCheckInterval(time.Millisecond*50),
		teatest.WithDuration(time.Second*3),
	)
}

func TestProgram_BrowseAndQuit(t *testing.T) {
	fetcher := &fakeFetcher{pages: 2}
	m := NewModel(fetcher, &fakePlayer{}, pager.NewCoordinator(8), testKeys(), discardLogger())

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(80, 12),
	)

	waitForText(t, tm, "Alpha 0")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForText(t, tm, "Song 0")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second*3))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	assert.Equal(t, 2, final.Stack().Len())
	assert.Equal(t, 0, final.coord.Pending())
}
