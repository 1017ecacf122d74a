package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/mmcdole/spotivi/internal/pager"
	"github.com/mmcdole/spotivi/internal/search"
	"github.com/mmcdole/spotivi/internal/tui/components"
	"github.com/mmcdole/spotivi/internal/tui/styles"
)

// Vertical layout: header line + footer line
const ChromeHeight = 2

const statusTimeout = 5 * time.Second

// Model is the main Bubble Tea model for the application. It is the single
// consumer of every event: key presses and fetch results both arrive through
// Update, so screens are never touched concurrently.
type Model struct {
	Ready bool

	// Services
	pages    pageFetcher
	playback player

	coord  *pager.Coordinator
	stack  *ScreenStack
	keys   *KeyMap
	logger *slog.Logger

	// UI Components
	spinner spinner.Model
	popup   components.Popup
	prompt  components.Prompt

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusID    int
	lastQuery   string // kept for n/N after the prompt closes
}

// NewModel creates the application model with the playlists screen as root
func NewModel(pages pageFetcher, playback player, coord *pager.Coordinator, keys *KeyMap, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if keys == nil {
		km := DefaultKeyMap()
		keys = &km
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.SpinnerStyle

	m := Model{
		pages:    pages,
		playback: playback,
		coord:    coord,
		stack:    NewScreenStack(),
		keys:     keys,
		logger:   logger,
		spinner:  sp,
		popup:    components.NewPopup(),
		prompt:   components.NewPrompt(),
	}
	m.stack.Push(NewPlaylistsScreen(coord, keys))
	return m
}

// Init loads the first page of the root screen
func (m Model) Init() tea.Cmd {
	var cmd tea.Cmd
	if top := m.stack.Top(); top != nil {
		cmd = m.apply(top.Init())
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.stack.SetSizes(m.Width, m.listHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case PlaybackStartedMsg:
		return m, m.setStatus("Playing "+msg.Title, false)

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handlePageLoaded routes a fetch result to every screen that owns the
// resource. The in-flight flag is cleared first so a screen that still needs
// data can start the next fetch right away.
func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	id := msg.Request.Resource
	m.coord.Release(id)

	owners := m.stack.Owners(id)
	if len(owners) == 0 {
		m.logger.Debug("dropping page for closed screen", "resource", id.String(), "seq", msg.Request.Seq())
		return m, nil
	}

	var cmds []tea.Cmd
	if msg.Err != nil {
		m.logger.Error("page fetch failed", "resource", id.String(), "seq", msg.Request.Seq(), "error", msg.Err)
		cmds = append(cmds, m.setStatus(fetchErrorText(msg.Err), true))
	}

	for _, screen := range owners {
		cmds = append(cmds, m.apply(screen.HandleNotification(msg)))
	}
	return m, tea.Batch(cmds...)
}

// apply carries out an action returned by a screen
func (m *Model) apply(a Action) tea.Cmd {
	switch a := a.(type) {
	case nil, Redraw:
		// View runs after every Update
		return nil

	case Quit:
		return tea.Quit

	case PushScreen:
		m.stack.Push(a.Screen)
		a.Screen.SetSize(m.Width, m.listHeight())
		m.logger.Debug("pushed screen", "title", a.Screen.Title(), "depth", m.stack.Depth())
		return m.apply(a.Screen.Init())

	case PopScreen:
		m.stack.Pop()
		if m.stack.Len() == 0 {
			return tea.Quit
		}
		return nil

	case StartFetch:
		req := a.Request
		if !m.coord.Acquire(req.Resource) {
			m.logger.Debug("fetch already in flight", "resource", req.Resource.String())
			return nil
		}
		m.logger.Debug("starting fetch", "resource", req.Resource.String(), "seq", req.Seq(), "fresh", req.Fresh)
		return FetchPageCmd(m.pages, req)

	case ShowPopup:
		m.popup.Show(a.Popup.Title, a.Popup.Lines)
		return nil

	case PlayTrack:
		cmd := m.setStatus("Starting "+a.Title+"...", false)
		return tea.Batch(cmd, PlayCmd(m.playback, a.URI, a.Title))
	}

	m.logger.Warn("unhandled action", "type", fmt.Sprintf("%T", a))
	return nil
}

// handleKeyMsg routes key presses: popup, then prompt, then global keys,
// then the top screen
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the popup
	if m.popup.IsVisible() {
		m.popup.Hide()
		return m, nil
	}

	if m.prompt.IsVisible() {
		var cmd tea.Cmd
		m.prompt, cmd, _ = m.prompt.Update(msg)
		if query := m.prompt.Value(); query != "" {
			m.lastQuery = query
			return m, tea.Batch(cmd, m.jump(query))
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.apply(Quit{})

	case key.Matches(msg, m.keys.Back):
		return m, m.apply(PopScreen{})

	case key.Matches(msg, m.keys.Help):
		m.popup.Show("Keys", m.keys.HelpLines())
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if _, ok := m.stack.Top().(searchable); ok {
			return m, m.prompt.Show()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextMatch):
		return m, m.cycle(true)

	case key.Matches(msg, m.keys.PrevMatch):
		return m, m.cycle(false)
	}

	top := m.stack.Top()
	if top == nil {
		return m, nil
	}
	return m, m.apply(top.HandleInput(msg))
}

// jump selects the best match for query among the loaded entries
func (m *Model) jump(query string) tea.Cmd {
	s, ok := m.stack.Top().(searchable)
	if !ok {
		return nil
	}
	idx, found := search.Best(query, s.Titles())
	if !found {
		return nil
	}
	return m.apply(s.SelectIndex(idx))
}

// cycle moves to the next or previous entry matching the last query
func (m *Model) cycle(forward bool) tea.Cmd {
	s, ok := m.stack.Top().(searchable)
	if !ok || m.lastQuery == "" {
		return nil
	}
	idx, found := search.Next(m.lastQuery, s.Titles(), s.Selected(), forward)
	if !found {
		return m.setStatus("No match for "+m.lastQuery, false)
	}
	return m.apply(s.SelectIndex(idx))
}

// setStatus shows a status message and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusID, statusTimeout)
}

// listHeight is the number of rows available to screens
func (m Model) listHeight() int {
	return max(m.Height-ChromeHeight, 1)
}

// Stack exposes the screen stack
func (m Model) Stack() *ScreenStack {
	return m.stack
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	top := m.stack.Top()
	if top == nil {
		return ""
	}

	canvas := components.NewListCanvas(m.Width, m.listHeight())
	top.Render(canvas)

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(top),
		canvas.View(),
		m.renderFooter(),
	)

	// Overlay popup if visible
	if m.popup.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.popup.View(m.Width))
	}

	return view
}

// renderHeader renders the breadcrumb, a spinner while the top screen is
// loading, and the selection position
func (m Model) renderHeader(top Screen) string {
	crumb := strings.Join(m.stack.Breadcrumb(), " > ")
	left := styles.TitleStyle.Render(styles.Truncate(crumb, max(m.Width-16, 1)))

	if id, ok := top.Resource(); ok && m.coord.InFlight(id) {
		left += " " + m.spinner.View()
	}

	var right string
	if p, ok := top.(positioned); ok {
		selected, loaded, more := p.Position()
		if loaded > 0 {
			pos := fmt.Sprintf("%d/%d", selected+1, loaded)
			if more {
				pos += "+"
			}
			right = styles.DimStyle.Render(pos)
		}
	}

	return styles.JoinEnds(left, right, m.Width)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	if m.prompt.IsVisible() {
		return m.prompt.View(m.Width)
	}

	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(styles.Truncate(m.StatusMsg, max(m.Width-10, 1)))
		} else {
			left = styles.DimStyle.Render(styles.Truncate(m.StatusMsg, max(m.Width-10, 1)))
		}
	}

	// Right side: "? help" hint
	right := styles.AccentStyle.Render(m.keys.Help.Help().Key) + styles.DimStyle.Render(" help")

	return styles.JoinEnds(left, right, m.Width)
}

// fetchErrorText turns a fetch failure into a status line
func fetchErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		return "Spotify rejected the token, run spotivi --login"
	case errors.Is(err, domain.ErrRateLimited):
		return "Rate limited by Spotify, try again shortly"
	case errors.Is(err, domain.ErrServerOffline):
		return "Spotify is unreachable"
	default:
		return "Failed to load: " + err.Error()
	}
}
