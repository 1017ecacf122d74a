package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/mmcdole/spotivi/internal/pager"
)

// listScreen is a lazily paginated list of T. It owns exactly one Paged
// state and the cursor over it.
type listScreen[T any] struct {
	title string
	id    domain.ResourceID
	empty string // shown once loaded with no items

	paged  *pager.Paged[T]
	cursor *pager.Cursor[T]
	coord  *pager.Coordinator
	keys   *KeyMap

	width  int
	height int

	fresh bool  // next first-page request bypasses the cache
	err   error // last failure, shown while nothing is loaded

	label    func(T) string
	info     func(T) (domain.Popup, bool)
	activate func(T) Action
}

func newListScreen[T any](title string, id domain.ResourceID, coord *pager.Coordinator, keys *KeyMap) *listScreen[T] {
	s := &listScreen[T]{
		title:  title,
		id:     id,
		empty:  "No items",
		coord:  coord,
		keys:   keys,
		height: 1,
	}
	s.reset()
	return s
}

// reset discards every merged page
func (s *listScreen[T]) reset() {
	s.paged = pager.NewPaged[T](s.id)
	s.cursor = pager.NewCursor(s.paged.Sequence())
	s.err = nil
}

func (s *listScreen[T]) Init() Action {
	return s.fetch()
}

func (s *listScreen[T]) Title() string {
	return s.title
}

func (s *listScreen[T]) Resource() (domain.ResourceID, bool) {
	return s.id, true
}

func (s *listScreen[T]) SetSize(width, height int) {
	s.width = width
	s.height = max(height, 1)
	s.cursor.Fit(s.height)
}

// fetch describes the next page to load, or nil when the resource is
// exhausted
func (s *listScreen[T]) fetch() Action {
	req := pager.Request{Resource: s.id}
	switch {
	case !s.paged.Loaded():
		req.Fresh = s.fresh
	case s.paged.HasMore():
		req.Token = s.paged.NextFetch()
	default:
		return nil
	}
	return StartFetch{Request: req}
}

// settle returns the fetch the selection calls for, or a redraw
func (s *listScreen[T]) settle() Action {
	if !s.paged.Loaded() {
		if s.coord.InFlight(s.id) {
			return Redraw{}
		}
		return s.fetch()
	}
	if s.coord.NeedsPrefetch(s.id, s.cursor.Remaining(), s.paged.HasMore()) {
		return s.fetch()
	}
	return Redraw{}
}

func (s *listScreen[T]) HandleInput(msg tea.KeyMsg) Action {
	n := s.paged.Len()

	switch {
	case key.Matches(msg, s.keys.Down):
		before := s.cursor.Index()
		if n > 0 {
			s.cursor.MoveDown(s.height)
		}
		action := s.settle()
		if _, redraw := action.(Redraw); redraw && s.cursor.Index() == before {
			return nil
		}
		return action

	case key.Matches(msg, s.keys.Up):
		if s.cursor.Index() == 0 {
			return nil
		}
		s.cursor.MoveUp()
		return Redraw{}

	case key.Matches(msg, s.keys.PageDown):
		s.cursor.Select(s.cursor.Index()+s.height, s.height)
		return s.settle()

	case key.Matches(msg, s.keys.PageUp):
		s.cursor.Select(s.cursor.Index()-s.height, s.height)
		return Redraw{}

	case key.Matches(msg, s.keys.Home):
		s.cursor.Select(0, s.height)
		return Redraw{}

	case key.Matches(msg, s.keys.End):
		s.cursor.Select(n-1, s.height)
		return s.settle()

	case key.Matches(msg, s.keys.Enter):
		item, ok := s.cursor.Sequence().Selected()
		if !ok || s.activate == nil {
			return nil
		}
		return s.activate(item)

	case key.Matches(msg, s.keys.Info):
		item, ok := s.cursor.Sequence().Selected()
		if !ok || s.info == nil {
			return nil
		}
		popup, ok := s.info(item)
		if !ok {
			return nil
		}
		return ShowPopup{Popup: popup}

	case key.Matches(msg, s.keys.Refresh):
		s.reset()
		s.fresh = true
		s.cursor.Fit(s.height)
		return s.fetch()
	}

	return nil
}

func (s *listScreen[T]) HandleNotification(msg PageLoadedMsg) Action {
	if msg.Request.Resource != s.id {
		return nil
	}
	if msg.Err != nil {
		s.err = msg.Err
		return Redraw{}
	}

	page, ok := msg.Page.(domain.Page[T])
	if !ok {
		return nil
	}

	// A first page requested before a refresh may come from the cache
	if msg.Request.Token == nil && s.fresh && !msg.Request.Fresh {
		return s.settle()
	}

	// Issued before the latest merge or reset
	if !s.paged.Accepts(msg.Request.Seq()) {
		return s.settle()
	}

	if err := s.paged.Merge(page); err != nil {
		s.err = err
		return Redraw{}
	}
	if msg.Request.Token == nil {
		s.fresh = false
	}
	s.err = nil
	return s.settle()
}

func (s *listScreen[T]) Render(c Canvas) {
	if s.paged.Len() == 0 {
		switch {
		case s.err != nil:
			c.DrawLine("Failed to load: "+s.err.Error(), false)
		case !s.paged.Loaded():
			c.DrawLine("Loading...", false)
		default:
			c.DrawLine(s.empty, false)
		}
		return
	}

	for row := range s.cursor.Visible(c.Height()) {
		c.DrawLine(s.label(row.Item), row.Highlighted)
	}
}

// Titles returns the labels of every loaded entry
func (s *listScreen[T]) Titles() []string {
	items := s.paged.Sequence().Items()
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = s.label(item)
	}
	return titles
}

// Selected returns the selected index
func (s *listScreen[T]) Selected() int {
	return s.cursor.Index()
}

// SelectIndex moves the selection to i
func (s *listScreen[T]) SelectIndex(i int) Action {
	if s.paged.Len() == 0 {
		return nil
	}
	s.cursor.Select(i, s.height)
	return s.settle()
}

// Position reports the selection, the number of loaded entries and whether
// more pages exist
func (s *listScreen[T]) Position() (int, int, bool) {
	return s.cursor.Index(), s.paged.Len(), s.paged.HasMore()
}
