package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/tui/components"
	"github.com/thenoetrevino/embudo/internal/tui/state"
)

// hit is what lies under a pointer position on the board.
type hit struct {
	columnIdx int
	columnID  int
	itemIdx   int
	itemID    int
}

// target is the drop target for the hit: the card under the pointer, else
// its column.
func (h hit) target() dnd.Target {
	switch {
	case h.itemID > 0:
		return dnd.ItemTarget(h.itemID)
	case h.columnID > 0:
		return dnd.ColumnTarget(h.columnID)
	default:
		return dnd.Target{}
	}
}

// hitTest maps a cell to the column and card drawn there. It mirrors the
// layout of View: the tab bar, then columns of ColumnOuterWidth cells, each
// with ColumnHeaderLines above a stack of CardHeight cards.
func (m Model) hitTest(x, y int) (hit, bool) {
	s := m.screen()
	top := components.TabsHeight
	height := m.columnHeight()
	if !s.Loaded() || x < 0 || y < top || y >= top+height {
		return hit{}, false
	}

	slot := x / components.ColumnOuterWidth
	if slot >= m.visibleColumns() {
		return hit{}, false
	}
	sel := s.Selection()
	idx := sel.ViewportOffset() + slot
	cols := s.Columns()
	if idx >= len(cols) {
		return hit{}, false
	}

	h := hit{columnIdx: idx, columnID: cols[idx].ID, itemIdx: -1}
	rel := y - top - components.ColumnHeaderLines
	if rel < 0 {
		return h, true
	}
	row := rel / components.CardHeight
	if row >= components.VisibleCards(height) {
		return h, true
	}
	itemIdx := sel.ScrollOffset(h.columnID) + row
	if id, ok := s.ItemIDAt(h.columnID, itemIdx); ok {
		h.itemIdx = itemIdx
		h.itemID = id
	}
	return h, true
}

// handleMouse feeds clicks, motion and releases to the gesture controller
// of the current tab. Hit testing happens here; the controller only sees
// points and targets.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.ui.Mode() != state.NormalMode {
		return m, nil
	}
	s := m.screen()
	mouse := msg.Mouse()
	p := dnd.Point{X: mouse.X, Y: mouse.Y}
	now := m.now()
	h, _ := m.hitTest(mouse.X, mouse.Y)

	switch msg.(type) {
	case tea.MouseClickMsg:
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		if mouse.Y < components.TabsHeight {
			return m.clickTab(mouse.X)
		}
		m.selectHit(h)
		if h.itemID > 0 {
			s.PointerDown(h.itemID, p, now)
		}
	case tea.MouseWheelMsg:
		switch mouse.Button {
		case tea.MouseWheelUp:
			return m.navigateItem(-1)
		case tea.MouseWheelDown:
			return m.navigateItem(1)
		}
	case tea.MouseMotionMsg:
		if pressed(s.Gesture()) {
			s.PointerMove(p, now, h.target())
		}
	case tea.MouseReleaseMsg:
		if pressed(s.Gesture()) {
			return m, s.PointerUp(p, now, h.target())
		}
	}
	return m, nil
}

func pressed(g *dnd.Gesture) bool {
	st := g.State()
	return st == dnd.GestureArmed || st == dnd.GestureDragging
}

func (m Model) selectHit(h hit) {
	if h.columnID == 0 {
		return
	}
	sel := m.screen().Selection()
	sel.SetColumn(h.columnIdx)
	if h.itemIdx >= 0 {
		sel.SetItem(h.itemIdx)
	}
}

// clickTab switches to the tab drawn under column x.
func (m Model) clickTab(x int) (Model, tea.Cmd) {
	left := 0
	for i, name := range m.tabNames() {
		w := lipgloss.Width(components.TabStyle.Render(name))
		if x >= left && x < left+w {
			return m.switchBoard(i - m.current)
		}
		left += w
	}
	return m, nil
}
