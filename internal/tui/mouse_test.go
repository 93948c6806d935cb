package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/embudo/internal/database"
	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/testutil"
)

func down(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	return send(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
}

func drag(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	return send(t, m, tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft})
}

func up(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	return send(t, m, tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
}

func TestHitTest(t *testing.T) {
	var cardID int
	m, _ := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "A")
	})

	cx, cy := cardCell(0, 0)
	doneX, _ := cardCell(2, 0)

	tests := []struct {
		name       string
		x, y       int
		wantOK     bool
		wantColumn int
		wantItem   int
	}{
		{"card", cx, cy, true, 1, cardID},
		{"card bottom border", cx, cy + 2, true, 1, cardID},
		{"column header", cx, 4, true, 1, 0},
		{"empty column", doneX, cy, true, 3, 0},
		{"below the last card", cx, cy + 4, true, 1, 0},
		{"tab bar", cx, 1, false, 0, 0},
		{"right of the last column", 110, cy, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := m.hitTest(tt.x, tt.y)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantColumn, h.columnID)
			assert.Equal(t, tt.wantItem, h.itemID)
		})
	}
}

func TestDrag_DropOnColumn(t *testing.T) {
	var cardID int
	m, f := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "A")
	})

	x, y := cardCell(0, 0)
	doneX, _ := cardCell(2, 0)

	m = down(t, m, x, y)
	f.clock.advance(200 * time.Millisecond)
	m = drag(t, m, doneX, y)

	require.True(t, m.screen().Gesture().Dragging())
	assert.Equal(t, dnd.ColumnTarget(3), m.screen().Gesture().Candidate())
	assert.Contains(t, viewOf(m), `moving "A" to Done`)
	assert.Equal(t, 1, cardColumn(t, m, cardID), "nothing moves before the drop")

	m = up(t, m, doneX, y)

	assert.Equal(t, dnd.GestureIdle, m.screen().Gesture().State())
	assert.Equal(t, 3, cardColumn(t, m, cardID))
	stored, err := f.app.CardService.GetItem(context.Background(), cardID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.ColumnID)
	assert.Equal(t, []string{`Moved "A" to Done`}, toastMessages(m))

	id, _ := m.screen().SelectedItemID()
	assert.Equal(t, cardID, id)
}

func TestDrag_DropOnCardAppends(t *testing.T) {
	var moving, sibling int
	m, f := setupModel(t, func(repo *database.Repository) {
		moving = testutil.CreateTestCard(t, repo, 1, "A")
		sibling = testutil.CreateTestCard(t, repo, 2, "B")
	})

	x, y := cardCell(0, 0)
	bx, by := cardCell(1, 0)

	m = down(t, m, x, y)
	f.clock.advance(time.Second)
	m = drag(t, m, bx, by)
	assert.Equal(t, dnd.ItemTarget(sibling), m.screen().Gesture().Candidate())
	m = up(t, m, bx, by)

	s := m.screen()
	first, _ := s.ItemIDAt(2, 0)
	second, _ := s.ItemIDAt(2, 1)
	assert.Equal(t, sibling, first)
	assert.Equal(t, moving, second)

	stored, err := f.app.CardService.GetItem(context.Background(), moving)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Position)
}

func TestClick_SelectsWithoutMoving(t *testing.T) {
	var cardID int
	m, _ := setupModel(t, func(repo *database.Repository) {
		testutil.CreateTestCard(t, repo, 1, "A")
		cardID = testutil.CreateTestCard(t, repo, 2, "B")
	})

	x, y := cardCell(1, 0)
	m = down(t, m, x, y)
	m = up(t, m, x, y)

	assert.Equal(t, 2, cardColumn(t, m, cardID))
	id, _ := m.screen().SelectedItemID()
	assert.Equal(t, cardID, id)
	assert.Empty(t, toastMessages(m))
}

func TestDrag_BelowThresholdsIsAClick(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		dx      int
	}{
		{"too short", time.Second, 3},
		{"too fast", 10 * time.Millisecond, 66},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cardID int
			m, f := setupModel(t, func(repo *database.Repository) {
				cardID = testutil.CreateTestCard(t, repo, 1, "A")
			})

			x, y := cardCell(0, 0)
			m = down(t, m, x, y)
			f.clock.advance(tt.advance)
			m = drag(t, m, x+tt.dx, y)
			assert.False(t, m.screen().Gesture().Dragging())
			m = up(t, m, x+tt.dx, y)

			assert.Equal(t, 1, cardColumn(t, m, cardID))
			assert.Empty(t, toastMessages(m))
		})
	}
}

func TestDrag_ReleaseOutsideCancels(t *testing.T) {
	var cardID int
	m, f := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "A")
	})

	x, y := cardCell(0, 0)
	doneX, _ := cardCell(2, 0)
	m = down(t, m, x, y)
	f.clock.advance(time.Second)
	m = drag(t, m, doneX, y)
	require.True(t, m.screen().Gesture().Dragging())

	m = up(t, m, doneX, 1)

	assert.Equal(t, 1, cardColumn(t, m, cardID))
	assert.Empty(t, toastMessages(m))
	assert.Equal(t, dnd.GestureIdle, m.screen().Gesture().State())
}

func TestDrag_EscapeCancels(t *testing.T) {
	var cardID int
	m, f := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "A")
	})

	x, y := cardCell(0, 0)
	doneX, _ := cardCell(2, 0)
	m = down(t, m, x, y)
	f.clock.advance(time.Second)
	m = drag(t, m, doneX, y)
	m = press(t, m, "esc")
	m = up(t, m, doneX, y)

	assert.Equal(t, 1, cardColumn(t, m, cardID))
	assert.Empty(t, toastMessages(m))
}

func TestDrag_OwnColumnIsNoop(t *testing.T) {
	var cardID int
	m, f := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "A")
	})

	x, y := cardCell(0, 0)
	m = down(t, m, x, y)
	f.clock.advance(time.Second)
	m = drag(t, m, x, y+12)
	require.True(t, m.screen().Gesture().Dragging())
	m = up(t, m, x, y+12)

	assert.Equal(t, 1, cardColumn(t, m, cardID))
	assert.Empty(t, toastMessages(m))
	assert.Equal(t, 0, m.screen().Pending())
}

func TestClickTab(t *testing.T) {
	m, _ := setupModel(t, nil)

	m = down(t, m, 14, 1)

	assert.Equal(t, 1, m.current)
	assert.True(t, m.screen().Loaded())
}

func TestWheelMovesCursor(t *testing.T) {
	m, _ := setupModel(t, func(repo *database.Repository) {
		testutil.CreateTestCard(t, repo, 1, "A")
		testutil.CreateTestCard(t, repo, 1, "B")
	})

	m = send(t, m, tea.MouseWheelMsg{X: 5, Y: 10, Button: tea.MouseWheelDown})
	assert.Equal(t, 1, m.screen().Selection().Item())

	m = send(t, m, tea.MouseWheelMsg{X: 5, Y: 10, Button: tea.MouseWheelUp})
	assert.Equal(t, 0, m.screen().Selection().Item())
}
