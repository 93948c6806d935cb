package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/embudo/internal/app"
	"github.com/thenoetrevino/embudo/internal/config"
	"github.com/thenoetrevino/embudo/internal/database"
	"github.com/thenoetrevino/embudo/internal/events"
	"github.com/thenoetrevino/embudo/internal/models"
	"github.com/thenoetrevino/embudo/internal/testutil"
	"github.com/thenoetrevino/embudo/internal/tui/state"
)

func TestNew_OneTabPerBoard(t *testing.T) {
	m, _ := setupModel(t, nil)

	assert.Equal(t, []string{"Projects", "Sales"}, m.tabNames())
	assert.False(t, m.screens[1].Loaded(), "other tabs load on first visit")

	view := viewOf(m)
	assert.Contains(t, view, "To Do (0)")
	assert.Contains(t, view, "No cards")
}

func TestNew_NoBoards(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	ctx := context.Background()
	for _, id := range []int{1, 2} {
		require.NoError(t, repo.DeleteBoard(ctx, id))
	}

	_, err := New(ctx, app.New(repo), config.Default())
	assert.ErrorIs(t, err, ErrNoBoards)
}

func TestNew_WithBoard(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	m, err := New(context.Background(), app.New(repo), config.Default(), WithBoard(2))
	require.NoError(t, err)
	assert.Equal(t, 1, m.current)
}

func TestSwitchBoard_LoadsLazily(t *testing.T) {
	var dealID int
	m, _ := setupModel(t, func(repo *database.Repository) {
		dealID = testutil.CreateTestDeal(t, repo, 5, "Renewal", "Acme", 120050)
	})

	m = press(t, m, "tab")
	s := dealStore(t, m)
	require.True(t, s.Loaded())
	deal, ok := s.board.Store().Item(dealID)
	require.True(t, ok)
	assert.Equal(t, 5, deal.ColumnID)

	view := viewOf(m)
	assert.Contains(t, view, "Qualified (1)")
	assert.Contains(t, view, "Acme · $1200.50")

	m = press(t, m, "tab")
	assert.Equal(t, 0, m.current)
}

func TestKeyboardMove_FollowsItem(t *testing.T) {
	var cardID int
	m, f := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "Write docs")
	})

	m = press(t, m, "L")

	assert.Equal(t, 2, cardColumn(t, m, cardID))
	assert.Equal(t, 1, m.screen().Selection().Column())
	id, ok := m.screen().SelectedItemID()
	require.True(t, ok)
	assert.Equal(t, cardID, id)

	stored, err := f.app.CardService.GetItem(context.Background(), cardID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ColumnID)
	assert.Equal(t, 0, stored.Position)

	assert.Equal(t, []string{`Moved "Write docs" to Doing`}, toastMessages(m))
	assert.Equal(t, 0, m.screen().Pending())
}

func TestKeyboardMove_AtEdge(t *testing.T) {
	var cardID int
	m, _ := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "Write docs")
	})

	m = press(t, m, "H")

	assert.Equal(t, 1, cardColumn(t, m, cardID))
	assert.Equal(t, []string{"Already in the first column"}, toastMessages(m))
}

func TestKeyboardMove_FailureCompensates(t *testing.T) {
	var cardID int
	m, f := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "Write docs")
	})
	// another client removed Doing, this tab has not seen it yet
	require.NoError(t, f.repo.DeleteColumn(context.Background(), 2))

	m = press(t, m, "L")

	assert.Equal(t, 1, cardColumn(t, m, cardID))
	assert.Equal(t, 0, m.screen().Selection().Column(), "cursor follows the restored card")
	assert.Equal(t, []string{
		`Moved "Write docs" to Doing`,
		`Failed to move "Write docs" to Doing, restored`,
	}, toastMessages(m))

	levels := m.toasts.state.All()
	assert.Equal(t, state.LevelSuccess, levels[0].Level)
	assert.Equal(t, state.LevelError, levels[1].Level)
}

func TestReload_FetchedBeforeMoveIsRefetched(t *testing.T) {
	var cardID int
	m, _ := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "Write docs")
	})

	// a reload reads the board, then the move commits before its result
	// reaches the update loop
	stale, ok := runCmd(m.screen().Reload())
	require.True(t, ok)
	require.IsType(t, resultMsg{}, stale)

	m = press(t, m, "L")
	require.Equal(t, 2, cardColumn(t, m, cardID))

	m = send(t, m, stale)
	assert.Equal(t, 2, cardColumn(t, m, cardID), "the old board must not undo the move")
	assert.Equal(t, 0, m.screen().Pending())
}

func TestReorder(t *testing.T) {
	var first, second int
	m, _ := setupModel(t, func(repo *database.Repository) {
		first = testutil.CreateTestCard(t, repo, 1, "A")
		second = testutil.CreateTestCard(t, repo, 1, "B")
	})

	m = press(t, m, "j", "K")

	s := m.screen()
	top, _ := s.ItemIDAt(1, 0)
	bottom, _ := s.ItemIDAt(1, 1)
	assert.Equal(t, second, top)
	assert.Equal(t, first, bottom)

	id, _ := s.SelectedItemID()
	assert.Equal(t, second, id, "cursor stays on the moved card")

	// already on top: nothing happens
	m = press(t, m, "K")
	top, _ = m.screen().ItemIDAt(1, 0)
	assert.Equal(t, second, top)
}

func TestCreateItem(t *testing.T) {
	m, f := setupModel(t, nil)

	m = press(t, m, "l", "n")
	require.Equal(t, state.AddItemMode, m.ui.Mode())
	assert.Contains(t, viewOf(m), "New card in Doing")

	m = press(t, m, "Ship it", "enter")

	assert.Equal(t, state.NormalMode, m.ui.Mode())
	id, ok := m.screen().SelectedItemID()
	require.True(t, ok)
	assert.Equal(t, 2, cardColumn(t, m, id))

	stored, err := f.app.CardService.GetItem(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ship it", stored.Title)
	assert.Equal(t, []string{`Created "Ship it"`}, toastMessages(m))
}

func TestCreateItem_EscapeCancels(t *testing.T) {
	m, _ := setupModel(t, nil)

	m = press(t, m, "n", "Draft", "esc")

	assert.Equal(t, state.NormalMode, m.ui.Mode())
	assert.Equal(t, 0, m.screen().ItemCount(1))
	assert.Empty(t, toastMessages(m))
}

func TestEditItem(t *testing.T) {
	var cardID int
	m, f := setupModel(t, func(repo *database.Repository) {
		cardID = testutil.CreateTestCard(t, repo, 1, "Old title")
	})

	m = press(t, m, "e")
	require.Equal(t, state.EditItemMode, m.ui.Mode())
	assert.Equal(t, "Old title", m.input.Value())

	m = press(t, m, "ctrl+u", "New title", "enter")

	stored, err := f.app.CardService.GetItem(context.Background(), cardID)
	require.NoError(t, err)
	assert.Equal(t, "New title", stored.Title)
	card, _ := m.screen().Card(cardID)
	assert.Equal(t, "New title", card.Title)
}

func TestDeleteItem_Confirm(t *testing.T) {
	var keep, drop int
	m, _ := setupModel(t, func(repo *database.Repository) {
		keep = testutil.CreateTestCard(t, repo, 1, "Keep")
		drop = testutil.CreateTestCard(t, repo, 1, "Drop")
	})

	m = press(t, m, "j", "d")
	require.Equal(t, state.DeleteItemConfirmMode, m.ui.Mode())
	assert.Contains(t, viewOf(m), `Delete card "Drop"?`)

	m = press(t, m, "n")
	assert.Equal(t, 2, m.screen().ItemCount(1))

	m = press(t, m, "d", "y")
	assert.Equal(t, 1, m.screen().ItemCount(1))
	_, ok := cardStore(t, m).board.Store().Item(drop)
	assert.False(t, ok)
	id, _ := m.screen().SelectedItemID()
	assert.Equal(t, keep, id, "cursor clamps to the remaining card")
}

func TestDeleteColumn_PromptCopy(t *testing.T) {
	m, f := setupModel(t, func(repo *database.Repository) {
		testutil.CreateTestDeal(t, repo, 4, "Renewal", "Acme", 0)
	})

	m = press(t, m, "tab", "D")
	require.Equal(t, state.DeleteColumnConfirmMode, m.ui.Mode())
	assert.True(t, m.deletePrompt.Blocking)
	assert.Contains(t, viewOf(m), `still holds 1 deal.`)

	m = press(t, m, "esc")
	assert.Equal(t, state.NormalMode, m.ui.Mode())
	assert.Len(t, m.screen().Columns(), 5)

	m = press(t, m, "D", "y")
	assert.Len(t, m.screen().Columns(), 4)
	_, err := f.app.ColumnService.GetColumnByID(context.Background(), 4)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, toastMessages(m), `Deleted column "Lead"`)
}

func TestDeleteColumn_EmptyCopy(t *testing.T) {
	m, _ := setupModel(t, nil)

	m = press(t, m, "D")

	assert.False(t, m.deletePrompt.Blocking)
	assert.Contains(t, viewOf(m), "The column is empty.")
}

func TestCreateColumn(t *testing.T) {
	m, _ := setupModel(t, nil)

	m = press(t, m, "N", "Review", "enter")

	cols := m.screen().Columns()
	require.Len(t, cols, 4)
	assert.Equal(t, "Review", cols[3].Name)
	assert.Equal(t, 3, m.screen().Selection().Column())
}

func TestRemoteChange_ReloadsLoadedTabs(t *testing.T) {
	rec := testutil.NewRecordingPublisher()
	m, f := setupModel(t, nil, app.WithEventPublisher(rec))
	require.NotNil(t, m.eventChan)

	id := testutil.CreateTestCard(t, f.repo, 3, "From elsewhere")
	m = send(t, m, remoteChangeMsg{event: events.Event{BoardID: 1, Origin: "other"}})

	assert.Equal(t, 3, cardColumn(t, m, id))
	assert.False(t, m.screens[1].Loaded(), "unvisited tabs stay unloaded")
}

func TestToastExpiry(t *testing.T) {
	m, _ := setupModel(t, func(repo *database.Repository) {
		testutil.CreateTestCard(t, repo, 1, "Write docs")
	})

	m = press(t, m, "H")
	require.True(t, m.toasts.state.HasAny())

	id := m.toasts.state.All()[0].ID
	m = send(t, m, toastExpiredMsg{id: id})
	assert.False(t, m.toasts.state.HasAny())
}

func TestHelpMode(t *testing.T) {
	m, _ := setupModel(t, nil)

	m = press(t, m, "?")
	require.Equal(t, state.HelpMode, m.ui.Mode())
	assert.Contains(t, viewOf(m), "Keys")

	m = press(t, m, "x")
	assert.Equal(t, state.NormalMode, m.ui.Mode())
}
