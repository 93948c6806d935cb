package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/models"
	"github.com/thenoetrevino/embudo/internal/tui/components"
	"github.com/thenoetrevino/embudo/internal/tui/state"
)

// resultMsg carries the second half of an asynchronous command. settle runs
// on the update loop, where the screen's store may be touched, and may ask
// for a follow-up command such as a reload.
type resultMsg struct {
	boardID int
	settle  func() tea.Cmd
}

// boardScreen is one board tab. Cards and deals are stored with different
// item types, the model only sees this interface.
type boardScreen interface {
	Info() *models.Board
	Loaded() bool
	Selection() *state.Selection
	Gesture() *dnd.Gesture
	Pending() int

	Columns() []*models.Column
	Cards(columnID int) []components.CardProps
	Card(itemID int) (components.CardProps, bool)
	ItemCount(columnID int) int
	ItemIDAt(columnID, idx int) (int, bool)
	SelectedItemID() (int, bool)
	SelectedColumn() (*models.Column, bool)
	ColumnOf(target dnd.Target) (int, bool)
	Noun(n int) string

	PointerDown(itemID int, p dnd.Point, at time.Time) bool
	PointerMove(p dnd.Point, at time.Time, target dnd.Target) bool
	PointerUp(p dnd.Point, at time.Time, target dnd.Target) tea.Cmd
	CancelDrag()

	Reload() tea.Cmd
	MoveToNeighbour(itemID, delta int) tea.Cmd
	Reorder(itemID, direction int) tea.Cmd
	CreateItem(columnID int, title string) tea.Cmd
	RenameItem(itemID int, title string) tea.Cmd
	DeleteItem(itemID int) tea.Cmd
	CreateColumn(name string) tea.Cmd
	PromptDeleteColumn(columnID int) (dnd.ColumnDeletePrompt, error)
	DeleteColumn(columnID int) tea.Cmd
}

// describeFunc turns an item into the two lines of its card.
type describeFunc[I any] func(item I) (title, meta string)

type screen[I dnd.Item[I]] struct {
	info      *models.Board
	board     *dnd.Board[I]
	selection *state.Selection
	describe  describeFunc[I]
	timeout   time.Duration
	logger    *slog.Logger
	loaded    bool
}

func newScreen[I dnd.Item[I]](info *models.Board, board *dnd.Board[I], describe describeFunc[I], timeout time.Duration, logger *slog.Logger) *screen[I] {
	return &screen[I]{
		info:      info,
		board:     board,
		selection: state.NewSelection(),
		describe:  describe,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *screen[I]) Info() *models.Board {
	if b := s.board.Store().Board(); b != nil {
		return b
	}
	return s.info
}

func (s *screen[I]) Loaded() bool                { return s.loaded }
func (s *screen[I]) Selection() *state.Selection { return s.selection }
func (s *screen[I]) Gesture() *dnd.Gesture       { return s.board.Gesture() }
func (s *screen[I]) Pending() int                { return len(s.board.Pending()) }
func (s *screen[I]) Columns() []*models.Column   { return s.board.Store().Columns() }
func (s *screen[I]) ItemCount(columnID int) int  { return s.board.Store().Count(columnID) }
func (s *screen[I]) Noun(n int) string           { return dnd.ItemNoun(s.info.Kind, n) }

func (s *screen[I]) Cards(columnID int) []components.CardProps {
	items := s.board.Store().Items(columnID)
	cards := make([]components.CardProps, 0, len(items))
	for _, item := range items {
		cards = append(cards, s.props(item))
	}
	return cards
}

func (s *screen[I]) Card(itemID int) (components.CardProps, bool) {
	item, ok := s.board.Store().Item(itemID)
	if !ok {
		return components.CardProps{}, false
	}
	return s.props(item), true
}

func (s *screen[I]) props(item I) components.CardProps {
	title, meta := s.describe(item)
	return components.CardProps{ID: item.GetID(), Title: title, Meta: meta}
}

func (s *screen[I]) ItemIDAt(columnID, idx int) (int, bool) {
	items := s.board.Store().Items(columnID)
	if idx < 0 || idx >= len(items) {
		return 0, false
	}
	return items[idx].GetID(), true
}

func (s *screen[I]) SelectedColumn() (*models.Column, bool) {
	return s.board.Store().ColumnAt(s.selection.Column())
}

func (s *screen[I]) SelectedItemID() (int, bool) {
	col, ok := s.SelectedColumn()
	if !ok {
		return 0, false
	}
	return s.ItemIDAt(col.ID, s.selection.Item())
}

// ColumnOf resolves a drop target to the column it lands in.
func (s *screen[I]) ColumnOf(target dnd.Target) (int, bool) {
	id, err := s.board.Engine().ResolveColumn(target)
	return id, err == nil
}

// follow puts the cursor on itemID wherever it sits now.
func (s *screen[I]) follow(itemID int) {
	store := s.board.Store()
	item, ok := store.Item(itemID)
	if !ok {
		return
	}
	s.selection.Set(store.ColumnIndex(item.GetColumnID()), store.IndexOf(itemID))
}

func (s *screen[I]) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *screen[I]) result(settle func() tea.Cmd) resultMsg {
	return resultMsg{boardID: s.info.ID, settle: settle}
}

// ============================================================================
// Pointer gestures
// ============================================================================

func (s *screen[I]) PointerDown(itemID int, p dnd.Point, at time.Time) bool {
	return s.board.PointerDown(itemID, p, at)
}

func (s *screen[I]) PointerMove(p dnd.Point, at time.Time, target dnd.Target) bool {
	return s.board.PointerMove(p, at, target)
}

// PointerUp ends a gesture. A drop is applied at once and its remote move is
// returned as a command.
func (s *screen[I]) PointerUp(p dnd.Point, at time.Time, target dnd.Target) tea.Cmd {
	op, err := s.board.PointerUp(p, at, target)
	return s.dispatch(op, err)
}

func (s *screen[I]) CancelDrag() {
	s.board.CancelDrag()
}

func (s *screen[I]) MoveToNeighbour(itemID, delta int) tea.Cmd {
	op, err := s.board.MoveToNeighbour(itemID, delta)
	switch {
	case errors.Is(err, models.ErrAlreadyFirstColumn):
		s.board.Notify(dnd.NotifyInfo, "Already in the first column")
		return nil
	case errors.Is(err, models.ErrAlreadyLastColumn):
		s.board.Notify(dnd.NotifyInfo, "Already in the last column")
		return nil
	}
	return s.dispatch(op, err)
}

func (s *screen[I]) dispatch(op *dnd.PendingMove, err error) tea.Cmd {
	switch {
	case dnd.IsInert(err):
		return nil
	case err != nil:
		s.logger.Warn("drop rejected", "board_id", s.info.ID, "error", err)
		s.board.Notify(dnd.NotifyError, fmt.Sprintf("Cannot move %s: %v", s.Noun(1), err))
		return nil
	case op == nil:
		return nil
	}

	s.follow(op.ItemID)
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		moveErr := s.board.Commit(ctx, op)
		return s.result(func() tea.Cmd {
			selected, _ := s.SelectedItemID()
			switch s.board.Settle(op, moveErr) {
			case dnd.OutcomeNeedsReload:
				return s.Reload()
			case dnd.OutcomeCompensated:
				if selected == op.ItemID {
					s.follow(op.ItemID)
				}
			}
			return nil
		})
	}
}

// ============================================================================
// Commands
// ============================================================================

// Reload fetches the board off the loop and swaps the store on it. The
// cursor stays on the selected item when it still exists. A snapshot that
// lost a race with a confirmed write is fetched again.
func (s *screen[I]) Reload() tea.Cmd {
	boardID := s.info.ID
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		snap, err := s.board.Fetch(ctx, boardID)
		return s.result(func() tea.Cmd {
			selected, hadSelection := s.SelectedItemID()
			if err := s.board.SettleReload(snap, err); err != nil {
				if errors.Is(err, dnd.ErrStaleSnapshot) {
					return s.Reload()
				}
				return nil
			}
			s.loaded = true
			if hadSelection {
				s.follow(selected)
			}
			return nil
		})
	}
}

func (s *screen[I]) Reorder(itemID, direction int) tea.Cmd {
	if err := s.board.ValidateReorder(itemID, direction); err != nil {
		if errors.Is(err, dnd.ErrUnknownItem) {
			s.board.Notify(dnd.NotifyError, err.Error())
		}
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		err := s.board.Commands().Reorder(ctx, itemID, direction)
		return s.result(func() tea.Cmd {
			s.board.SettleReorder(err)
			if err != nil {
				return nil
			}
			// the new order only exists server side, the reload follows the cursor
			return s.Reload()
		})
	}
}

func (s *screen[I]) CreateItem(columnID int, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		item, err := s.board.Commands().CreateItem(ctx, columnID, models.ItemDraft{Title: title})
		return s.result(func() tea.Cmd {
			if s.board.SettleCreatedItem(item, err) == nil {
				s.follow(item.GetID())
			}
			return nil
		})
	}
}

func (s *screen[I]) RenameItem(itemID int, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		item, err := s.board.Commands().UpdateItem(ctx, itemID, models.ItemPatch{Title: &title})
		return s.result(func() tea.Cmd {
			_ = s.board.SettleUpdatedItem(item, err)
			return nil
		})
	}
}

func (s *screen[I]) DeleteItem(itemID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		err := s.board.Commands().DeleteItem(ctx, itemID)
		return s.result(func() tea.Cmd {
			_ = s.board.SettleDeletedItem(itemID, err)
			return nil
		})
	}
}

func (s *screen[I]) CreateColumn(name string) tea.Cmd {
	boardID := s.info.ID
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		col, err := s.board.Commands().CreateColumn(ctx, boardID, models.ColumnDraft{Name: name})
		return s.result(func() tea.Cmd {
			if s.board.SettleCreatedColumn(col, err) == nil {
				s.selection.SetColumn(s.board.Store().ColumnIndex(col.ID))
			}
			return nil
		})
	}
}

func (s *screen[I]) PromptDeleteColumn(columnID int) (dnd.ColumnDeletePrompt, error) {
	return s.board.PromptDeleteColumn(columnID)
}

func (s *screen[I]) DeleteColumn(columnID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		err := s.board.Commands().DeleteColumn(ctx, columnID)
		return s.result(func() tea.Cmd {
			_ = s.board.SettleDeletedColumn(columnID, err)
			return nil
		})
	}
}
