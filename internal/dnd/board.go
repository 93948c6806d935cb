package dnd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/embudo/internal/models"
)

// Board wires the gesture controller, store, engine and reconciler of one
// board screen to the commands injected when the screen is built.
//
// Methods that take a context call out to the data source and may run on any
// goroutine. Everything else, including the Settle* methods that fold a
// command result back into local state, must run on the goroutine that owns
// the store.
type Board[I Item[I]] struct {
	store      *Store[I]
	gesture    *Gesture
	engine     *Engine[I]
	reconciler *Reconciler[I]
	commands   Commands[I]
	notifier   Notifier
	logger     *slog.Logger
}

// BoardConfig holds the tunables of a board screen.
type BoardConfig struct {
	Gesture  GestureConfig
	Rollback RollbackStrategy
	Logger   *slog.Logger

	// OpIDs overrides the pending operation ID generator.
	OpIDs func() string
}

// NewBoard builds an empty board screen. Call Load or Apply before use.
func NewBoard[I Item[I]](commands Commands[I], notifier Notifier, cfg BoardConfig) *Board[I] {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := []EngineOption{WithRollback(cfg.Rollback), WithEngineLogger(logger)}
	if cfg.OpIDs != nil {
		opts = append(opts, WithOpIDs(cfg.OpIDs))
	}

	store := NewStore[I]()
	return &Board[I]{
		store:      store,
		gesture:    NewGesture(cfg.Gesture),
		engine:     NewEngine(store, commands, notifier, opts...),
		reconciler: NewReconciler(store, commands, logger),
		commands:   commands,
		notifier:   notifier,
		logger:     logger,
	}
}

// Store returns the board's container model.
func (b *Board[I]) Store() *Store[I] { return b.store }

// Gesture returns the pointer gesture controller.
func (b *Board[I]) Gesture() *Gesture { return b.gesture }

// Engine returns the optimistic move engine.
func (b *Board[I]) Engine() *Engine[I] { return b.engine }

// Reconciler returns the reload handler.
func (b *Board[I]) Reconciler() *Reconciler[I] { return b.reconciler }

// Commands returns the injected data source commands.
func (b *Board[I]) Commands() Commands[I] { return b.commands }

// Pending returns moves awaiting confirmation.
func (b *Board[I]) Pending() []*PendingMove { return b.engine.Pending() }

// Notify sends a notification through the board's sink.
func (b *Board[I]) Notify(kind NotificationKind, msg string) {
	b.notifier.Notify(Notification{Kind: kind, Message: msg})
}

// BoardID returns the loaded board's ID, or 0 before the first load.
func (b *Board[I]) BoardID() int {
	if board := b.store.Board(); board != nil {
		return board.ID
	}
	return 0
}

// Load fetches and applies the board synchronously.
func (b *Board[I]) Load(ctx context.Context, boardID int) error {
	return b.reconciler.Reload(ctx, boardID)
}

// Fetch loads the canonical board for an asynchronous reload. It may run on
// any goroutine; hand the result to SettleReload on the loop.
func (b *Board[I]) Fetch(ctx context.Context, boardID int) (*Snapshot[I], error) {
	writes := b.engine.Writes()
	agg, err := b.reconciler.Fetch(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return &Snapshot[I]{Aggregate: agg, writes: writes}, nil
}

// SettleReload folds the result of Fetch. A snapshot whose fetch started
// before a write was confirmed may not hold that write; it is dropped with
// ErrStaleSnapshot and the caller fetches again.
func (b *Board[I]) SettleReload(snap *Snapshot[I], err error) error {
	if err != nil {
		b.Notify(NotifyError, fmt.Sprintf("Failed to load board: %v", err))
		return err
	}
	if snap.writes != b.engine.Writes() {
		b.logger.Debug("dropping board snapshot older than a confirmed write",
			"board_id", snap.Aggregate.Board.ID,
			"snapshot_writes", snap.writes,
			"writes", b.engine.Writes())
		return ErrStaleSnapshot
	}
	b.reconciler.Apply(snap.Aggregate)
	return nil
}

// ============================================================================
// Pointer gestures
// ============================================================================

// PointerDown arms a drag for itemID. Unknown items are ignored.
func (b *Board[I]) PointerDown(itemID int, p Point, at time.Time) bool {
	if _, ok := b.store.Item(itemID); !ok {
		return false
	}
	b.gesture.Down(itemID, p, at)
	return true
}

// PointerMove feeds a motion event and reports whether a drag is active.
func (b *Board[I]) PointerMove(p Point, at time.Time, target Target) bool {
	return b.gesture.Move(p, at, target)
}

// PointerUp ends the session. A completed drop is applied to the store and
// returned for dispatch. A click or a release outside any target returns
// ErrGestureCancelled, which callers treat as inert. A drop onto the item's
// own column returns nil, nil.
func (b *Board[I]) PointerUp(p Point, at time.Time, target Target) (*PendingMove, error) {
	end, ok := b.gesture.Up(p, at, target)
	b.gesture.Reset()
	if !ok {
		return nil, ErrGestureCancelled
	}
	return b.engine.Drop(end)
}

// CancelDrag aborts the current gesture.
func (b *Board[I]) CancelDrag() {
	b.gesture.Cancel()
	b.gesture.Reset()
}

// ============================================================================
// Moves
// ============================================================================

// MoveToNeighbour moves an item one column left (delta < 0) or right
// (delta > 0) through the same path as a drop.
func (b *Board[I]) MoveToNeighbour(itemID, delta int) (*PendingMove, error) {
	item, ok := b.store.Item(itemID)
	if !ok {
		return nil, ErrUnknownItem
	}
	idx := b.store.ColumnIndex(item.GetColumnID())
	next, ok := b.store.ColumnAt(idx + delta)
	if !ok {
		if delta < 0 {
			return nil, models.ErrAlreadyFirstColumn
		}
		return nil, models.ErrAlreadyLastColumn
	}
	return b.engine.Drop(DragEnd{ActiveID: itemID, Target: ColumnTarget(next.ID)})
}

// Commit dispatches a pending move to the data source.
func (b *Board[I]) Commit(ctx context.Context, op *PendingMove) error {
	return b.engine.Commit(ctx, op)
}

// Settle folds a move result back into local state.
func (b *Board[I]) Settle(op *PendingMove, err error) Outcome {
	return b.engine.Settle(op, err)
}

// MoveSync drops, commits and settles in one call, reloading when the
// outcome asks for it. A same-column drop returns a nil op.
func (b *Board[I]) MoveSync(ctx context.Context, end DragEnd) (*PendingMove, Outcome, error) {
	op, err := b.engine.Drop(end)
	if err != nil || op == nil {
		return op, OutcomeCommitted, err
	}
	outcome := b.engine.Settle(op, b.engine.Commit(ctx, op))
	if outcome == OutcomeNeedsReload {
		if err := b.reconciler.Reload(ctx, op.BoardID); err != nil {
			return op, outcome, err
		}
	}
	return op, outcome, nil
}

// ValidateReorder checks that itemID has a neighbour in direction
// (-1 up, +1 down).
func (b *Board[I]) ValidateReorder(itemID, direction int) error {
	item, ok := b.store.Item(itemID)
	if !ok {
		return ErrUnknownItem
	}
	idx := b.store.IndexOf(itemID)
	count := b.store.Count(item.GetColumnID())
	switch {
	case direction < 0 && idx <= 0:
		return models.ErrAlreadyFirstItem
	case direction > 0 && idx >= count-1:
		return models.ErrAlreadyLastItem
	}
	return nil
}

// SettleReorder reports a reorder result. The caller reloads on success
// since the data source may have renumbered both neighbours.
func (b *Board[I]) SettleReorder(err error) {
	if err != nil {
		b.Notify(NotifyError, fmt.Sprintf("Failed to reorder: %v", err))
		return
	}
	b.engine.recordWrite()
}

// ============================================================================
// Item commands
// ============================================================================

// CreateItem runs the create command and applies the result.
func (b *Board[I]) CreateItem(ctx context.Context, columnID int, draft models.ItemDraft) (I, error) {
	item, err := b.commands.CreateItem(ctx, columnID, draft)
	return item, b.SettleCreatedItem(item, err)
}

// SettleCreatedItem inserts a confirmed item. On failure the store is left
// as it was.
func (b *Board[I]) SettleCreatedItem(item I, err error) error {
	if err != nil {
		b.logger.Error("create item failed", "error", err)
		b.Notify(NotifyError, fmt.Sprintf("Failed to create %s: %v", b.noun(1), err))
		return err
	}
	b.engine.recordWrite()
	if err := b.store.InsertItem(item); err != nil {
		// the column vanished locally, the next reload picks the item up
		b.logger.Warn("created item has no local column", "item_id", item.GetID(), "error", err)
	}
	b.Notify(NotifySuccess, fmt.Sprintf("Created %q", item.GetTitle()))
	return nil
}

// UpdateItem runs the update command and applies the result.
func (b *Board[I]) UpdateItem(ctx context.Context, itemID int, patch models.ItemPatch) (I, error) {
	item, err := b.commands.UpdateItem(ctx, itemID, patch)
	return item, b.SettleUpdatedItem(item, err)
}

// SettleUpdatedItem replaces the local copy of an edited item.
func (b *Board[I]) SettleUpdatedItem(item I, err error) error {
	if err != nil {
		b.logger.Error("update item failed", "error", err)
		b.Notify(NotifyError, fmt.Sprintf("Failed to update %s: %v", b.noun(1), err))
		return err
	}
	b.engine.recordWrite()
	if err := b.store.InsertItem(item); err != nil {
		b.logger.Warn("updated item has no local column", "item_id", item.GetID(), "error", err)
	}
	b.Notify(NotifySuccess, fmt.Sprintf("Updated %q", item.GetTitle()))
	return nil
}

// DeleteItem runs the delete command and applies the result.
func (b *Board[I]) DeleteItem(ctx context.Context, itemID int) error {
	return b.SettleDeletedItem(itemID, b.commands.DeleteItem(ctx, itemID))
}

// SettleDeletedItem removes a deleted item. Siblings keep their positions.
func (b *Board[I]) SettleDeletedItem(itemID int, err error) error {
	title := b.noun(1)
	if item, ok := b.store.Item(itemID); ok {
		title = fmt.Sprintf("%q", item.GetTitle())
	}
	if err != nil {
		b.logger.Error("delete item failed", "item_id", itemID, "error", err)
		b.Notify(NotifyError, fmt.Sprintf("Failed to delete %s: %v", title, err))
		return err
	}
	b.engine.recordWrite()
	b.store.RemoveItem(itemID)
	b.Notify(NotifySuccess, fmt.Sprintf("Deleted %s", title))
	return nil
}

// ============================================================================
// Column commands
// ============================================================================

// CreateColumn runs the create command and applies the result.
func (b *Board[I]) CreateColumn(ctx context.Context, draft models.ColumnDraft) (*models.Column, error) {
	if b.store.Board() == nil {
		return nil, ErrNoBoard
	}
	col, err := b.commands.CreateColumn(ctx, b.BoardID(), draft)
	return col, b.SettleCreatedColumn(col, err)
}

// SettleCreatedColumn appends a confirmed column.
func (b *Board[I]) SettleCreatedColumn(col *models.Column, err error) error {
	if err != nil {
		b.logger.Error("create column failed", "error", err)
		b.Notify(NotifyError, fmt.Sprintf("Failed to create column: %v", err))
		return err
	}
	b.engine.recordWrite()
	b.store.InsertColumn(col)
	b.Notify(NotifySuccess, fmt.Sprintf("Created column %q", col.Name))
	return nil
}

// ColumnDeletePrompt is the confirmation shown before a column is deleted.
// Blocking only changes the copy: confirming always runs the same command.
type ColumnDeletePrompt struct {
	ColumnID  int
	Name      string
	ItemCount int
	Blocking  bool
	Title     string
	Message   string
}

// PromptDeleteColumn builds the confirmation for deleting columnID.
func (b *Board[I]) PromptDeleteColumn(columnID int) (ColumnDeletePrompt, error) {
	col, ok := b.store.Column(columnID)
	if !ok {
		return ColumnDeletePrompt{}, ErrUnknownColumn
	}
	count := b.store.Count(columnID)
	return NewColumnDeletePrompt(col.ID, col.Name, count, b.noun(count)), nil
}

// NewColumnDeletePrompt builds the copy for deleting a column that holds
// count items, described by plural noun.
func NewColumnDeletePrompt(columnID int, name string, count int, noun string) ColumnDeletePrompt {
	p := ColumnDeletePrompt{
		ColumnID:  columnID,
		Name:      name,
		ItemCount: count,
		Blocking:  count > 0,
		Title:     fmt.Sprintf("Delete column %q?", name),
	}
	if p.Blocking {
		p.Message = fmt.Sprintf("Column %q still holds %d %s. They will be deleted too.", name, count, noun)
	} else {
		p.Message = "The column is empty."
	}
	return p
}

// DeleteColumn runs the delete command and applies the result. Callers show
// a ColumnDeletePrompt first.
func (b *Board[I]) DeleteColumn(ctx context.Context, columnID int) error {
	return b.SettleDeletedColumn(columnID, b.commands.DeleteColumn(ctx, columnID))
}

// SettleDeletedColumn drops a deleted column and its items.
func (b *Board[I]) SettleDeletedColumn(columnID int, err error) error {
	name := "column"
	if col, ok := b.store.Column(columnID); ok {
		name = fmt.Sprintf("column %q", col.Name)
	}
	if err != nil {
		b.logger.Error("delete column failed", "column_id", columnID, "error", err)
		b.Notify(NotifyError, fmt.Sprintf("Failed to delete %s: %v", name, err))
		return err
	}
	b.engine.recordWrite()
	b.store.RemoveColumn(columnID)
	b.Notify(NotifySuccess, fmt.Sprintf("Deleted %s", name))
	return nil
}

// IsInert reports whether err is a gesture outcome that must not reach the
// user.
func IsInert(err error) bool {
	return errors.Is(err, ErrGestureCancelled)
}

func (b *Board[I]) noun(n int) string {
	kind := models.BoardKind("")
	if board := b.store.Board(); board != nil {
		kind = board.Kind
	}
	return ItemNoun(kind, n)
}

// ItemNoun names the items of a board kind.
func ItemNoun(kind models.BoardKind, n int) string {
	noun := "item"
	switch kind {
	case models.BoardKindProject:
		noun = "card"
	case models.BoardKindPipeline:
		noun = "deal"
	}
	if n != 1 {
		noun += "s"
	}
	return noun
}
