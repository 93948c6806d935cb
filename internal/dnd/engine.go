package dnd

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// RollbackStrategy decides how a failed move is undone locally.
type RollbackStrategy int

const (
	// RollbackCompensate applies the inverse of the failed move only, and
	// falls back to a reload when the inverse no longer applies.
	RollbackCompensate RollbackStrategy = iota
	// RollbackReload discards the whole board and fetches it again.
	RollbackReload
)

// ParseRollbackStrategy maps a config value to a strategy.
func ParseRollbackStrategy(s string) (RollbackStrategy, error) {
	switch s {
	case "", "compensate":
		return RollbackCompensate, nil
	case "reload":
		return RollbackReload, nil
	default:
		return RollbackCompensate, fmt.Errorf("unknown rollback strategy %q", s)
	}
}

func (r RollbackStrategy) String() string {
	if r == RollbackReload {
		return "reload"
	}
	return "compensate"
}

// Outcome is what Settle did with a finished move.
type Outcome int

const (
	// OutcomeCommitted: the server accepted the move, local state stands.
	OutcomeCommitted Outcome = iota
	// OutcomeCompensated: the move failed and its inverse was applied.
	OutcomeCompensated
	// OutcomeNeedsReload: local state cannot be trusted, fetch the board.
	OutcomeNeedsReload
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeCompensated:
		return "compensated"
	default:
		return "needs_reload"
	}
}

// Engine applies drops to the store optimistically and reconciles them with
// the outcome of the remote move command.
type Engine[I Item[I]] struct {
	store    *Store[I]
	mover    MoveCommand
	notifier Notifier
	pending  *pendingLog
	rollback RollbackStrategy
	newOpID  func() string
	logger   *slog.Logger

	// writes counts data source writes confirmed on the loop. Fetch reads it
	// from other goroutines.
	writes atomic.Uint64
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	rollback RollbackStrategy
	newOpID  func() string
	logger   *slog.Logger
}

// WithRollback selects the rollback strategy.
func WithRollback(r RollbackStrategy) EngineOption {
	return func(cfg *engineConfig) {
		cfg.rollback = r
	}
}

// WithOpIDs replaces the operation ID generator, mostly for tests.
func WithOpIDs(fn func() string) EngineOption {
	return func(cfg *engineConfig) {
		cfg.newOpID = fn
	}
}

// WithEngineLogger sets the logger used for move diagnostics.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(cfg *engineConfig) {
		cfg.logger = logger
	}
}

// NewEngine creates an engine bound to store.
func NewEngine[I Item[I]](store *Store[I], mover MoveCommand, notifier Notifier, opts ...EngineOption) *Engine[I] {
	cfg := engineConfig{
		rollback: RollbackCompensate,
		newOpID:  uuid.NewString,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &Engine[I]{
		store:    store,
		mover:    mover,
		notifier: notifier,
		pending:  newPendingLog(),
		rollback: cfg.rollback,
		newOpID:  cfg.newOpID,
		logger:   cfg.logger,
	}
}

// Store returns the store the engine mutates.
func (e *Engine[I]) Store() *Store[I] {
	return e.store
}

// Pending returns the moves still awaiting confirmation, oldest first.
func (e *Engine[I]) Pending() []*PendingMove {
	return e.pending.list()
}

// Writes returns how many writes have been confirmed so far. Safe to call
// from any goroutine.
func (e *Engine[I]) Writes() uint64 {
	return e.writes.Load()
}

func (e *Engine[I]) recordWrite() {
	e.writes.Add(1)
}

// ResolveColumn maps a drop target to the column it lands in.
func (e *Engine[I]) ResolveColumn(t Target) (int, error) {
	switch t.Kind {
	case TargetColumn:
		if _, ok := e.store.Column(t.ID); ok {
			return t.ID, nil
		}
	case TargetItem:
		if item, ok := e.store.Item(t.ID); ok {
			return item.GetColumnID(), nil
		}
	}
	return 0, ErrUnknownTarget
}

// Drop applies a completed drag to the store in a single step and returns
// the move to dispatch. A drop onto the item's own column is a no-op and
// returns nil with no error.
func (e *Engine[I]) Drop(end DragEnd) (*PendingMove, error) {
	item, ok := e.store.Item(end.ActiveID)
	if !ok {
		return nil, ErrUnknownItem
	}
	targetColumnID, err := e.ResolveColumn(end.Target)
	if err != nil {
		return nil, err
	}
	sourceColumnID := item.GetColumnID()
	if targetColumnID == sourceColumnID {
		return nil, nil
	}

	newPosition := e.store.Count(targetColumnID)
	to := Placement{ColumnID: targetColumnID, Position: newPosition}
	from, err := e.store.place(item.GetID(), to)
	if err != nil {
		return nil, err
	}

	target, _ := e.store.Column(targetColumnID)
	op := &PendingMove{
		OpID:     e.newOpID(),
		ItemID:   item.GetID(),
		Title:    item.GetTitle(),
		From:     from,
		To:       to,
		ToColumn: target.Name,
		Epoch:    e.store.Epoch(),
	}
	if board := e.store.Board(); board != nil {
		op.BoardID = board.ID
	}
	e.pending.add(op)

	e.logger.Debug("optimistic move applied",
		"op_id", op.OpID,
		"item_id", op.ItemID,
		"from_column", from.ColumnID,
		"to_column", to.ColumnID,
		"position", to.Position)

	// reported before the server answers, a later failure gets its own notice
	e.notifier.Notify(Notification{
		Kind:    NotifySuccess,
		Message: fmt.Sprintf("Moved %q to %s", op.Title, op.ToColumn),
	})

	return op, nil
}

// Commit runs the remote move command. It never reads or writes the store,
// so it may run off the UI goroutine.
func (e *Engine[I]) Commit(ctx context.Context, op *PendingMove) error {
	if err := e.mover.Move(ctx, op.ItemID, op.To.ColumnID, op.To.Position); err != nil {
		return fmt.Errorf("move item %d to column %d: %w", op.ItemID, op.To.ColumnID, err)
	}
	return nil
}

// Settle records the result of Commit. It must run on the goroutine that
// owns the store.
func (e *Engine[I]) Settle(op *PendingMove, moveErr error) Outcome {
	laterMove := e.pending.laterMoveOf(op.OpID, op.ItemID)
	e.pending.remove(op.OpID)
	superseded := op.Epoch != e.store.Epoch()

	if moveErr == nil {
		e.recordWrite()
		if superseded {
			// the optimistic state was thrown away by a reload that may
			// have raced this commit
			e.logger.Debug("committed move was superseded by a reload", "op_id", op.OpID)
			return OutcomeNeedsReload
		}
		return OutcomeCommitted
	}

	e.logger.Error("remote move failed",
		"op_id", op.OpID,
		"item_id", op.ItemID,
		"to_column", op.To.ColumnID,
		"error", moveErr)

	if e.rollback == RollbackCompensate && !superseded && !laterMove && e.compensate(op) {
		e.notifier.Notify(Notification{
			Kind:    NotifyError,
			Message: fmt.Sprintf("Failed to move %q to %s, restored", op.Title, op.ToColumn),
		})
		return OutcomeCompensated
	}

	e.notifier.Notify(Notification{
		Kind:    NotifyError,
		Message: fmt.Sprintf("Failed to move %q to %s, reloading board", op.Title, op.ToColumn),
	})
	return OutcomeNeedsReload
}

// compensate moves the item back if it still sits where the failed move
// put it.
func (e *Engine[I]) compensate(op *PendingMove) bool {
	item, ok := e.store.Item(op.ItemID)
	if !ok {
		return false
	}
	if item.GetColumnID() != op.To.ColumnID || item.GetPosition() != op.To.Position {
		return false
	}
	if _, ok := e.store.Column(op.From.ColumnID); !ok {
		return false
	}
	if _, err := e.store.place(op.ItemID, op.From); err != nil {
		e.logger.Warn("compensation failed", "op_id", op.OpID, "error", err)
		return false
	}
	return true
}
