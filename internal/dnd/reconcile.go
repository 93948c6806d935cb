package dnd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/embudo/internal/models"
)

// Reconciler replaces local board state with the canonical board from the
// data source. Fetch may run off the UI goroutine, Apply may not.
type Reconciler[I Item[I]] struct {
	store   *Store[I]
	fetcher BoardFetcher[I]
	logger  *slog.Logger
}

// NewReconciler creates a reconciler for store.
func NewReconciler[I Item[I]](store *Store[I], fetcher BoardFetcher[I], logger *slog.Logger) *Reconciler[I] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler[I]{store: store, fetcher: fetcher, logger: logger}
}

// Fetch loads the canonical aggregate for boardID.
func (r *Reconciler[I]) Fetch(ctx context.Context, boardID int) (*models.BoardAggregate[I], error) {
	agg, err := r.fetcher.FetchBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("fetch board %d: %w", boardID, err)
	}
	if agg == nil || agg.Board == nil {
		return nil, fmt.Errorf("fetch board %d: %w", boardID, models.ErrNotFound)
	}
	return agg, nil
}

// Snapshot is a fetched board together with the engine write count read
// before the fetch started.
type Snapshot[I Item[I]] struct {
	Aggregate *models.BoardAggregate[I]
	writes    uint64
}

// Apply swaps the store contents for agg. Every move still pending against
// the previous snapshot is superseded.
func (r *Reconciler[I]) Apply(agg *models.BoardAggregate[I]) {
	r.store.Load(agg)
	r.logger.Debug("board reloaded",
		"board_id", agg.Board.ID,
		"columns", r.store.ColumnCount(),
		"epoch", r.store.Epoch())
}

// Reload fetches and applies in one call. On error the store is untouched.
func (r *Reconciler[I]) Reload(ctx context.Context, boardID int) error {
	agg, err := r.Fetch(ctx, boardID)
	if err != nil {
		r.logger.Error("board reload failed", "board_id", boardID, "error", err)
		return err
	}
	r.Apply(agg)
	return nil
}
