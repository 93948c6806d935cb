package dnd

import (
	"context"

	"github.com/thenoetrevino/embudo/internal/models"
)

// BoardFetcher loads the canonical board aggregate. Ordering of columns and
// items in the result is not guaranteed.
type BoardFetcher[I any] interface {
	FetchBoard(ctx context.Context, boardID int) (*models.BoardAggregate[I], error)
}

// MoveCommand persists a cross-column move. Any timeout belongs to the
// transport, the engine never cancels a dispatched move.
type MoveCommand interface {
	Move(ctx context.Context, itemID, targetColumnID, newPosition int) error
}

// ReorderCommand swaps an item with its neighbour inside its column.
// direction is -1 for up and +1 for down.
type ReorderCommand interface {
	Reorder(ctx context.Context, itemID, direction int) error
}

// ItemCommands creates, edits and deletes items. None of them is applied
// optimistically.
type ItemCommands[I any] interface {
	CreateItem(ctx context.Context, columnID int, draft models.ItemDraft) (I, error)
	UpdateItem(ctx context.Context, itemID int, patch models.ItemPatch) (I, error)
	DeleteItem(ctx context.Context, itemID int) error
}

// ColumnCommands creates and deletes columns.
type ColumnCommands interface {
	CreateColumn(ctx context.Context, boardID int, draft models.ColumnDraft) (*models.Column, error)
	DeleteColumn(ctx context.Context, columnID int) error
}

// Commands is everything a board screen needs from the outside world,
// injected once when the screen is built.
type Commands[I any] interface {
	BoardFetcher[I]
	MoveCommand
	ReorderCommand
	ItemCommands[I]
	ColumnCommands
}
