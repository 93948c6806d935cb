package database

import (
	"context"

	"github.com/thenoetrevino/embudo/internal/models"
)

// BoardRepository is the board half of the data store.
type BoardRepository interface {
	CreateBoard(ctx context.Context, name string, kind models.BoardKind, description string) (*models.Board, error)
	GetAllBoards(ctx context.Context) ([]*models.Board, error)
	GetBoardByID(ctx context.Context, id int) (*models.Board, error)
	GetBoardByName(ctx context.Context, name string) (*models.Board, error)
	DeleteBoard(ctx context.Context, id int) error
}

// ColumnRepository covers column lifecycle within a board.
type ColumnRepository interface {
	CreateColumn(ctx context.Context, boardID int, draft models.ColumnDraft) (*models.Column, error)
	GetColumnsByBoard(ctx context.Context, boardID int) ([]*models.Column, error)
	GetColumnByID(ctx context.Context, id int) (*models.Column, error)
	RenameColumn(ctx context.Context, id int, name string) error
	CountColumnItems(ctx context.Context, id int) (int, error)
	DeleteColumn(ctx context.Context, id int) error
}

// ItemRepository stores the items of one board kind.
type ItemRepository[I any] interface {
	Kind() models.BoardKind
	FetchBoard(ctx context.Context, boardID int) (*models.BoardAggregate[I], error)
	GetByID(ctx context.Context, id int) (I, error)
	GetByColumn(ctx context.Context, columnID int) ([]I, error)
	Count(ctx context.Context, columnID int) (int, error)
	BoardOf(ctx context.Context, id int) (int, error)
	Create(ctx context.Context, columnID int, draft models.ItemDraft) (I, error)
	Update(ctx context.Context, id int, patch models.ItemPatch) (I, error)
	Move(ctx context.Context, id, columnID, position int) error
	Reorder(ctx context.Context, id, direction int) error
	Delete(ctx context.Context, id int) error
}

// DataStore defines the unified interface for all data operations.
// Consumers can depend on the smaller interfaces for clearer dependencies.
type DataStore interface {
	BoardRepository
	ColumnRepository
	Cards() ItemRepository[models.Card]
	Deals() ItemRepository[models.Deal]
}

var _ DataStore = (*Repository)(nil)
