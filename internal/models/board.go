package models

import "time"

// BoardKind distinguishes the project kanban from the sales pipeline.
type BoardKind string

const (
	BoardKindProject  BoardKind = "project"
	BoardKindPipeline BoardKind = "pipeline"
)

// Valid reports whether k is a known board kind.
func (k BoardKind) Valid() bool {
	return k == BoardKindProject || k == BoardKindPipeline
}

// Board is the top-level aggregate. It owns its columns for its lifetime.
type Board struct {
	ID          int
	Name        string
	Kind        BoardKind
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BoardAggregate is a board with its columns and the items of each column,
// exactly as returned by the data source. Callers sort before use.
type BoardAggregate[I any] struct {
	Board   *Board
	Columns []*Column
	Items   map[int][]I // keyed by column ID
}

// ItemDraft carries the fields of a new card or deal. Fields that do not
// apply to the item kind are ignored.
type ItemDraft struct {
	Title       string
	Description string
	PriorityID  int  // 0 means default
	AssigneeID  *int // owner for deals
	Company     string
	ValueCents  int64
}

// ItemPatch is a partial update. Nil fields are left unchanged.
type ItemPatch struct {
	Title       *string
	Description *string
	PriorityID  *int
	AssigneeID  *int
	Company     *string
	ValueCents  *int64
}

// ColumnDraft carries the fields of a new column.
type ColumnDraft struct {
	Name        string
	Color       string
	Description string
}
