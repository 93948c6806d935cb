// Package dnd implements drag-and-drop reordering for board columns: gesture
// tracking, a normalized container store, optimistic moves with a pending
// operations log, and reconciliation against the canonical board.
package dnd

// Item is anything a column can hold. Placed must return a copy, the store
// never hands out values callers can mutate in place.
type Item[I any] interface {
	GetID() int
	GetColumnID() int
	GetPosition() int
	GetTitle() string
	Placed(columnID, position int) I
}

// TargetKind says what a drop target identifier refers to.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetColumn
	TargetItem
)

// Target is the container or sibling item under the pointer.
type Target struct {
	Kind TargetKind
	ID   int
}

// ColumnTarget returns a target naming a column directly.
func ColumnTarget(columnID int) Target {
	return Target{Kind: TargetColumn, ID: columnID}
}

// ItemTarget returns a target naming a sibling item.
func ItemTarget(itemID int) Target {
	return Target{Kind: TargetItem, ID: itemID}
}

// Valid reports whether the target names something droppable.
func (t Target) Valid() bool {
	return t.Kind != TargetNone && t.ID > 0
}

// Placement is the column and position of an item at some instant.
type Placement struct {
	ColumnID int
	Position int
}
