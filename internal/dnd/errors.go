package dnd

import "errors"

var (
	// ErrGestureCancelled is returned for a release outside any droppable region.
	// It is not a failure and is never surfaced to the user.
	ErrGestureCancelled = errors.New("drag cancelled")

	ErrUnknownItem   = errors.New("item is not on this board")
	ErrUnknownColumn = errors.New("column is not on this board")
	ErrUnknownTarget = errors.New("drop target is not on this board")

	// ErrStaleSnapshot is returned by SettleReload when a write was confirmed
	// after the snapshot's fetch started. The snapshot is dropped and the
	// caller fetches again.
	ErrStaleSnapshot = errors.New("board snapshot predates a confirmed write")

	// ErrNoBoard is returned by operations that need a loaded board.
	ErrNoBoard = errors.New("no board loaded")
)
