package database

import "errors"

var (
	// ErrWrongBoardKind is returned when a card is put on a pipeline board or
	// a deal on a project board.
	ErrWrongBoardKind = errors.New("column belongs to a board of another kind")

	// ErrCrossBoardMove is returned when a move targets a column of another board.
	ErrCrossBoardMove = errors.New("target column is on another board")
)
