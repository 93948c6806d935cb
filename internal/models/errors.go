package models

import "errors"

// Domain-specific errors shared by the store, services and CLI
var (
	// ErrNotFound indicates the requested board, column or item does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyFirstColumn indicates an attempt to move left from the first column
	ErrAlreadyFirstColumn = errors.New("item is already in the first column")

	// ErrAlreadyLastColumn indicates an attempt to move right from the last column
	ErrAlreadyLastColumn = errors.New("item is already in the last column")

	// ErrAlreadyFirstItem indicates the item is already at the top of its column
	ErrAlreadyFirstItem = errors.New("item is already at the top of the column")

	// ErrAlreadyLastItem indicates the item is already at the bottom of its column
	ErrAlreadyLastItem = errors.New("item is already at the bottom of the column")
)
