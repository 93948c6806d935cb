package item

import "errors"

// Item-related errors
var (
	// Validation errors
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrTitleTooLong     = errors.New("title cannot exceed 255 characters")
	ErrInvalidItemID    = errors.New("invalid item ID")
	ErrInvalidColumnID  = errors.New("invalid column ID")
	ErrInvalidBoardID   = errors.New("invalid board ID")
	ErrInvalidPriority  = errors.New("invalid priority ID")
	ErrInvalidPosition  = errors.New("invalid position: must be >= 0")
	ErrInvalidDirection = errors.New("direction must be -1 or 1")
	ErrNegativeValue    = errors.New("deal value cannot be negative")
)
