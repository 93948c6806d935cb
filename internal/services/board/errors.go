package board

import "errors"

// Domain errors for board service
var (
	// Validation errors
	ErrEmptyName      = errors.New("board name cannot be empty")
	ErrNameTooLong    = errors.New("board name cannot exceed 100 characters")
	ErrInvalidBoardID = errors.New("invalid board ID")
	ErrInvalidKind    = errors.New("board kind must be project or pipeline")
)
