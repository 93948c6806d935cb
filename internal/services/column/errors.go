package column

import "errors"

// Column-related errors
var (
	// Validation errors
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrNameTooLong     = errors.New("name cannot exceed 50 characters")
	ErrInvalidColumnID = errors.New("invalid column ID")
	ErrInvalidBoardID  = errors.New("invalid board ID")

	// Business logic errors
	ErrColumnNotFound  = errors.New("no column matches")
	ErrAmbiguousColumn = errors.New("column name is ambiguous")
)
