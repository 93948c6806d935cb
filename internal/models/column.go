package models

// Column is an ordered container of items within a board.
// On a pipeline board a column is a sales stage.
type Column struct {
	ID          int
	BoardID     int
	Name        string
	Position    int // display order among sibling columns, gaps allowed
	Color       string
	Description string
}
