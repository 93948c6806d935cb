package models

// Priority represents a card or deal priority level
type Priority struct {
	ID          int
	Description string
	Color       string
}
