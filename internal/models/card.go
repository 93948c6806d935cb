package models

import "time"

// Card is a unit of work on a project board.
type Card struct {
	ID          int
	ColumnID    int
	Position    int
	Title       string
	Description string
	PriorityID  int
	AssigneeID  *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c Card) GetID() int       { return c.ID }
func (c Card) GetColumnID() int { return c.ColumnID }
func (c Card) GetPosition() int { return c.Position }
func (c Card) GetTitle() string { return c.Title }

// Placed returns a copy of the card moved to columnID at position.
func (c Card) Placed(columnID, position int) Card {
	c.ColumnID = columnID
	c.Position = position
	return c
}
