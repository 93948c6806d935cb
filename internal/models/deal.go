package models

import (
	"fmt"
	"time"
)

// Deal is an opportunity moving through the stages of a pipeline board.
type Deal struct {
	ID         int
	ColumnID   int // stage
	Position   int
	Title      string
	Company    string
	ValueCents int64
	PriorityID int
	OwnerID    *int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (d Deal) GetID() int       { return d.ID }
func (d Deal) GetColumnID() int { return d.ColumnID }
func (d Deal) GetPosition() int { return d.Position }

// GetTitle includes the company so pipeline cards read "Renewal · Acme".
func (d Deal) GetTitle() string {
	if d.Company == "" {
		return d.Title
	}
	return d.Title + " · " + d.Company
}

// Placed returns a copy of the deal moved to stage columnID at position.
func (d Deal) Placed(columnID, position int) Deal {
	d.ColumnID = columnID
	d.Position = position
	return d
}

// FormatValue renders ValueCents as a dollar amount.
func (d Deal) FormatValue() string {
	return fmt.Sprintf("$%d.%02d", d.ValueCents/100, d.ValueCents%100)
}
