package cli

import (
	"fmt"

	"github.com/thenoetrevino/embudo/internal/models"
)

// CardLine renders a card on one line: "#12 Fix login [high]".
func CardLine(c models.Card) string {
	return fmt.Sprintf("#%d %s [%s]", c.ID, c.Title, PriorityName(c.PriorityID))
}

// DealLine renders a deal on one line: "#7 Renewal · Acme $1200.00".
func DealLine(d models.Deal) string {
	line := fmt.Sprintf("#%d %s", d.ID, d.GetTitle())
	if d.ValueCents > 0 {
		line += " " + d.FormatValue()
	}
	return line
}
