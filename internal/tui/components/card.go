package components

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"github.com/thenoetrevino/embudo/internal/tui/theme"
)

// cardTextWidth is the room left for text inside a card's border and padding.
const cardTextWidth = CardWidth - 4

// CardProps is what a card needs to render, whatever the item kind.
type CardProps struct {
	ID    int
	Title string
	// Meta is the second line: priority for cards, company and value for deals.
	Meta     string
	Selected bool
	// Lifted marks the card being dragged; it stays in place, dimmed, until
	// the drop lands.
	Lifted bool
}

// RenderCard renders an item as a fixed size card
//
//	╭──────────────────────────╮
//	│ {Title}                  │
//	│ {Meta}                   │
//	╰──────────────────────────╯
func RenderCard(props CardProps) string {
	title := lipgloss.NewStyle().Bold(true).Render(truncate.StringWithTail(props.Title, cardTextWidth, "…"))
	meta := SubtleStyle.Render(truncate.StringWithTail(props.Meta, cardTextWidth, "…"))

	style := CardStyle
	switch {
	case props.Lifted:
		style = style.
			BorderForeground(lipgloss.Color(theme.Subtle)).
			Foreground(lipgloss.Color(theme.Subtle)).
			Faint(true)
	case props.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	return style.Render(title + "\n" + meta)
}

// RenderGhost renders the floating copy of a dragged card.
func RenderGhost(props CardProps) string {
	title := truncate.StringWithTail(props.Title, cardTextWidth, "…")
	meta := truncate.StringWithTail(props.Meta, cardTextWidth, "…")
	return CardStyle.
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(theme.DragGhost)).
		Foreground(lipgloss.Color(theme.DragGhost)).
		Render(title + "\n" + meta)
}
