package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"github.com/thenoetrevino/embudo/internal/tui/theme"
)

// ColumnProps describes one column of the board view.
type ColumnProps struct {
	Name  string
	Cards []CardProps
	// Selected is set on the column holding the cursor.
	Selected bool
	// DropTarget is set on the column under a dragged card.
	DropTarget bool
	// Height is the total box height, borders included.
	Height int
	// ScrollOffset is the index of the first visible card.
	ScrollOffset int
	// EmptyText replaces the card list when the column is empty.
	EmptyText string
}

// RenderColumn renders a column with its header and visible cards
//
// Layout:
//
//	{Column Name} ({count})
//	▲ n more (if scrolled down)
//	{Card 1}
//	{Card 2}
//	...
//	▼ n more (if more cards below)
func RenderColumn(props ColumnProps) string {
	header := fmt.Sprintf("%s (%d)", props.Name, len(props.Cards))
	lines := []string{TitleStyle.Render(truncate.StringWithTail(header, ColumnWidth-2, "…"))}

	visible := VisibleCards(props.Height)
	start := min(max(props.ScrollOffset, 0), len(props.Cards))
	end := min(start+visible, len(props.Cards))

	if start > 0 {
		lines = append(lines, IndicatorStyle.Render(fmt.Sprintf("▲ %d more", start)))
	} else {
		lines = append(lines, "")
	}

	if len(props.Cards) == 0 {
		empty := props.EmptyText
		if empty == "" {
			empty = "Empty"
		}
		lines = append(lines, SubtleStyle.Italic(true).Render(empty))
	}
	for _, card := range props.Cards[start:end] {
		lines = append(lines, RenderCard(card))
	}

	content := strings.Join(lines, "\n")

	if props.Height > 0 {
		// content rows between the borders, the last one is the bottom indicator
		used := lipgloss.Height(content)
		if filler := props.Height - 2 - 1 - used; filler > 0 {
			content += strings.Repeat("\n", filler)
		}
		bottom := ""
		if end < len(props.Cards) {
			bottom = IndicatorStyle.Render(fmt.Sprintf("▼ %d more", len(props.Cards)-end))
		}
		content += "\n" + bottom
	}

	style := ColumnStyle
	switch {
	case props.DropTarget:
		style = style.BorderForeground(lipgloss.Color(theme.DropTarget))
	case props.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if props.Height > 0 {
		style = style.Height(props.Height)
	}
	return style.Render(content)
}

// RenderBoard joins rendered columns left to right.
func RenderBoard(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}
