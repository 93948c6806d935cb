package components

// Board geometry. The mouse hit test in the tui package relies on these
// numbers matching what RenderColumn and RenderCard draw.
const (
	// ColumnWidth is a column's width inside its border, padding included.
	ColumnWidth = 30
	// ColumnGap separates neighbouring columns.
	ColumnGap = 1
	// ColumnOuterWidth is the horizontal stride from one column to the next.
	ColumnOuterWidth = ColumnWidth + 2 + ColumnGap

	// ColumnHeaderLines: top border, header, scroll indicator.
	ColumnHeaderLines = 3
	// ColumnFooterLines: bottom indicator, bottom border.
	ColumnFooterLines = 2

	// CardWidth is a card's outer width, border included.
	CardWidth = ColumnWidth - 2
	// CardHeight is a card's outer height: border, title, meta line.
	CardHeight = 4

	// TabsHeight is the height of the tab bar above the board.
	TabsHeight = 3
)

// VisibleCards returns how many cards fit in a column of the given outer
// height.
func VisibleCards(height int) int {
	return max((height-ColumnHeaderLines-ColumnFooterLines)/CardHeight, 1)
}
