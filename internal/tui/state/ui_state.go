package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keys are active and which overlay is drawn.
type Mode int

const (
	NormalMode              Mode = iota // Default navigation mode
	AddItemMode                         // Typing the title of a new card or deal
	EditItemMode                        // Retitling the selected item
	AddColumnMode                       // Typing the name of a new column
	DeleteItemConfirmMode               // Confirming item deletion
	DeleteColumnConfirmMode             // Confirming column deletion
	HelpMode                            // Displaying help screen
)

func (m Mode) String() string {
	switch m {
	case NormalMode:
		return "normal"
	case AddItemMode:
		return "add-item"
	case EditItemMode:
		return "edit-item"
	case AddColumnMode:
		return "add-column"
	case DeleteItemConfirmMode:
		return "delete-item"
	case DeleteColumnConfirmMode:
		return "delete-column"
	case HelpMode:
		return "help"
	default:
		return "unknown"
	}
}

// IsInput reports whether the mode owns a text input.
func (m Mode) IsInput() bool {
	return m == AddItemMode || m == EditItemMode || m == AddColumnMode
}

// UIState manages the terminal dimensions and the interaction mode.
type UIState struct {
	width  int
	height int
	mode   Mode
}

// NewUIState creates a new UIState in normal mode.
func NewUIState() *UIState {
	return &UIState{mode: NormalMode}
}

func (s *UIState) Mode() Mode        { return s.mode }
func (s *UIState) SetMode(mode Mode) { s.mode = mode }
func (s *UIState) Width() int        { return s.width }
func (s *UIState) Height() int       { return s.height }

// SetSize records the terminal size.
func (s *UIState) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Selection is the cursor of one board screen: the selected column and item
// indexes, the leftmost visible column and the per-column scroll offsets.
// Switching boards keeps each board's cursor.
type Selection struct {
	column         int
	item           int
	viewportOffset int
	// Key: columnID, Value: index of first visible item
	scrollOffsets map[int]int
}

// NewSelection creates a cursor on the first item of the first column.
func NewSelection() *Selection {
	return &Selection{scrollOffsets: make(map[int]int)}
}

func (s *Selection) Column() int         { return s.column }
func (s *Selection) Item() int           { return s.item }
func (s *Selection) ViewportOffset() int { return s.viewportOffset }

// SetColumn selects column index i and resets the item cursor.
func (s *Selection) SetColumn(i int) {
	if i != s.column {
		s.item = 0
	}
	s.column = i
}

// Set places the cursor on column col, item idx.
func (s *Selection) Set(col, idx int) {
	s.column = col
	s.item = idx
}

// SetItem selects item index i of the current column.
func (s *Selection) SetItem(i int) {
	s.item = i
}

// Clamp keeps the cursor inside a board with columnCount columns, where the
// selected column holds itemCount items.
func (s *Selection) Clamp(columnCount, itemCount int) {
	s.column = clamp(s.column, 0, columnCount-1)
	s.item = clamp(s.item, 0, itemCount-1)
}

// ScrollOffset returns the first visible item index of a column.
func (s *Selection) ScrollOffset(columnID int) int {
	return s.scrollOffsets[columnID]
}

// EnsureItemVisible scrolls columnID so the selected item is one of the
// visible rows.
func (s *Selection) EnsureItemVisible(columnID, visible int) {
	if visible < 1 {
		visible = 1
	}
	offset := s.scrollOffsets[columnID]
	switch {
	case s.item < offset:
		offset = s.item
	case s.item >= offset+visible:
		offset = s.item - visible + 1
	}
	s.scrollOffsets[columnID] = max(offset, 0)
}

// EnsureColumnVisible slides the viewport so the selected column is one of
// the size visible columns.
func (s *Selection) EnsureColumnVisible(size, columnCount int) {
	if size < 1 {
		size = 1
	}
	switch {
	case s.column < s.viewportOffset:
		s.viewportOffset = s.column
	case s.column >= s.viewportOffset+size:
		s.viewportOffset = s.column - size + 1
	}
	s.viewportOffset = clamp(s.viewportOffset, 0, max(columnCount-size, 0))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
