package theme

import "github.com/thenoetrevino/embudo/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Accent         string
	Create         string
	Delete         string
	ColumnBorder   string
	CardBorder     string
	SelectedBorder string
	DropTarget     string
	DragGhost      string
	Title          string
	Subtle         string
	Normal         string
	SuccessFg      string
	SuccessBg      string
	InfoFg         string
	InfoBg         string
	ErrorFg        string
	ErrorBg        string
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Accent = colors.Accent
	Create = colors.Create
	Delete = colors.Delete
	ColumnBorder = colors.ColumnBorder
	CardBorder = colors.CardBorder
	SelectedBorder = colors.SelectedBorder
	DropTarget = colors.DropTarget
	DragGhost = colors.DragGhost
	Title = colors.Title
	Subtle = colors.Subtle
	Normal = colors.Normal
	SuccessFg = colors.SuccessFg
	SuccessBg = colors.SuccessBg
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg
}
