package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",
		Create: "#FFFFFF",
		Delete: "#FFFFFF",

		ColumnBorder:   "#FFFFFF",
		CardBorder:     "#585858",
		SelectedBorder: "#FFFFFF",
		DropTarget:     "#D0D0D0",
		DragGhost:      "#FFFFFF",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		SuccessFg: "#FFFFFF",
		SuccessBg: "#3A3A3A",
		InfoFg:    "#FFFFFF",
		InfoBg:    "#1C1C1C",
		ErrorFg:   "#FFFFFF",
		ErrorBg:   "#585858",
	}
}
