package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#874BFD",

		// Semantic
		Create: "#5FD75F",
		Delete: "#FF0000",

		// Board
		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DropTarget:     "#5FD75F",
		DragGhost:      "#874BFD",

		// Text
		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		// Notifications
		SuccessFg: "#5FD75F",
		SuccessBg: "#005F00",
		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}
