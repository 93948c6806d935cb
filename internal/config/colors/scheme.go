package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Semantic colors
	Create string `yaml:"create"` // creation prompts
	Delete string `yaml:"delete"` // delete confirmations

	// Board colors
	ColumnBorder   string `yaml:"column_border"`
	CardBorder     string `yaml:"card_border"`
	SelectedBorder string `yaml:"selected_border"`
	DropTarget     string `yaml:"drop_target"` // column under a dragged card
	DragGhost      string `yaml:"drag_ghost"`  // card following the pointer

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Notification colors (foreground/background pairs)
	SuccessFg string `yaml:"success_fg"`
	SuccessBg string `yaml:"success_bg"`
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	c.MergeFrom(*preset, false)
}

// MergeFrom copies colors from other. With override set every non-empty
// color of other wins, otherwise only empty fields are filled.
func (c *ColorScheme) MergeFrom(other ColorScheme, override bool) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&c.Accent, other.Accent},
		{&c.Create, other.Create},
		{&c.Delete, other.Delete},
		{&c.ColumnBorder, other.ColumnBorder},
		{&c.CardBorder, other.CardBorder},
		{&c.SelectedBorder, other.SelectedBorder},
		{&c.DropTarget, other.DropTarget},
		{&c.DragGhost, other.DragGhost},
		{&c.Title, other.Title},
		{&c.Subtle, other.Subtle},
		{&c.Normal, other.Normal},
		{&c.SuccessFg, other.SuccessFg},
		{&c.SuccessBg, other.SuccessBg},
		{&c.InfoFg, other.InfoFg},
		{&c.InfoBg, other.InfoBg},
		{&c.ErrorFg, other.ErrorFg},
		{&c.ErrorBg, other.ErrorBg},
	} {
		if f.src == "" {
			continue
		}
		if override || *f.dst == "" {
			*f.dst = f.src
		}
	}
}
