package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Items
	AddItem       string `yaml:"add_item"`
	EditItem      string `yaml:"edit_item"`
	DeleteItem    string `yaml:"delete_item"`
	MoveItemLeft  string `yaml:"move_item_left"`
	MoveItemRight string `yaml:"move_item_right"`
	MoveItemUp    string `yaml:"move_item_up"`
	MoveItemDown  string `yaml:"move_item_down"`

	// Columns
	AddColumn    string `yaml:"add_column"`
	DeleteColumn string `yaml:"delete_column"`

	// Navigation
	PrevColumn  string `yaml:"prev_column"`
	NextColumn  string `yaml:"next_column"`
	PrevItem    string `yaml:"prev_item"`
	NextItem    string `yaml:"next_item"`
	SwitchBoard string `yaml:"switch_board"`

	// Other
	Reload   string `yaml:"reload"`
	ShowHelp string `yaml:"show_help"`
	Cancel   string `yaml:"cancel"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Items
		AddItem:       "n",
		EditItem:      "e",
		DeleteItem:    "d",
		MoveItemLeft:  "H",
		MoveItemRight: "L",
		MoveItemUp:    "K",
		MoveItemDown:  "J",

		// Columns
		AddColumn:    "N",
		DeleteColumn: "D",

		// Navigation
		PrevColumn:  "h",
		NextColumn:  "l",
		PrevItem:    "k",
		NextItem:    "j",
		SwitchBoard: "tab",

		// Other
		Reload:   "r",
		ShowHelp: "?",
		Cancel:   "esc",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	d := DefaultKeyMappings()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&k.AddItem, d.AddItem)
	fill(&k.EditItem, d.EditItem)
	fill(&k.DeleteItem, d.DeleteItem)
	fill(&k.MoveItemLeft, d.MoveItemLeft)
	fill(&k.MoveItemRight, d.MoveItemRight)
	fill(&k.MoveItemUp, d.MoveItemUp)
	fill(&k.MoveItemDown, d.MoveItemDown)
	fill(&k.AddColumn, d.AddColumn)
	fill(&k.DeleteColumn, d.DeleteColumn)
	fill(&k.PrevColumn, d.PrevColumn)
	fill(&k.NextColumn, d.NextColumn)
	fill(&k.PrevItem, d.PrevItem)
	fill(&k.NextItem, d.NextItem)
	fill(&k.SwitchBoard, d.SwitchBoard)
	fill(&k.Reload, d.Reload)
	fill(&k.ShowHelp, d.ShowHelp)
	fill(&k.Cancel, d.Cancel)
	fill(&k.Quit, d.Quit)
}
