// Package components renders the board: tabs, columns, cards and the
// status bar. Call InitStyles after theme.Init.
package components

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/embudo/internal/tui/theme"
)

// These are cached to avoid recomputing on every redraw.
var (
	activeTabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      " ",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┘",
		BottomRight: "└",
	}

	tabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┴",
		BottomRight: "┴",
	}

	// TabStyle defines inactive tabs
	TabStyle lipgloss.Style
	// ActiveTabStyle defines the selected tab
	ActiveTabStyle lipgloss.Style
	// TabGapStyle fills the remaining space after tabs
	TabGapStyle lipgloss.Style

	// ColumnStyle defines the appearance of board columns
	ColumnStyle lipgloss.Style
	// CardStyle defines the appearance of cards and deals
	CardStyle lipgloss.Style
	// TitleStyle is used for column headers
	TitleStyle lipgloss.Style
	// SubtleStyle is used for metadata and empty states
	SubtleStyle lipgloss.Style
	// IndicatorStyle defines the appearance of scroll indicators
	IndicatorStyle lipgloss.Style

	// CreateInputBoxStyle frames creation dialogs
	CreateInputBoxStyle lipgloss.Style
	// EditInputBoxStyle frames edit dialogs
	EditInputBoxStyle lipgloss.Style
	// DeleteConfirmBoxStyle frames deletion confirmations
	DeleteConfirmBoxStyle lipgloss.Style
	// HelpBoxStyle frames the help screen
	HelpBoxStyle lipgloss.Style
)

func init() {
	InitStyles()
}

// InitStyles rebuilds every style from the theme colors.
func InitStyles() {
	TabStyle = lipgloss.NewStyle().
		Border(tabBorder, true).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(0, 1)
	ActiveTabStyle = TabStyle.
		Border(activeTabBorder, true).
		Foreground(lipgloss.Color(theme.Title)).
		Bold(true)
	TabGapStyle = TabStyle.
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColumnBorder)).
		Padding(0, 1).
		Width(ColumnWidth + 2).
		MarginRight(ColumnGap)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.CardBorder)).
		Padding(0, 1).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Title)).
		Bold(true)
	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))
	IndicatorStyle = SubtleStyle.
		Width(ColumnWidth - 2).
		Align(lipgloss.Center)

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(50)
	CreateInputBoxStyle = dialog.BorderForeground(lipgloss.Color(theme.Create))
	EditInputBoxStyle = dialog.BorderForeground(lipgloss.Color(theme.Accent))
	DeleteConfirmBoxStyle = dialog.BorderForeground(lipgloss.Color(theme.Delete))
	HelpBoxStyle = dialog.Width(60).BorderForeground(lipgloss.Color(theme.Accent))
}
