package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// StatusBarProps is the content of the bottom line.
type StatusBarProps struct {
	Width int
	Left  string
	Right string
}

// RenderStatusBar renders a status bar with left and right aligned text.
func RenderStatusBar(props StatusBarProps) string {
	left := SubtleStyle.Render(props.Left)
	right := SubtleStyle.Render(props.Right)

	gapWidth := max(props.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gapWidth), right)
}
