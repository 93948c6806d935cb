package notifications

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/thenoetrevino/embudo/internal/tui/state"
)

// MaxWidth bounds the message column of a toast.
const MaxWidth = 40

// Render renders a bordered toast for n.
func Render(n state.Notification) string {
	style := styleFor(n.Level)

	headerText := style.icon + " " + style.title
	message := wordwrap.String(n.Message, MaxWidth)
	width := max(lipgloss.Width(headerText), lipgloss.Width(message))

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Bold(true).
		Width(width).
		Render(headerText)

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Width(width).
		Render(message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(style.foreground)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

// RenderInline renders a compact one-line toast for the tab bar.
func RenderInline(n state.Notification) string {
	style := styleFor(n.Level)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(style.icon + " " + n.Message)
}

// RenderStack renders toasts top to bottom, right aligned to width.
func RenderStack(all []state.Notification, width int) string {
	if len(all) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(all))
	for _, n := range all {
		rendered = append(rendered, Render(n))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, strings.TrimRight(stack, "\n"))
}
