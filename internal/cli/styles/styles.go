// Package styles holds the lipgloss styles of the human-readable CLI output.
package styles

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"github.com/thenoetrevino/embudo/internal/config"
)

var (
	// Column styles
	ColumnStyle lipgloss.Style
	ColumnWidth = 28

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Kind:", "Priority:"
	ValueStyle    lipgloss.Style // For field values

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	scheme config.ColorScheme
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	scheme = colors

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.ColumnBorder)).
		Padding(0, 1).
		Width(ColumnWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.SuccessFg)).
		Background(lipgloss.Color(colors.SuccessBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Delete))
}

// Field renders "Label: value".
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// RenderColumn draws a bordered column with a header and one line per item.
// Lines wider than the column are cut with an ellipsis.
func RenderColumn(header string, lines []string) string {
	inner := ColumnWidth - 2
	var b strings.Builder
	b.WriteString(TitleStyle.Render(truncate.StringWithTail(header, uint(inner), "…")))
	if len(lines) == 0 {
		b.WriteString("\n" + SubtitleStyle.Render("(empty)"))
	}
	for _, line := range lines {
		b.WriteString("\n" + truncate.StringWithTail(line, uint(inner), "…"))
	}
	return ColumnStyle.Render(b.String())
}

// RenderBoard lays rendered columns side by side.
func RenderBoard(columns []string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}
