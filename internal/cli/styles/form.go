package styles

import (
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// FormTheme styles huh prompts with the configured color scheme.
func FormTheme() huh.Theme {
	colors := scheme
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		accent := lipgloss.Color(colors.Accent)
		subtle := lipgloss.Color(colors.Subtle)
		normal := lipgloss.Color(colors.Normal)
		danger := lipgloss.Color(colors.Delete)

		t.Focused.Base = t.Focused.Base.BorderForeground(accent)
		t.Focused.Title = t.Focused.Title.Foreground(lipgloss.Color(colors.Title)).Bold(true)
		t.Focused.Description = t.Focused.Description.Foreground(subtle)
		t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(danger)
		t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(danger)
		// the affirmative button of a destructive prompt
		t.Focused.FocusedButton = t.Focused.FocusedButton.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(danger).
			Bold(true)
		t.Focused.BlurredButton = t.Focused.BlurredButton.
			Foreground(normal).
			Background(subtle)

		t.Blurred = t.Focused
		t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
		t.Blurred.Title = t.Blurred.Title.Foreground(subtle)
		return t
	})
}
