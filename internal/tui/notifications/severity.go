package notifications

import (
	"github.com/thenoetrevino/embudo/internal/tui/state"
	"github.com/thenoetrevino/embudo/internal/tui/theme"
)

type severityStyle struct {
	icon       string
	title      string
	foreground string
	background string
}

func styleFor(level state.NotificationLevel) severityStyle {
	switch level {
	case state.LevelSuccess:
		return severityStyle{icon: "✓", title: "Done", foreground: theme.SuccessFg, background: theme.SuccessBg}
	case state.LevelError:
		return severityStyle{icon: "✗", title: "Error", foreground: theme.ErrorFg, background: theme.ErrorBg}
	default:
		return severityStyle{icon: "●", title: "Info", foreground: theme.InfoFg, background: theme.InfoBg}
	}
}
