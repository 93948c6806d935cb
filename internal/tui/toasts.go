package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/tui/state"
)

// toastExpiredMsg removes one toast once its TTL has passed.
type toastExpiredMsg struct {
	id int
}

// toastSink is the notifier every board screen reports to. It is only
// called from the update loop.
type toastSink struct {
	state *state.NotificationState
	now   func() time.Time
	fresh []int
}

func newToastSink(ttl time.Duration, now func() time.Time) *toastSink {
	return &toastSink{state: state.NewNotificationState(ttl), now: now}
}

// Notify implements dnd.Notifier.
func (t *toastSink) Notify(n dnd.Notification) {
	id := t.state.Add(levelOf(n.Kind), n.Message, t.now())
	t.fresh = append(t.fresh, id)
}

// expiry returns one timer per toast added since the last call.
func (t *toastSink) expiry() tea.Cmd {
	if len(t.fresh) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(t.fresh))
	for _, id := range t.fresh {
		cmds = append(cmds, tea.Tick(t.state.TTL(), func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	t.fresh = t.fresh[:0]
	return tea.Batch(cmds...)
}

func levelOf(kind dnd.NotificationKind) state.NotificationLevel {
	switch kind {
	case dnd.NotifySuccess:
		return state.LevelSuccess
	case dnd.NotifyError:
		return state.LevelError
	default:
		return state.LevelInfo
	}
}
