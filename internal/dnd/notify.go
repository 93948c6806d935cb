package dnd

// NotificationKind is the severity of a user-facing notification.
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyError
	NotifyInfo
)

func (k NotificationKind) String() string {
	switch k {
	case NotifySuccess:
		return "success"
	case NotifyError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a short-lived message for the user.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Notifier surfaces notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}
