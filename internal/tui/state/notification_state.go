package state

import "time"

// NotificationLevel represents the severity/type of a notification.
type NotificationLevel int

const (
	// LevelInfo represents informational notifications
	LevelInfo NotificationLevel = iota
	// LevelSuccess represents a confirmed or optimistic success
	LevelSuccess
	// LevelError represents error notifications
	LevelError
)

// Notification represents a single toast with a severity level.
type Notification struct {
	ID        int
	Level     NotificationLevel
	Message   string
	ExpiresAt time.Time
}

// NotificationState manages the toast stack. Every toast expires after a
// fixed TTL; the model schedules an Expire for each ID it gets from Add.
type NotificationState struct {
	notifications []Notification
	ttl           time.Duration
	nextID        int
	// maxVisible caps the stack, oldest toasts are dropped first
	maxVisible int
}

// NewNotificationState creates an empty stack whose toasts live for ttl.
func NewNotificationState(ttl time.Duration) *NotificationState {
	return &NotificationState{
		notifications: []Notification{},
		ttl:           ttl,
		maxVisible:    4,
	}
}

// TTL returns how long a toast stays visible.
func (s *NotificationState) TTL() time.Duration {
	return s.ttl
}

// Add pushes a toast and returns its ID.
func (s *NotificationState) Add(level NotificationLevel, message string, now time.Time) int {
	s.nextID++
	s.notifications = append(s.notifications, Notification{
		ID:        s.nextID,
		Level:     level,
		Message:   message,
		ExpiresAt: now.Add(s.ttl),
	})
	if over := len(s.notifications) - s.maxVisible; over > 0 {
		s.notifications = s.notifications[over:]
	}
	return s.nextID
}

// Expire removes the toast with the given ID, if it is still shown.
func (s *NotificationState) Expire(id int) {
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// Prune drops every toast that expired at or before now.
func (s *NotificationState) Prune(now time.Time) {
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.notifications = []Notification{}
}

// All returns all current notifications, oldest first.
func (s *NotificationState) All() []Notification {
	return s.notifications
}

// HasAny returns true if there are any notifications.
func (s *NotificationState) HasAny() bool {
	return len(s.notifications) > 0
}
