package dnd

import (
	"math"
	"time"
)

// Default activation thresholds. Distances are in terminal cells.
const (
	DefaultActivationDistance = 8
	DefaultActivationDelay    = 100 * time.Millisecond
)

// GestureState is the phase of a single drag session.
type GestureState int

const (
	GestureIdle      GestureState = iota
	GestureArmed                  // pointer down, thresholds not yet met
	GestureDragging               // thresholds met, candidate target tracked
	GestureDropped                // released over a target
	GestureCancelled              // released over nothing, or aborted
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureArmed:
		return "armed"
	case GestureDragging:
		return "dragging"
	case GestureDropped:
		return "dropped"
	case GestureCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Point is a pointer position in cells.
type Point struct {
	X, Y int
}

func (p Point) distance(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// GestureConfig holds the activation thresholds. A drag starts only once the
// pointer has travelled strictly more than ActivationDistance AND
// ActivationDelay has elapsed. Zero disables either threshold.
type GestureConfig struct {
	ActivationDistance float64
	ActivationDelay    time.Duration
}

// DefaultGestureConfig returns the stock thresholds.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		ActivationDistance: DefaultActivationDistance,
		ActivationDelay:    DefaultActivationDelay,
	}
}

// DragEnd is emitted when a drag is released over a valid target.
type DragEnd struct {
	ActiveID int
	Target   Target
}

// Gesture turns raw pointer events into drag sessions. Hit testing is the
// caller's job: every move and release carries the target under the pointer.
type Gesture struct {
	cfg GestureConfig

	state     GestureState
	activeID  int
	origin    Point
	pointer   Point
	startedAt time.Time
	candidate Target
}

// NewGesture creates an idle controller.
func NewGesture(cfg GestureConfig) *Gesture {
	if cfg.ActivationDistance < 0 {
		cfg.ActivationDistance = 0
	}
	if cfg.ActivationDelay < 0 {
		cfg.ActivationDelay = 0
	}
	return &Gesture{cfg: cfg}
}

// Down starts a fresh session for itemID. Any previous session is dropped.
func (g *Gesture) Down(itemID int, p Point, at time.Time) {
	g.state = GestureArmed
	g.activeID = itemID
	g.origin = p
	g.pointer = p
	g.startedAt = at
	g.candidate = Target{}
}

// Move feeds a pointer motion. It reports whether the session is dragging
// after the event.
func (g *Gesture) Move(p Point, at time.Time, target Target) bool {
	switch g.state {
	case GestureArmed:
		g.pointer = p
		if !g.activated(p, at) {
			return false
		}
		g.state = GestureDragging
		g.candidate = target
		return true
	case GestureDragging:
		g.pointer = p
		g.candidate = target
		return true
	default:
		return false
	}
}

// Up ends the session. It returns the drop when released over a valid
// target while dragging. A release while still armed is a click, and a
// release over nothing is a cancellation; both return ok == false.
func (g *Gesture) Up(p Point, at time.Time, target Target) (DragEnd, bool) {
	switch g.state {
	case GestureDragging:
		g.pointer = p
		g.candidate = target
		if !target.Valid() {
			g.state = GestureCancelled
			return DragEnd{}, false
		}
		g.state = GestureDropped
		return DragEnd{ActiveID: g.activeID, Target: target}, true
	case GestureArmed:
		g.state = GestureCancelled
		return DragEnd{}, false
	default:
		return DragEnd{}, false
	}
}

// Cancel aborts the current session, if any.
func (g *Gesture) Cancel() {
	if g.state == GestureArmed || g.state == GestureDragging {
		g.state = GestureCancelled
	}
	g.candidate = Target{}
}

// Reset returns the controller to idle.
func (g *Gesture) Reset() {
	*g = Gesture{cfg: g.cfg}
}

// State returns the session phase.
func (g *Gesture) State() GestureState {
	return g.state
}

// Dragging reports whether a drag is in progress.
func (g *Gesture) Dragging() bool {
	return g.state == GestureDragging
}

// Active returns the item being dragged, for rendering a floating overlay.
func (g *Gesture) Active() (int, bool) {
	if g.state != GestureDragging {
		return 0, false
	}
	return g.activeID, true
}

// Candidate returns the drop target currently under the pointer.
func (g *Gesture) Candidate() Target {
	if g.state != GestureDragging {
		return Target{}
	}
	return g.candidate
}

// Pointer returns the last known pointer position.
func (g *Gesture) Pointer() Point {
	return g.pointer
}

// Config returns the activation thresholds in use.
func (g *Gesture) Config() GestureConfig {
	return g.cfg
}

func (g *Gesture) activated(p Point, at time.Time) bool {
	if g.cfg.ActivationDistance > 0 && g.origin.distance(p) <= g.cfg.ActivationDistance {
		return false
	}
	return at.Sub(g.startedAt) >= g.cfg.ActivationDelay
}
