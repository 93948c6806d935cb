package events

import "time"

// ProtocolVersion is bumped whenever Message changes incompatibly.
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventBoardChanged EventType = "board_changed"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Event represents a board change notification
type Event struct {
	Type       EventType
	BoardID    int       // For filtering - which board was modified, 0 means several
	Origin     string    // ID of the client that made the change
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing sequence number for ordering
}

// SubscribeMessage is sent by clients to subscribe to specific board updates
type SubscribeMessage struct {
	BoardID int // 0 = all boards, >0 = specific board
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Version   int               // ProtocolVersion of the sender
	Type      string            // "event", "subscribe", "ack", "ping", "pong"
	Event     *Event            `json:",omitempty"`
	Subscribe *SubscribeMessage `json:",omitempty"`
}
