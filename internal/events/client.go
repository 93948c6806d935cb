package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DebounceEnv overrides the batching window in milliseconds.
const DebounceEnv = "EMBUDO_EVENT_DEBOUNCE_MS"

const (
	defaultWindow = 100 * time.Millisecond
	outboxSize    = 100
	writeTimeout  = 5 * time.Second
	// the daemon pings well within this, silence past it means a dead socket
	idleTimeout = 60 * time.Second
)

// Client is one process's link to the embudo daemon. Outgoing board
// changes are coalesced per window; incoming ones are de-duplicated by
// sequence number and filtered by origin.
type Client struct {
	path   string
	origin string

	mu     sync.Mutex
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	shut   bool
	board  int   // current subscription, replayed on redial
	cursor int64 // highest sequence number delivered

	outbox chan Event
	window time.Duration
	retry  backoff

	ctx         context.Context
	stop        context.CancelFunc
	flusherOnce sync.Once
	flusherDone chan struct{}
}

// backoff doubles the wait after every failed redial.
type backoff struct {
	attempts int
	first    time.Duration
}

func (b backoff) wait(attempt int) time.Duration {
	return b.first << attempt
}

// NewClient prepares a client for the socket at path without dialing it.
func NewClient(path string) (*Client, error) {
	window := defaultWindow
	if raw := os.Getenv(DebounceEnv); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			window = time.Duration(ms) * time.Millisecond
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	return &Client{
		path:        path,
		origin:      uuid.NewString(),
		outbox:      make(chan Event, outboxSize),
		window:      window,
		retry:       backoff{attempts: 5, first: time.Second},
		ctx:         ctx,
		stop:        stop,
		flusherDone: make(chan struct{}),
	}, nil
}

// Origin returns the ID stamped on every event this client sends.
func (c *Client) Origin() string {
	if c == nil {
		return ""
	}
	return c.origin
}

// Connect dials the daemon and replays the current subscription, all
// boards until Subscribe says otherwise.
func (c *Client) Connect(ctx context.Context) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.path)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}
	c.conn, c.enc, c.dec = conn, json.NewEncoder(conn), json.NewDecoder(conn)

	if err := c.writeLocked(subscribeMessage(c.board)); err != nil {
		if cerr := conn.Close(); cerr != nil {
			slog.Error("error closing connection", "error", cerr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	c.flusherOnce.Do(func() { go c.flush() })
	return nil
}

func subscribeMessage(boardID int) Message {
	return Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{BoardID: boardID},
	}
}

// writeLocked encodes msg under a write deadline. c.mu must be held.
func (c *Client) writeLocked(msg Message) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	defer func() { _ = c.conn.SetWriteDeadline(time.Time{}) }()
	return c.enc.Encode(msg)
}

func (c *Client) write(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(msg)
}

// SendEvent queues a change for the next window. It never blocks: a full
// outbox returns ErrQueueFull.
func (c *Client) SendEvent(event Event) error {
	if c == nil {
		return ErrNilClient
	}
	// Close must not close the outbox between the check and the send
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shut {
		return ErrNotConnected
	}

	select {
	case c.outbox <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// batch folds a window's worth of changes into one event. Changes to more
// than one board widen it to board 0.
type batch struct {
	dirty bool
	board int
}

func (b *batch) add(e Event) {
	switch {
	case !b.dirty:
		b.dirty, b.board = true, e.BoardID
	case e.BoardID != b.board:
		b.board = 0
	}
}

// flush owns the outbox. Each tick sends at most one event for whatever
// arrived since the last one.
func (c *Client) flush() {
	defer close(c.flusherDone)

	tick := time.NewTicker(c.window)
	defer tick.Stop()

	var b batch
	send := func() {
		if !b.dirty {
			return
		}
		err := c.write(Message{
			Version: ProtocolVersion,
			Type:    "event",
			Event: &Event{
				Type:      EventBoardChanged,
				BoardID:   b.board,
				Origin:    c.origin,
				Timestamp: time.Now(),
			},
		})
		if err != nil && !isConnectionError(err) {
			slog.Warn("failed to send batched event", "error", err)
		}
		b = batch{}
	}

	for {
		select {
		case <-c.ctx.Done():
			// Close shuts the outbox before cancelling
			for e := range c.outbox {
				b.add(e)
			}
			send()
			return
		case e, ok := <-c.outbox:
			if !ok {
				send()
				return
			}
			b.add(e)
		case <-tick.C:
			send()
		}
	}
}

// Listen streams changes made by other clients. The channel closes when ctx
// ends or the daemon stays unreachable past the retry budget.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	if c == nil {
		ch := make(chan Event)
		close(ch)
		return ch, ErrNilClient
	}
	out := make(chan Event, 10)
	go c.pump(ctx, out)
	return out, nil
}

func (c *Client) pump(ctx context.Context, out chan<- Event) {
	defer close(out)

	for ctx.Err() == nil {
		err := c.receive(ctx, out)
		if err == nil || ctx.Err() != nil {
			return
		}
		slog.Warn("daemon link dropped", "error", err)

		if !c.redial(ctx) {
			slog.Error("daemon unreachable, live updates stopped", "attempts", c.retry.attempts)
			return
		}
		slog.Info("daemon link restored")
	}
}

// receive decodes messages until the socket fails, forwarding foreign
// events and answering pings.
func (c *Client) receive(ctx context.Context, out chan<- Event) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		dec := c.dec
		c.mu.Unlock()

		var msg Message
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "ping":
			if err := c.write(Message{Version: ProtocolVersion, Type: "pong"}); err != nil && !isConnectionError(err) {
				slog.Warn("failed to send pong", "error", err)
			}
		case "event":
			e, ok := c.admit(msg.Event)
			if !ok {
				continue
			}
			select {
			case out <- e:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// admit advances the cursor past a new event and reports whether it came
// from someone else.
func (c *Client) admit(e *Event) (Event, bool) {
	if e == nil || e.SequenceID <= c.cursor {
		return Event{}, false
	}
	c.cursor = e.SequenceID
	return *e, e.Origin != c.origin
}

// redial drops the dead socket and dials again on the backoff schedule.
func (c *Client) redial(ctx context.Context) bool {
	for attempt := range c.retry.attempts {
		wait := c.retry.wait(attempt)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}

		c.mu.Lock()
		if c.conn != nil {
			if err := c.conn.Close(); err != nil && !isConnectionError(err) {
				slog.Debug("closing dead daemon socket", "error", err)
			}
		}
		c.mu.Unlock()

		if err := c.Connect(ctx); err == nil {
			return true
		}
		slog.Debug("redial failed", "attempt", attempt+1, "of", c.retry.attempts, "waited", wait)
	}
	return false
}

// Subscribe narrows incoming events to one board; 0 means every board. The
// choice sticks across redials even when the daemon is unreachable now.
func (c *Client) Subscribe(boardID int) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.board = boardID
	return c.writeLocked(subscribeMessage(boardID))
}

// Close sends whatever is still batched, then hangs up. Calling it again
// is a no-op.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	if c.shut {
		c.mu.Unlock()
		return nil
	}
	c.shut = true
	close(c.outbox)
	c.mu.Unlock()

	c.stop()

	// no flusher runs before the first Connect
	c.flusherOnce.Do(func() { close(c.flusherDone) })
	<-c.flusherDone

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
