package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/embudo/internal/events"
)

var (
	errShuttingDown = errors.New("daemon shutting down")
	errFanoutFull   = errors.New("broadcast channel full")
)

// peer is one connected TUI or CLI process.
type peer struct {
	conn   net.Conn
	outbox chan events.Message

	mu       sync.Mutex // guards the fields below and sends on outbox
	board    int        // 0 follows every board
	lastSeen time.Time  // last pong
	gone     bool
}

func newPeer(conn net.Conn, buffer int) *peer {
	return &peer{conn: conn, outbox: make(chan events.Message, buffer), lastSeen: time.Now()}
}

// wants reports whether a change to boardID concerns this peer. Board 0
// changes concern everyone.
func (p *peer) wants(boardID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return boardID == 0 || p.board == 0 || p.board == boardID
}

func (p *peer) follow(boardID int) {
	p.mu.Lock()
	p.board = boardID
	p.mu.Unlock()
}

func (p *peer) touch(at time.Time) {
	p.mu.Lock()
	p.lastSeen = at
	p.mu.Unlock()
}

func (p *peer) idle(now time.Time) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return now.Sub(p.lastSeen)
}

// enqueue hands msg to the writer without blocking. False means the outbox
// is full or the peer already left.
func (p *peer) enqueue(msg events.Message) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gone {
		return false
	}
	select {
	case p.outbox <- msg:
		return true
	default:
		return false
	}
}

// hangUp closes the socket and the outbox; the writer returns once the
// outbox is empty.
func (p *peer) hangUp() {
	if err := p.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		slog.Debug("closing peer socket", "error", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.gone {
		p.gone = true
		close(p.outbox)
	}
}

// Server is the embudo event daemon. Every board change one peer reports
// gets a sequence number and is relayed to the peers following that board.
type Server struct {
	path string
	ln   net.Listener

	mu    sync.RWMutex
	peers map[*peer]struct{}

	ctx  context.Context
	stop context.CancelFunc
	once sync.Once

	fanout     chan events.Event
	seq        atomic.Int64
	peerBuffer int
	metrics    *Metrics

	metricsAddr string
	pingEvery   time.Duration
	staleAfter  time.Duration
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMetricsAddr serves prometheus metrics on addr at /metrics.
func WithMetricsAddr(addr string) ServerOption {
	return func(s *Server) { s.metricsAddr = addr }
}

// WithHeartbeat overrides the ping interval and how long a silent peer is
// kept.
func WithHeartbeat(ping, stale time.Duration) ServerOption {
	return func(s *Server) {
		s.pingEvery = ping
		s.staleAfter = stale
	}
}

// envInt returns the positive integer in key, or def.
func envInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// NewServer listens on path, replacing a socket left behind by a crashed
// daemon.
func NewServer(path string, opts ...ServerOption) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	s := &Server{
		path:       path,
		ln:         ln,
		peers:      make(map[*peer]struct{}),
		ctx:        ctx,
		stop:       stop,
		fanout:     make(chan events.Event, envInt("EMBUDO_DAEMON_BROADCAST_BUFFER", 100)),
		peerBuffer: envInt("EMBUDO_DAEMON_CLIENT_BUFFER", 10),
		metrics:    NewMetrics(),
		pingEvery:  30 * time.Second,
		staleAfter: 90 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Start serves until ctx is cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "socket_path", s.path)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.ctx.Done():
		}
		// closing the listener is what ends serve
		return s.Shutdown()
	})
	g.Go(s.serve)
	g.Go(func() error { s.relay(); return nil })
	g.Go(func() error { s.heartbeat(); return nil })

	if s.metricsAddr != "" {
		hs := &http.Server{Addr: s.metricsAddr, Handler: s.metricsMux(), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			slog.Info("serving metrics", "addr", s.metricsAddr)
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-s.ctx.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return hs.Shutdown(ctx)
		})
	}

	return g.Wait()
}

func (s *Server) metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// serve registers every accepted connection as a peer with its own reader
// and writer.
func (s *Server) serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.stop()
			return fmt.Errorf("accept error: %w", err)
		}

		p := newPeer(conn, s.peerBuffer)
		s.mu.Lock()
		s.peers[p] = struct{}{}
		s.mu.Unlock()
		s.syncGauge()
		slog.Debug("peer joined", "peers", s.peerCount())

		go s.read(p)
		go s.write(p)
	}
}

// relay numbers each change and hands it to the interested peers. A peer
// whose outbox is full misses the change.
func (s *Server) relay() {
	for {
		var e events.Event
		select {
		case <-s.ctx.Done():
			return
		case e = <-s.fanout:
		}

		e.SequenceID = s.seq.Add(1)
		s.metrics.Broadcasts.Inc()
		msg := events.Message{Version: events.ProtocolVersion, Type: "event", Event: &e}

		for _, p := range s.snapshot() {
			if p.wants(e.BoardID) && !s.deliver(p, msg) {
				slog.Warn("peer outbox full, change dropped", "board_id", e.BoardID)
			}
		}
	}
}

// read handles what a peer sends until its socket fails.
func (s *Server) read(p *peer) {
	defer func() {
		s.drop(p)
		slog.Debug("peer left", "peers", s.peerCount())
	}()

	dec := json.NewDecoder(p.conn)
	for {
		var msg events.Message
		if err := dec.Decode(&msg); err != nil {
			return
		}
		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			slog.Warn("protocol version mismatch", "got", msg.Version, "want", events.ProtocolVersion)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			s.metrics.EventsReceived.Inc()
			if err := s.Broadcast(*msg.Event); err != nil {
				slog.Warn("dropping event", "board_id", msg.Event.BoardID, "error", err)
			}
		case "subscribe":
			if msg.Subscribe != nil {
				p.follow(msg.Subscribe.BoardID)
				slog.Debug("peer follows board", "board_id", msg.Subscribe.BoardID)
			}
		case "pong":
			p.touch(time.Now())
		}
	}
}

// write drains the peer's outbox onto its socket.
func (s *Server) write(p *peer) {
	enc := json.NewEncoder(p.conn)
	for msg := range p.outbox {
		if err := enc.Encode(msg); err != nil {
			return
		}
	}
}

// heartbeat pings every peer and evicts the ones silent past staleAfter.
func (s *Server) heartbeat() {
	tick := time.NewTicker(s.pingEvery)
	defer tick.Stop()

	ping := events.Message{
		Version: events.ProtocolVersion,
		Type:    "ping",
		Event:   &events.Event{Type: events.EventPing},
	}
	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-tick.C:
			for _, p := range s.snapshot() {
				if idle := p.idle(now); idle > s.staleAfter {
					slog.Info("evicting silent peer", "idle", idle)
					s.drop(p)
					continue
				}
				if !s.deliver(p, ping) {
					slog.Debug("ping not queued")
				}
			}
		}
	}
}

// Broadcast queues a change for relay. It fails rather than block.
func (s *Server) Broadcast(event events.Event) error {
	if s.ctx.Err() != nil {
		return errShuttingDown
	}
	select {
	case s.fanout <- event:
		return nil
	default:
		return errFanoutFull
	}
}

// Shutdown stops accepting, hangs up on every peer and removes the socket
// file. Later calls return nil.
func (s *Server) Shutdown() error {
	var err error
	s.once.Do(func() {
		slog.Info("shutting down daemon")
		s.stop()

		if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = fmt.Errorf("close listener: %w", cerr)
		}

		s.mu.Lock()
		peers := s.peers
		s.peers = make(map[*peer]struct{})
		s.mu.Unlock()
		for p := range peers {
			p.hangUp()
		}
		s.syncGauge()

		if rerr := os.Remove(s.path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			slog.Warn("failed to remove socket file", "error", rerr)
		}
	})
	return err
}

// deliver enqueues msg for p and counts the outcome.
func (s *Server) deliver(p *peer, msg events.Message) bool {
	if !p.enqueue(msg) {
		s.metrics.EventsDropped.Inc()
		return false
	}
	s.metrics.EventsSent.Inc()
	return true
}

func (s *Server) snapshot() []*peer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*peer, 0, len(s.peers))
	for p := range s.peers {
		out = append(out, p)
	}
	return out
}

func (s *Server) peerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

func (s *Server) syncGauge() {
	s.metrics.ConnectedClients.Set(float64(s.peerCount()))
}

// drop forgets p and hangs up on it. Dropping twice is harmless.
func (s *Server) drop(p *peer) {
	s.mu.Lock()
	delete(s.peers, p)
	s.mu.Unlock()
	p.hangUp()
	s.syncGauge()
}
