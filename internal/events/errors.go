package events

import (
	"errors"
	"net"
	"os"
	"syscall"
)

var (
	// ErrNilClient is returned by methods called on a nil *Client.
	ErrNilClient = errors.New("event client is nil")

	// ErrNotConnected is returned when the socket is not open.
	ErrNotConnected = errors.New("not connected to daemon")

	// ErrQueueFull is returned by SendEvent when the batch queue is saturated.
	ErrQueueFull = errors.New("event queue full")
)

// ErrorCode represents daemon-related error types.
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
)

// DaemonError represents a structured daemon error with context.
type DaemonError struct {
	Code    ErrorCode
	Message string
	Hint    string
}

// Error implements the error interface.
func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

// ClassifyDaemonError maps common errors to structured DaemonError types.
func ClassifyDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return &DaemonError{
			Code:    ErrSocketNotFound,
			Message: "Socket file not found",
			Hint:    "Start daemon: embudo-daemon",
		}
	}

	if errors.Is(err, os.ErrPermission) {
		return &DaemonError{
			Code:    ErrSocketPermission,
			Message: "Permission denied",
			Hint:    "Check ~/.embudo/ permissions: chmod 700 ~/.embudo/",
		}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &DaemonError{
			Code:    ErrConnectionRefused,
			Message: "Connection refused",
			Hint:    "Daemon may be crashed. Remove the stale socket and restart embudo-daemon",
		}
	}

	return &DaemonError{
		Code:    ErrDaemonNotRunning,
		Message: "Daemon not running",
		Hint:    "Start daemon: embudo-daemon",
	}
}

// isConnectionError reports whether err means the peer went away.
func isConnectionError(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, net.ErrClosed)
}
