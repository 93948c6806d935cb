package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/thenoetrevino/embudo/internal/daemon"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	// Get home directory from environment (set by systemd)
	home := os.Getenv("HOME")
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			slog.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
	}

	embudoDir := filepath.Join(home, ".embudo")
	socketPath := filepath.Join(embudoDir, "embudo.sock")

	if err := os.MkdirAll(embudoDir, 0700); err != nil {
		slog.Error("failed to create .embudo directory", "error", err)
		os.Exit(1)
	}

	var opts []daemon.ServerOption
	// e.g. EMBUDO_METRICS_ADDR=127.0.0.1:9464
	if addr := os.Getenv("EMBUDO_METRICS_ADDR"); addr != "" {
		opts = append(opts, daemon.WithMetricsAddr(addr))
	}

	server, err := daemon.NewServer(socketPath, opts...)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("embudo daemon starting", "socket_path", socketPath, "pid", os.Getpid())

	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("embudo daemon shut down gracefully")
}
