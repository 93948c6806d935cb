package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Dir returns ~/.embudo/logs.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".embudo", "logs"), nil
}

// Init initializes the logging system, writing logs to
// ~/.embudo/logs/embudo.log. The TUI owns the terminal, so nothing is
// written to stderr.
func Init() (io.Closer, error) {
	logDir, err := Dir()
	if err != nil {
		return nil, err
	}
	return InitAt(filepath.Join(logDir, "embudo.log"), slog.LevelDebug)
}

// InitAt points the default logger at path.
func InitAt(path string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	Logger = slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(Logger)

	// stray log.Printf calls land in the same file
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return file, nil
}
