package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/embudo/internal/database"
	"github.com/thenoetrevino/embudo/internal/events"
	"github.com/thenoetrevino/embudo/internal/models"
	boardservice "github.com/thenoetrevino/embudo/internal/services/board"
	columnservice "github.com/thenoetrevino/embudo/internal/services/column"
	itemservice "github.com/thenoetrevino/embudo/internal/services/item"
)

// App holds all application services and provides dependency injection.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates, nil when no daemon is running
	eventClient events.EventPublisher
	logger      *slog.Logger

	// Service layer (business logic)
	BoardService  boardservice.Service
	ColumnService columnservice.Service
	CardService   itemservice.Service[models.Card]
	DealService   itemservice.Service[models.Deal]
}

// New creates a new App with all services initialized.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	columns := columnservice.NewService(repo, cfg.eventClient)
	return &App{
		repo:          repo,
		eventClient:   cfg.eventClient,
		logger:        cfg.logger,
		BoardService:  boardservice.NewService(repo, cfg.eventClient),
		ColumnService: columns,
		CardService:   itemservice.NewService(repo.Cards(), columns, cfg.eventClient),
		DealService:   itemservice.NewService(repo.Deals(), columns, cfg.eventClient),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Events returns the live update client, or nil.
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases the event client.
func (a *App) Close() error {
	if a.eventClient == nil {
		return nil
	}
	return a.eventClient.Close()
}

// DefaultSocketPath returns ~/.embudo/embudo.sock.
func DefaultSocketPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".embudo", "embudo.sock"), nil
}

// ConnectEvents connects to the daemon at socketPath. Live updates are
// optional: when the daemon is not running the error is classified and
// logged, and a nil publisher is returned.
func ConnectEvents(ctx context.Context, socketPath string) events.EventPublisher {
	client, err := events.NewClient(socketPath)
	if err != nil {
		slog.Warn("event client unavailable", "error", err)
		return nil
	}
	if err := client.Connect(ctx); err != nil {
		var derr *events.DaemonError
		if !errors.As(err, &derr) {
			derr = events.ClassifyDaemonError(err)
		}
		slog.Info("live updates disabled", "reason", derr.Error())
		_ = client.Close()
		return nil
	}
	return client
}
