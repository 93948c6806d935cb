package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/embudo/internal/app"
	"github.com/thenoetrevino/embudo/internal/cli/styles"
	"github.com/thenoetrevino/embudo/internal/config"
	"github.com/thenoetrevino/embudo/internal/database"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	// db is nil when the App was borrowed from the context
	db *sql.DB
}

type appKey struct{}

// WithApp returns a context carrying a ready App. Commands run against it
// instead of opening the database, which is how tests drive them.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// NewCLI initializes the CLI with database and optional daemon connection
func NewCLI(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: config.Default()}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	styles.Init(cfg.ColorScheme)

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// the daemon is optional, a CLI write without it just skips the broadcast
	var opts []app.Option
	if socketPath, err := app.DefaultSocketPath(); err == nil {
		if publisher := app.ConnectEvents(ctx, socketPath); publisher != nil {
			opts = append(opts, app.WithEventPublisher(publisher))
		}
	}

	return &CLI{
		App:    app.New(database.NewRepository(db), opts...),
		Config: cfg,
		db:     db,
	}, nil
}

// Close cleans up CLI resources. A borrowed App is left open.
func (c *CLI) Close() error {
	if c.db == nil {
		return nil
	}
	return errors.Join(c.App.Close(), c.db.Close())
}
