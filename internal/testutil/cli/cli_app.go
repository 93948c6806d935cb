// Package cli wires the command test helpers to a throwaway database.
package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/app"
	embudocli "github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/database"
	"github.com/thenoetrevino/embudo/internal/testutil"
)

// SetupCLITest creates a seeded test database and an App on top of it.
// The event publisher is nil: publishing is tested in the service packages.
func SetupCLITest(t *testing.T) (*database.Repository, *app.App) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	return repo, app.New(repo)
}

// ExecuteCLICommand runs cmd against testApp and returns everything it
// printed.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	cmd.SetContext(embudocli.WithApp(context.Background(), testApp))
	return testutil.ExecuteCommand(t, cmd, args...)
}
