package column

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/models"
	"github.com/thenoetrevino/embudo/internal/testutil"
	clitest "github.com/thenoetrevino/embudo/internal/testutil/cli"
)

func TestCreateColumnCommand(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      []string
		shouldErr bool
		exitCode  int
		checkFunc func(t *testing.T, output string)
	}{
		{
			name: "create column with quiet output",
			args: []string{"--name", "Review", "--board", "1", "--quiet"},
			checkFunc: func(t *testing.T, output string) {
				id, err := strconv.Atoi(strings.TrimSpace(output))
				require.NoError(t, err, "expected numeric column ID, got %q", output)

				column, err := repo.GetColumnByID(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, "Review", column.Name)
				assert.Equal(t, 1, column.BoardID)
			},
		},
		{
			name: "create column with JSON output",
			args: []string{"--name", "Negotiation", "--board", "Sales", "--json"},
			checkFunc: func(t *testing.T, output string) {
				result := testutil.ParseJSON(t, output)
				assert.Equal(t, true, result["success"])
				data := result["data"].(map[string]any)
				assert.Equal(t, "Negotiation", data["Name"])
			},
		},
		{
			name: "create column with human-readable output",
			args: []string{"--name", "Deploy", "--board", "Projects"},
			checkFunc: func(t *testing.T, output string) {
				assert.Contains(t, output, "created successfully")
				assert.Contains(t, output, "Deploy")
			},
		},
		{
			name:      "create column missing name",
			args:      []string{"--board", "1"},
			shouldErr: true,
		},
		{
			name:      "create column on unknown board",
			args:      []string{"--name", "X", "--board", "99"},
			shouldErr: true,
			exitCode:  cli.ExitNotFound,
		},
		{
			name:      "create column with a name too long",
			args:      []string{"--name", strings.Repeat("x", 51), "--board", "1"},
			shouldErr: true,
			exitCode:  cli.ExitValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EMBUDO_BOARD", "")
			output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), tt.args...)
			if tt.shouldErr {
				require.Error(t, err)
				if tt.exitCode != 0 {
					assert.Equal(t, tt.exitCode, cli.ExitCode(err))
				}
				return
			}
			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, output)
			}
		})
	}
}

func TestListColumnCommand(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), "--board", "Sales", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "4\n5\n6\n7\n8\n", output)

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), "--board", "Projects")
	require.NoError(t, err)
	assert.Less(t, strings.Index(output, "To Do"), strings.Index(output, "Done"))
}

func TestRenameColumnCommand(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, RenameCmd(), "--id", "2", "--name", "In Progress")
	require.NoError(t, err)

	column, err := repo.GetColumnByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", column.Name)

	_, err = clitest.ExecuteCLICommand(t, app, RenameCmd(), "--id", "0", "--name", "x")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestDeleteColumnCommand(t *testing.T) {
	t.Run("empty column", func(t *testing.T) {
		repo, app := clitest.SetupCLITest(t)

		output, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), "--id", "3", "--force")
		require.NoError(t, err)
		assert.Contains(t, output, `Column "Done" deleted successfully`)

		_, err = repo.GetColumnByID(context.Background(), 3)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("column with deals deletes them too", func(t *testing.T) {
		repo, app := clitest.SetupCLITest(t)
		dealID := testutil.CreateTestDeal(t, repo, 4, "Pilot", "Initech", 50000)
		testutil.CreateTestDeal(t, repo, 4, "Upsell", "Initech", 10000)

		output, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), "--id", "4", "--json")
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		data := result["data"].(map[string]any)
		assert.Equal(t, float64(2), data["deleted_items"])

		_, err = repo.Deals().GetByID(context.Background(), dealID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, app := clitest.SetupCLITest(t)

		_, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), "--id", "404", "--force")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})
}
